package models

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type Config struct {
	Seed       int64 `mapstructure:"seed"`
	Turns      int   `mapstructure:"turns"`
	StartMonth int   `mapstructure:"start_month"`

	BaseDemand      int     `mapstructure:"base_demand"`
	DemandNoise     float64 `mapstructure:"demand_noise"`
	ReputationAlpha float64 `mapstructure:"reputation_alpha"`

	ScenarioFile       string `mapstructure:"scenario_file"`
	InitialRestaurants int    `mapstructure:"initial_restaurants"`

	// Output settings
	OutputDestination string `mapstructure:"output_destination"` // console, json, csv, parquet, kafka, postgres
	OutputPath        string `mapstructure:"output_path"`
	OutputFolder      string `mapstructure:"output_folder"`
	KafkaBrokerList   string `mapstructure:"kafka_broker_list"`

	Database     DatabaseConfig     `mapstructure:"database"`
	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("seed", 42)
	viper.SetDefault("turns", 12)
	viper.SetDefault("start_month", 1)
	viper.SetDefault("base_demand", 300)
	viper.SetDefault("demand_noise", 0.1)
	viper.SetDefault("reputation_alpha", 0.3)
	viper.SetDefault("initial_restaurants", 4)
	viper.SetDefault("output_destination", "console")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and flags cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects configuration values the simulation cannot run with.
func (cfg *Config) Validate() error {
	if cfg.Turns <= 0 {
		return fmt.Errorf("turns must be positive, got %d", cfg.Turns)
	}
	if cfg.StartMonth < 1 || cfg.StartMonth > 12 {
		return fmt.Errorf("start_month must be 1-12, got %d", cfg.StartMonth)
	}
	if cfg.DemandNoise < 0 || cfg.DemandNoise >= 1 {
		return fmt.Errorf("demand_noise must be in [0,1), got %.3f", cfg.DemandNoise)
	}
	if cfg.ReputationAlpha < 0 || cfg.ReputationAlpha > 1 {
		return fmt.Errorf("reputation_alpha must be in [0,1], got %.3f", cfg.ReputationAlpha)
	}
	return nil
}
