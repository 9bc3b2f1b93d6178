package cmd

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/PierreLepagnol/foodops/internal/factories"
	"github.com/PierreLepagnol/foodops/internal/logger"
	"github.com/PierreLepagnol/foodops/internal/market"
	"github.com/PierreLepagnol/foodops/internal/models"
	"github.com/PierreLepagnol/foodops/internal/output"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "foodops",
	Short: "Simulates a competitive restaurant market",
	Long: `foodops runs an educational restaurant-management simulation: each turn a
pool of customers is split into market segments and allocated across
competing restaurants by price, quality, reputation and staffing, with
revenue and satisfaction feeding back into the next turn.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		log := logger.Must(logger.New(debug))
		defer log.Sync()

		if err := runSimulation(cfg, log); err != nil {
			log.Error("simulation failed", zap.Error(err))
			os.Exit(1)
		}
	},
}

func runSimulation(cfg *models.Config, log *zap.Logger) error {
	segments, restaurants, err := buildMarket(cfg)
	if err != nil {
		return err
	}

	engine, err := market.NewEngine(cfg, segments, log)
	if err != nil {
		return err
	}

	dest, err := output.NewDestination(cfg)
	if err != nil {
		return err
	}
	defer dest.Close()

	log.Info("simulation starting",
		zap.Int("turns", cfg.Turns),
		zap.Int("restaurants", len(restaurants)),
		zap.Int("segments", len(segments)),
		zap.Int64("seed", cfg.Seed),
	)

	bar := progressbar.Default(int64(cfg.Turns), "simulating")

	for turn := 1; turn <= cfg.Turns; turn++ {
		month := (cfg.StartMonth-1+turn-1)%12 + 1

		results, err := engine.AllocateDemand(restaurants, turn, month)
		if err != nil {
			return fmt.Errorf("turn %d: %w", turn, err)
		}

		for _, r := range restaurants {
			result := results[r.ID]
			msg, err := json.Marshal(result)
			if err != nil {
				return err
			}
			if err := dest.WriteMessage(output.TopicAllocationResults, msg); err != nil {
				log.Warn("failed to write allocation result", zap.Error(err))
			}
			r.ApplyAllocation(result)
		}

		analysis, err := engine.MarketAnalysis(-1)
		if err != nil {
			return err
		}
		msg, err := json.Marshal(analysis)
		if err != nil {
			return err
		}
		if err := dest.WriteMessage(output.TopicMarketAnalysis, msg); err != nil {
			log.Warn("failed to write market analysis", zap.Error(err))
		}

		bar.Add(1)
	}

	return nil
}

// buildMarket assembles segments and competitors from the scenario file,
// falling back to generated demo data.
func buildMarket(cfg *models.Config) ([]models.MarketSegment, []*models.Restaurant, error) {
	if cfg.ScenarioFile != "" {
		scenario, err := models.LoadScenario(cfg.ScenarioFile)
		if err != nil {
			return nil, nil, err
		}
		if scenario.BaseDemand > 0 {
			cfg.BaseDemand = scenario.BaseDemand
		}
		restaurants := make([]*models.Restaurant, 0, len(scenario.Restaurants))
		for i := range scenario.Restaurants {
			restaurants = append(restaurants, scenario.Restaurants[i].Build())
		}
		if len(restaurants) == 0 {
			rf := &factories.RestaurantFactory{}
			restaurants = rf.CreateRestaurants(cfg.InitialRestaurants)
		}
		return scenario.Segments, restaurants, nil
	}

	sf := &factories.SegmentFactory{}
	rf := &factories.RestaurantFactory{}
	restaurants := rf.CreateRestaurants(cfg.InitialRestaurants)

	if viper.GetBool("production_aware") {
		rng := rand.New(rand.NewSource(cfg.Seed))
		for _, r := range restaurants {
			factories.WithProduction(r, rng)
		}
	}

	return sf.CreateStandardSegments(), restaurants, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.Flags().Int64("seed", 42, "Random seed for the simulation")
	rootCmd.Flags().Int("turns", 12, "Number of trading periods to simulate")
	rootCmd.Flags().Int("start-month", 1, "Calendar month of the first turn")
	rootCmd.Flags().Int("base-demand", 300, "Base customer demand per turn")
	rootCmd.Flags().Float64("demand-noise", 0.1, "Uniform noise range applied to demand")
	rootCmd.Flags().Float64("reputation-alpha", 0.3, "Weight of the latest satisfaction in reputation updates")
	rootCmd.Flags().Int("initial-restaurants", 4, "Number of generated competitors when no scenario is given")
	rootCmd.Flags().String("scenario-file", "", "Scenario file defining segments and restaurants")
	rootCmd.Flags().Bool("production-aware", false, "Generate production batches and run the discrete serving mode")
	rootCmd.Flags().String("output-destination", "console", "Where to write results (console, json, csv, parquet, kafka, postgres)")
	rootCmd.Flags().String("output-path", "output", "Base directory for file outputs")
	rootCmd.Flags().String("output-folder", "results", "Folder under the base directory")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")

	// Bind dashed flag names to their snake_case config keys.
	flagKeys := map[string]string{
		"seed":                "seed",
		"turns":               "turns",
		"start-month":         "start_month",
		"base-demand":         "base_demand",
		"demand-noise":        "demand_noise",
		"reputation-alpha":    "reputation_alpha",
		"initial-restaurants": "initial_restaurants",
		"scenario-file":       "scenario_file",
		"production-aware":    "production_aware",
		"output-destination":  "output_destination",
		"output-path":         "output_path",
		"output-folder":       "output_folder",
		"kafka-broker-list":   "kafka_broker_list",
	}
	for flag, key := range flagKeys {
		viper.BindPFlag(key, rootCmd.Flags().Lookup(flag))
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
