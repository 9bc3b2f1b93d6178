package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// RestaurantSpec is the scenario-file form of a restaurant, with plain
// float prices for readable YAML.
type RestaurantSpec struct {
	ID            string             `mapstructure:"id"`
	Name          string             `mapstructure:"name"`
	Type          string             `mapstructure:"type"`
	Menu          map[string]float64 `mapstructure:"menu"`
	ActiveRecipes []string           `mapstructure:"active_recipes"`
	BaseCapacity  int                `mapstructure:"base_capacity"`
	Staffing      int                `mapstructure:"staffing_level"`
	Reputation    float64            `mapstructure:"reputation"`
	QualityScore  float64            `mapstructure:"quality_score"`
}

// segmentSpec mirrors MarketSegment with a float budget for decoding.
type segmentSpec struct {
	Name               string             `mapstructure:"name"`
	Share              float64            `mapstructure:"share"`
	Budget             float64            `mapstructure:"budget"`
	PriceSensitivity   float64            `mapstructure:"price_sensitivity"`
	QualitySensitivity float64            `mapstructure:"quality_sensitivity"`
	TypeAffinity       map[string]float64 `mapstructure:"type_affinity"`
	Seasonality        map[int]float64    `mapstructure:"seasonality"`
}

// Scenario is the demand-model configuration for a whole game, loaded
// once and treated as immutable afterwards.
type Scenario struct {
	Name        string
	BaseDemand  int
	Segments    []MarketSegment
	Restaurants []RestaurantSpec
}

// LoadScenario reads a YAML or JSON scenario file and validates its
// segments before handing it to the engine.
func LoadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading scenario file: %w", err)
	}

	var raw struct {
		Name        string           `mapstructure:"name"`
		BaseDemand  int              `mapstructure:"base_demand"`
		Segments    []segmentSpec    `mapstructure:"segments"`
		Restaurants []RestaurantSpec `mapstructure:"restaurants"`
	}
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("unable to decode scenario, %w", err)
	}

	scenario := &Scenario{
		Name:        raw.Name,
		BaseDemand:  raw.BaseDemand,
		Restaurants: raw.Restaurants,
	}
	for _, spec := range raw.Segments {
		scenario.Segments = append(scenario.Segments, MarketSegment{
			Name:               spec.Name,
			Share:              spec.Share,
			Budget:             decimal.NewFromFloat(spec.Budget),
			PriceSensitivity:   spec.PriceSensitivity,
			QualitySensitivity: spec.QualitySensitivity,
			TypeAffinity:       spec.TypeAffinity,
			Seasonality:        spec.Seasonality,
		})
	}

	if err := ValidateSegments(scenario.Segments); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}

	return scenario, nil
}

// Build converts a RestaurantSpec into the engine's Restaurant form.
func (spec *RestaurantSpec) Build() *Restaurant {
	menu := make(map[string]decimal.Decimal, len(spec.Menu))
	for recipe, price := range spec.Menu {
		menu[recipe] = decimal.NewFromFloat(price)
	}
	return &Restaurant{
		ID:            spec.ID,
		Name:          spec.Name,
		Type:          spec.Type,
		Menu:          menu,
		ActiveRecipes: spec.ActiveRecipes,
		BaseCapacity:  spec.BaseCapacity,
		Staffing:      StaffingLevel(spec.Staffing),
		Reputation:    spec.Reputation,
		QualityScore:  spec.QualityScore,
	}
}
