package market

import (
	"testing"

	"github.com/PierreLepagnol/foodops/internal/models"
	"github.com/shopspring/decimal"
)

func testConfig(baseDemand int) *models.Config {
	return &models.Config{
		Seed:            42,
		Turns:           1,
		StartMonth:      1,
		BaseDemand:      baseDemand,
		DemandNoise:     0,
		ReputationAlpha: 0.3,
	}
}

// singleSegment returns one segment taking the whole market, with a name
// that matches no seasonal table.
func singleSegment(budget float64) []models.MarketSegment {
	return []models.MarketSegment{{
		Name:               "locals",
		Share:              1.0,
		Budget:             decimal.NewFromFloat(budget),
		PriceSensitivity:   1.0,
		QualitySensitivity: 1.0,
	}}
}

func testRestaurant(id string, capacity int, price float64) *models.Restaurant {
	return &models.Restaurant{
		ID:            id,
		Name:          "Chez " + id,
		Type:          "casual",
		Menu:          map[string]decimal.Decimal{"plat": decimal.NewFromFloat(price)},
		ActiveRecipes: []string{"plat"},
		BaseCapacity:  capacity,
		Staffing:      models.StaffingNormal,
		Reputation:    5.0,
		QualityScore:  3.0,
	}
}

func newTestEngine(t *testing.T, cfg *models.Config, segments []models.MarketSegment) *Engine {
	t.Helper()
	engine, err := NewEngine(cfg, segments, nil)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return engine
}
