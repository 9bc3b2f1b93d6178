package market

import (
	"math"
	"testing"

	"github.com/PierreLepagnol/foodops/internal/models"
	"github.com/shopspring/decimal"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPriceFactorTiers(t *testing.T) {
	engine := newTestEngine(t, testConfig(100), singleSegment(10))
	seg := &engine.segments[0] // budget 10, price sensitivity 1.0

	tests := []struct {
		name     string
		price    float64
		expected float64
	}{
		{name: "bargain", price: 8, expected: 1.5},
		{name: "at_budget", price: 10, expected: 1.2},
		{name: "slightly_over", price: 12, expected: 0.8},
		{name: "expensive", price: 15, expected: 0.4},
		{name: "out_of_reach", price: 16, expected: 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRestaurant("r1", 50, tt.price)
			if got := engine.priceFactor(r, seg); !almostEqual(got, tt.expected) {
				t.Errorf("priceFactor(price=%.0f) = %.3f, want %.3f", tt.price, got, tt.expected)
			}
		})
	}
}

func TestPriceFactorNoMenu(t *testing.T) {
	engine := newTestEngine(t, testConfig(100), singleSegment(10))
	r := &models.Restaurant{ID: "r1", Type: "casual", Staffing: models.StaffingNormal}

	if got := engine.priceFactor(r, &engine.segments[0]); got != 0.5 {
		t.Errorf("priceFactor with empty menu = %.3f, want 0.5", got)
	}
}

func TestPriceFactorSensitivityScaling(t *testing.T) {
	segments := singleSegment(10)
	segments[0].PriceSensitivity = 0 // indifferent to price
	engine := newTestEngine(t, testConfig(100), segments)
	r := testRestaurant("r1", 50, 8)

	// tier factor 1.5 doubled for a price-indifferent segment
	if got := engine.priceFactor(r, &engine.segments[0]); !almostEqual(got, 3.0) {
		t.Errorf("priceFactor at sensitivity 0 = %.3f, want 3.0", got)
	}

	engine.SetModifiers(models.MarketModifiers{PriceSensitivity: 5.0})
	// effective sensitivity clamps to 2, wiping the factor
	if got := engine.priceFactor(r, &engine.segments[0]); got != 0 {
		t.Errorf("priceFactor at clamped sensitivity 2 = %.3f, want 0", got)
	}
}

func TestQualityFactor(t *testing.T) {
	tests := []struct {
		name        string
		quality     float64
		sensitivity float64
		reputation  float64
		expected    float64
	}{
		{name: "average_quality_neutral", quality: 3.0, sensitivity: 1.0, reputation: 5.0, expected: 1.2},
		{name: "quality_seeker_amplifies", quality: 3.0, sensitivity: 1.8, reputation: 5.0, expected: 1.28},
		{name: "price_driven_dampens", quality: 3.0, sensitivity: 0.6, reputation: 5.0, expected: 1.12},
		{name: "reputation_bonus", quality: 3.0, sensitivity: 1.0, reputation: 10.0, expected: 1.3},
		{name: "reputation_malus", quality: 3.0, sensitivity: 1.0, reputation: 0.0, expected: 1.1},
		{name: "floor_clamp", quality: 1.0, sensitivity: 1.8, reputation: 0.0, expected: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := singleSegment(10)
			segments[0].QualitySensitivity = tt.sensitivity
			engine := newTestEngine(t, testConfig(100), segments)

			r := testRestaurant("r1", 50, 10)
			r.QualityScore = tt.quality
			r.Reputation = tt.reputation

			if got := engine.qualityFactor(r, &engine.segments[0]); !almostEqual(got, tt.expected) {
				t.Errorf("qualityFactor = %.4f, want %.4f", got, tt.expected)
			}
		})
	}
}

func TestAttractionScoreClosed(t *testing.T) {
	engine := newTestEngine(t, testConfig(100), singleSegment(10))
	r := testRestaurant("r1", 50, 10)
	r.Staffing = models.StaffingClosed

	if got := engine.attractionScore(r, &engine.segments[0]); got != 0 {
		t.Errorf("closed restaurant score = %.3f, want 0", got)
	}
}

func TestAttractionScoreCompetitorModifier(t *testing.T) {
	engine := newTestEngine(t, testConfig(100), singleSegment(10))
	r := testRestaurant("r1", 50, 10)

	baseline := engine.attractionScore(r, &engine.segments[0])
	engine.SetModifiers(models.MarketModifiers{PerCompetitor: map[string]float64{"r1": 0.5}})

	if got := engine.attractionScore(r, &engine.segments[0]); !almostEqual(got, baseline*0.5) {
		t.Errorf("modified score = %.4f, want %.4f", got, baseline*0.5)
	}
}

func TestProductionQualityFactor(t *testing.T) {
	tests := []struct {
		name     string
		units    map[string]int
		quality  map[string]float64
		expected float64
	}{
		{name: "no_batches_neutral", expected: 1.0},
		{name: "great_batch_capped", units: map[string]int{"plat": 10}, quality: map[string]float64{"plat": 1.8}, expected: 1.1},
		{name: "poor_batch_floored", units: map[string]int{"plat": 10}, quality: map[string]float64{"plat": 0.2}, expected: 0.9},
		{name: "mild_deviation", units: map[string]int{"plat": 10}, quality: map[string]float64{"plat": 1.2}, expected: 1.04},
		{
			name:     "weighted_by_units",
			units:    map[string]int{"plat": 30, "dessert": 10},
			quality:  map[string]float64{"plat": 1.0, "dessert": 1.4},
			expected: 1.02, // average 1.1, a fifth of the 0.1 deviation
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &models.Restaurant{
				Menu:         map[string]decimal.Decimal{"plat": decimal.NewFromFloat(10)},
				ReadyUnits:   tt.units,
				BatchQuality: tt.quality,
			}
			if got := productionQualityFactor(r); !almostEqual(got, tt.expected) {
				t.Errorf("productionQualityFactor = %.4f, want %.4f", got, tt.expected)
			}
		})
	}
}
