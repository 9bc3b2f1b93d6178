package factories

import (
	"github.com/PierreLepagnol/foodops/internal/models"
	"github.com/shopspring/decimal"
)

type SegmentFactory struct{}

// CreateStandardSegments returns the four default market segments used
// when no scenario file is supplied. Shares sum to 1.0.
func (sf *SegmentFactory) CreateStandardSegments() []models.MarketSegment {
	return []models.MarketSegment{
		{
			Name:               "students",
			Share:              0.30,
			Budget:             decimal.NewFromFloat(9.50),
			PriceSensitivity:   1.6,
			QualitySensitivity: 0.6,
			TypeAffinity: map[string]float64{
				"fast_food":   1.4,
				"food_truck":  1.3,
				"casual":      1.0,
				"brasserie":   0.7,
				"fine_dining": 0.2,
			},
		},
		{
			Name:               "families",
			Share:              0.30,
			Budget:             decimal.NewFromFloat(14.00),
			PriceSensitivity:   1.1,
			QualitySensitivity: 1.0,
			TypeAffinity: map[string]float64{
				"fast_food":   1.1,
				"food_truck":  0.8,
				"casual":      1.3,
				"brasserie":   1.0,
				"fine_dining": 0.4,
			},
		},
		{
			Name:               "workers",
			Share:              0.25,
			Budget:             decimal.NewFromFloat(13.00),
			PriceSensitivity:   1.0,
			QualitySensitivity: 0.9,
			TypeAffinity: map[string]float64{
				"fast_food":   1.0,
				"food_truck":  1.2,
				"casual":      1.1,
				"brasserie":   1.1,
				"fine_dining": 0.5,
			},
		},
		{
			Name:               "foodies",
			Share:              0.15,
			Budget:             decimal.NewFromFloat(28.00),
			PriceSensitivity:   0.4,
			QualitySensitivity: 1.8,
			TypeAffinity: map[string]float64{
				"fast_food":   0.3,
				"food_truck":  0.9,
				"casual":      1.0,
				"brasserie":   1.2,
				"fine_dining": 1.6,
			},
		},
	}
}
