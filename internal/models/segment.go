package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MarketSegment is a named slice of the customer pool with its own budget
// and sensitivities. Immutable once loaded from a scenario.
type MarketSegment struct {
	Name               string             `json:"name" mapstructure:"name"`
	Share              float64            `json:"share" mapstructure:"share"`
	Budget             decimal.Decimal    `json:"budget" mapstructure:"budget"`
	PriceSensitivity   float64            `json:"price_sensitivity" mapstructure:"price_sensitivity"`     // 0-2
	QualitySensitivity float64            `json:"quality_sensitivity" mapstructure:"quality_sensitivity"` // 0-2
	TypeAffinity       map[string]float64 `json:"type_affinity" mapstructure:"type_affinity"`

	// Seasonality optionally overrides the market-wide seasonal lookup
	// with explicit per-month multipliers (1-12).
	Seasonality map[int]float64 `json:"seasonality,omitempty" mapstructure:"seasonality"`
}

// AffinityFor returns the segment's multiplier for a restaurant type,
// defaulting to 1.0 when the type is not listed.
func (s *MarketSegment) AffinityFor(restaurantType string) float64 {
	if affinity, ok := s.TypeAffinity[restaurantType]; ok {
		return affinity
	}
	return 1.0
}

// Validate rejects malformed segments at construction time so the engine
// can assume clean inputs.
func (s *MarketSegment) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("segment has no name")
	}
	if s.Share < 0 || s.Share > 1 {
		return fmt.Errorf("segment %s: share %.3f outside [0,1]", s.Name, s.Share)
	}
	if !s.Budget.IsPositive() {
		return fmt.Errorf("segment %s: budget must be positive, got %s", s.Name, s.Budget)
	}
	if s.PriceSensitivity < 0 || s.PriceSensitivity > 2 {
		return fmt.Errorf("segment %s: price sensitivity %.3f outside [0,2]", s.Name, s.PriceSensitivity)
	}
	if s.QualitySensitivity < 0 || s.QualitySensitivity > 2 {
		return fmt.Errorf("segment %s: quality sensitivity %.3f outside [0,2]", s.Name, s.QualitySensitivity)
	}
	for restaurantType, affinity := range s.TypeAffinity {
		if affinity < 0 {
			return fmt.Errorf("segment %s: negative affinity %.3f for type %s", s.Name, affinity, restaurantType)
		}
	}
	return nil
}

// ValidateSegments checks every segment and enforces the share-sum
// tolerance. Shares are not normalized; a sum inside 0.95-1.05 is
// accepted and the resulting demand drift is deliberate.
func ValidateSegments(segments []MarketSegment) error {
	if len(segments) == 0 {
		return fmt.Errorf("no market segments defined")
	}
	sum := 0.0
	for i := range segments {
		if err := segments[i].Validate(); err != nil {
			return err
		}
		sum += segments[i].Share
	}
	if sum < 0.95 || sum > 1.05 {
		return fmt.Errorf("segment shares sum to %.3f, expected 0.95-1.05", sum)
	}
	return nil
}
