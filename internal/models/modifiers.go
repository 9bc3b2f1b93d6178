package models

// MarketModifiers carries the per-turn multipliers produced by the
// external competition and event subsystems. Everything defaults to 1.0
// so an absent subsystem leaves the market untouched.
type MarketModifiers struct {
	Demand            float64            `json:"demand" mapstructure:"demand"`
	PriceSensitivity  float64            `json:"price_sensitivity" mapstructure:"price_sensitivity"`
	QualityImportance float64            `json:"quality_importance" mapstructure:"quality_importance"`
	PerSegment        map[string]float64 `json:"per_segment,omitempty" mapstructure:"per_segment"`
	PerCompetitor     map[string]float64 `json:"per_competitor,omitempty" mapstructure:"per_competitor"`
}

// NeutralModifiers returns the all-1.0 modifier set.
func NeutralModifiers() MarketModifiers {
	return MarketModifiers{
		Demand:            1.0,
		PriceSensitivity:  1.0,
		QualityImportance: 1.0,
	}
}

// SegmentModifier returns the extra demand multiplier for a segment.
func (m *MarketModifiers) SegmentModifier(segmentName string) float64 {
	if mod, ok := m.PerSegment[segmentName]; ok {
		return mod
	}
	return 1.0
}

// CompetitorModifier returns the extra attraction multiplier for a
// restaurant.
func (m *MarketModifiers) CompetitorModifier(restaurantID string) float64 {
	if mod, ok := m.PerCompetitor[restaurantID]; ok {
		return mod
	}
	return 1.0
}
