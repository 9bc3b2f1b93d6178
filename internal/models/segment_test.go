package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func validSegment() MarketSegment {
	return MarketSegment{
		Name:               "students",
		Share:              0.5,
		Budget:             decimal.NewFromFloat(10),
		PriceSensitivity:   1.5,
		QualitySensitivity: 0.6,
		TypeAffinity:       map[string]float64{"fast_food": 1.4},
	}
}

func TestSegmentValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MarketSegment)
		wantErr bool
	}{
		{name: "valid", mutate: func(s *MarketSegment) {}, wantErr: false},
		{name: "missing_name", mutate: func(s *MarketSegment) { s.Name = "" }, wantErr: true},
		{name: "share_above_one", mutate: func(s *MarketSegment) { s.Share = 1.2 }, wantErr: true},
		{name: "negative_share", mutate: func(s *MarketSegment) { s.Share = -0.1 }, wantErr: true},
		{name: "zero_budget", mutate: func(s *MarketSegment) { s.Budget = decimal.Zero }, wantErr: true},
		{name: "price_sensitivity_out_of_range", mutate: func(s *MarketSegment) { s.PriceSensitivity = 2.5 }, wantErr: true},
		{name: "quality_sensitivity_out_of_range", mutate: func(s *MarketSegment) { s.QualitySensitivity = -0.5 }, wantErr: true},
		{name: "negative_affinity", mutate: func(s *MarketSegment) { s.TypeAffinity["fast_food"] = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := validSegment()
			tt.mutate(&seg)
			err := seg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSegmentsShareSum(t *testing.T) {
	a := validSegment()
	b := validSegment()
	b.Name = "families"

	// 0.5 + 0.5 = 1.0, inside tolerance
	if err := ValidateSegments([]MarketSegment{a, b}); err != nil {
		t.Errorf("expected valid segment set, got %v", err)
	}

	// 0.5 + 0.3 = 0.8, outside the 0.95-1.05 tolerance
	b.Share = 0.3
	if err := ValidateSegments([]MarketSegment{a, b}); err == nil {
		t.Error("expected share-sum tolerance error")
	}

	if err := ValidateSegments(nil); err == nil {
		t.Error("expected error for empty segment set")
	}
}

func TestAffinityForDefaults(t *testing.T) {
	seg := validSegment()
	if got := seg.AffinityFor("fast_food"); got != 1.4 {
		t.Errorf("AffinityFor(fast_food) = %.2f, want 1.4", got)
	}
	if got := seg.AffinityFor("fine_dining"); got != 1.0 {
		t.Errorf("AffinityFor(unlisted) = %.2f, want 1.0", got)
	}
}
