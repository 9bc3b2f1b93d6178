package market

import (
	"strings"

	"github.com/PierreLepagnol/foodops/internal/models"
)

// seasonalBonuses matches segment names by substring, covering both
// English and French scenario files. Values stay in the 0.9-1.3 band.
var seasonalBonuses = []struct {
	keywords []string
	months   map[int]float64
}{
	{
		keywords: []string{"student", "étudiant", "etudiant"},
		months: map[int]float64{
			1: 1.1, 2: 1.1, 3: 1.1, 4: 1.1, 5: 1.05, 6: 0.95,
			7: 0.9, 8: 0.9, 9: 1.15, 10: 1.1, 11: 1.1, 12: 1.0,
		},
	},
	{
		keywords: []string{"tourist", "touriste"},
		months: map[int]float64{
			1: 0.9, 2: 0.9, 3: 0.95, 4: 1.05, 5: 1.1, 6: 1.2,
			7: 1.3, 8: 1.3, 9: 1.1, 10: 1.0, 11: 0.9, 12: 1.05,
		},
	},
	{
		keywords: []string{"family", "famille"},
		months: map[int]float64{
			1: 1.0, 2: 1.05, 3: 1.0, 4: 1.05, 5: 1.0, 6: 1.0,
			7: 1.1, 8: 1.1, 9: 0.95, 10: 1.0, 11: 1.0, 12: 1.2,
		},
	},
	{
		keywords: []string{"worker", "actif", "office"},
		months: map[int]float64{
			1: 1.05, 2: 1.05, 3: 1.05, 4: 1.0, 5: 1.0, 6: 1.0,
			7: 0.9, 8: 0.85, 9: 1.05, 10: 1.05, 11: 1.05, 12: 0.95,
		},
	},
}

// DefaultSeasonality is the built-in seasonal lookup, used unless the
// caller installs its own via SetSeasonality. Unmatched segment names get
// a neutral 1.0.
func DefaultSeasonality(segmentName string, month int) float64 {
	name := strings.ToLower(segmentName)
	for _, entry := range seasonalBonuses {
		for _, keyword := range entry.keywords {
			if strings.Contains(name, keyword) {
				if bonus, ok := entry.months[month]; ok {
					return bonus
				}
				return 1.0
			}
		}
	}
	return 1.0
}

// turnDemand computes the turn's total customer pool and its split across
// segments. One uniform draw per turn keeps runs reproducible for a given
// seed.
func (e *Engine) turnDemand(month int) (int, map[string]int) {
	segmentDemand := make(map[string]int, len(e.segments))

	if e.cfg.BaseDemand <= 0 {
		for i := range e.segments {
			segmentDemand[e.segments[i].Name] = 0
		}
		return 0, segmentDemand
	}

	noise := (e.rng.Float64()*2 - 1) * e.cfg.DemandNoise
	total := int(float64(e.cfg.BaseDemand) * (1 + noise) * e.modifiers.Demand)
	if total < 0 {
		total = 0
	}

	for i := range e.segments {
		seg := &e.segments[i]
		bonus := e.seasonalBonus(seg, month)
		demand := int(float64(total) * seg.Share * bonus * e.modifiers.SegmentModifier(seg.Name))
		if demand < 0 {
			demand = 0
		}
		segmentDemand[seg.Name] = demand
	}

	return total, segmentDemand
}

// seasonalBonus prefers the segment's explicit per-month table over the
// market-wide lookup.
func (e *Engine) seasonalBonus(seg *models.MarketSegment, month int) float64 {
	if bonus, ok := seg.Seasonality[month]; ok {
		return bonus
	}
	return e.seasonality(seg.Name, month)
}
