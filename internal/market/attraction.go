package market

import (
	"math"

	"github.com/PierreLepagnol/foodops/internal/models"
)

// qualityTiers maps the 1-5 ingredient quality score to a base factor.
var qualityTiers = []struct {
	upTo   float64
	factor float64
}{
	{1.5, 0.70},
	{2.5, 1.00},
	{3.5, 1.20},
	{4.5, 1.40},
	{math.MaxFloat64, 1.60},
}

// priceTiers maps the ticket-to-budget ratio to a base factor; the tier
// factor is then scaled by (2 - sensitivity). Boundaries are inclusive on
// the lower tier.
var priceTiers = []struct {
	upTo   float64
	factor float64
}{
	{0.8, 1.5},
	{1.0, 1.2},
	{1.2, 0.8},
	{1.5, 0.4},
	{math.MaxFloat64, 0.1},
}

// attractionScore rates how appealing a restaurant is to a segment this
// turn. Non-negative; zero means the restaurant draws nobody from the
// segment (closed, or wiped out by a modifier).
func (e *Engine) attractionScore(r *models.Restaurant, seg *models.MarketSegment) float64 {
	staffing := models.StaffingFactors[r.Staffing]
	if staffing == 0 {
		return 0
	}

	score := seg.AffinityFor(r.Type) *
		e.priceFactor(r, seg) *
		e.qualityFactor(r, seg) *
		productionQualityFactor(r) *
		staffing *
		e.modifiers.CompetitorModifier(r.ID)

	return math.Max(0, score)
}

// priceFactor compares the restaurant's average ticket to the segment's
// budget. A restaurant with no sellable menu gets a fixed reduced factor
// rather than disappearing from the market.
func (e *Engine) priceFactor(r *models.Restaurant, seg *models.MarketSegment) float64 {
	ticket := r.AverageTicket()
	if !ticket.IsPositive() {
		return 0.5
	}

	ratio, _ := ticket.Div(seg.Budget).Float64()
	sensitivity := seg.PriceSensitivity * e.modifiers.PriceSensitivity
	sensitivity = math.Max(0, math.Min(2, sensitivity))

	for _, tier := range priceTiers {
		if ratio <= tier.upTo {
			return tier.factor * (2 - sensitivity)
		}
	}
	return 0
}

// qualityFactor maps ingredient quality to a base factor, scales its
// deviation from neutral by how much the segment cares about quality, and
// adds the reputation adjustment earned in previous turns.
func (e *Engine) qualityFactor(r *models.Restaurant, seg *models.MarketSegment) float64 {
	base := 1.0
	for _, tier := range qualityTiers {
		if r.QualityScore <= tier.upTo {
			base = tier.factor
			break
		}
	}

	sensitivity := qualitySensitivityMultiplier(seg.QualitySensitivity) * e.modifiers.QualityImportance
	factor := 1.0 + (base-1.0)*sensitivity

	factor += (r.Reputation/10.0 - 0.5) * 0.2

	return math.Max(0.5, math.Min(2.0, factor))
}

// qualitySensitivityMultiplier buckets the segment's 0-2 quality
// sensitivity: price-driven segments barely react to quality, quality
// seekers react strongly.
func qualitySensitivityMultiplier(sensitivity float64) float64 {
	switch {
	case sensitivity < 0.8:
		return 0.6
	case sensitivity > 1.2:
		return 1.4
	default:
		return 1.0
	}
}

// productionQualityFactor rewards well-executed batches. The average batch
// quality, weighted by produced quantity, moves the factor by a fifth of
// its deviation from neutral, capped at ±10%.
func productionQualityFactor(r *models.Restaurant) float64 {
	if len(r.BatchQuality) == 0 {
		return 1.0
	}

	weightedSum := 0.0
	totalUnits := 0.0
	for recipe, quality := range r.BatchQuality {
		units := float64(r.ReadyUnits[recipe])
		if units <= 0 {
			continue
		}
		weightedSum += quality * units
		totalUnits += units
	}
	if totalUnits == 0 {
		return 1.0
	}

	average := weightedSum / totalUnits
	factor := 1.0 + (average-1.0)*0.2
	return math.Max(0.90, math.Min(1.10, factor))
}
