package models

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// StaffingLevel is the staffing decision for a trading period.
// 0 keeps the restaurant closed, 3 runs a reinforced team.
type StaffingLevel int

const (
	StaffingClosed StaffingLevel = iota
	StaffingReduced
	StaffingNormal
	StaffingReinforced
)

var (
	// StaffingFactors scale both capacity and attractiveness by staffing level.
	StaffingFactors = map[StaffingLevel]float64{
		StaffingClosed:     0.0,
		StaffingReduced:    0.8,
		StaffingNormal:     1.0,
		StaffingReinforced: 1.2,
	}

	// ServiceSpeeds gives the base service speed per restaurant type.
	ServiceSpeeds = map[string]float64{
		"fast_food":   1.3,
		"food_truck":  1.1,
		"casual":      1.0,
		"brasserie":   0.9,
		"fine_dining": 0.7,
	}
)

// Restaurant is one competitor on the market for a turn. The allocation
// engine reads it but never writes it; state transitions come back on the
// AllocationResult and are applied with ApplyAllocation.
type Restaurant struct {
	ID            string                     `json:"id"`
	Name          string                     `json:"name"`
	Type          string                     `json:"type"`
	Menu          map[string]decimal.Decimal `json:"menu"`
	ActiveRecipes []string                   `json:"active_recipes"`
	BaseCapacity  int                        `json:"base_capacity"`
	Staffing      StaffingLevel              `json:"staffing_level"`
	Reputation    float64                    `json:"reputation"`    // 0-10, persists across turns
	QualityScore  float64                    `json:"quality_score"` // 1-5, from ingredient choices

	// ReadyUnits holds FEFO-produced units per recipe for the current turn,
	// populated by the external production planner. Empty means the market
	// runs in continuous mode for everyone.
	ReadyUnits map[string]int `json:"ready_units,omitempty"`

	// BatchQuality holds this turn's production quality per recipe,
	// 1.0 being neutral.
	BatchQuality map[string]float64 `json:"batch_quality,omitempty"`
}

// ServiceSpeed returns the base service speed for the restaurant's type,
// defaulting to 1.0 for unknown types.
func (r *Restaurant) ServiceSpeed() float64 {
	if speed, ok := ServiceSpeeds[r.Type]; ok {
		return speed
	}
	return 1.0
}

// EffectiveCapacity derives the customers the restaurant can serve this
// turn from base capacity, service speed and staffing.
func (r *Restaurant) EffectiveCapacity() int {
	factor := StaffingFactors[r.Staffing]
	return int(float64(r.BaseCapacity) * r.ServiceSpeed() * factor)
}

// AverageTicket is the mean price across active recipes that have a menu
// price. Active recipes without a price are skipped; zero means the
// restaurant effectively has no sellable menu.
func (r *Restaurant) AverageTicket() decimal.Decimal {
	sum := decimal.Zero
	count := 0
	for _, recipe := range r.ActiveRecipes {
		price, ok := r.Menu[recipe]
		if !ok {
			continue
		}
		sum = sum.Add(price)
		count++
	}
	if count == 0 {
		return decimal.Zero
	}
	return sum.DivRound(decimal.NewFromInt(int64(count)), 4)
}

// PricedRecipes returns the active recipes that have a menu price, in a
// deterministic order.
func (r *Restaurant) PricedRecipes() []string {
	recipes := make([]string, 0, len(r.ActiveRecipes))
	for _, recipe := range r.ActiveRecipes {
		if _, ok := r.Menu[recipe]; ok {
			recipes = append(recipes, recipe)
		}
	}
	sort.Strings(recipes)
	return recipes
}

// TotalReadyUnits sums production-ready units across recipes.
func (r *Restaurant) TotalReadyUnits() int {
	total := 0
	for _, units := range r.ReadyUnits {
		if units > 0 {
			total += units
		}
	}
	return total
}

// ApplyAllocation applies the turn's state transitions: the blended
// reputation and, in production-aware mode, the consumption of ready units.
func (r *Restaurant) ApplyAllocation(result *AllocationResult) {
	if result == nil {
		return
	}
	r.Reputation = result.ReputationAfter
	if len(r.ReadyUnits) == 0 {
		return
	}
	for recipe, sold := range result.RecipeSales {
		if remaining, ok := r.ReadyUnits[recipe]; ok {
			r.ReadyUnits[recipe] = int(math.Max(0, float64(remaining-sold)))
		}
	}
}

// BlendReputation folds a 1-5 satisfaction score into the 0-10 reputation
// scale using an exponential moving average. Monotonic in satisfaction.
func BlendReputation(current, satisfaction, alpha float64) float64 {
	if alpha <= 0 {
		return current
	}
	if alpha > 1 {
		alpha = 1
	}
	blended := current*(1-alpha) + satisfaction*2*alpha
	return math.Max(0, math.Min(10, blended))
}
