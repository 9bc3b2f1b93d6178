package market

import (
	"github.com/PierreLepagnol/foodops/internal/models"
	"github.com/shopspring/decimal"
)

// satisfactionTiers maps the ticket-to-quality ratio to a 1-5 score. A
// cheap meal at high quality delights; an expensive mediocre one does not.
var satisfactionTiers = []struct {
	upTo  float64
	score float64
}{
	{2.5, 5.0},
	{3.5, 4.0},
	{4.5, 3.0},
	{6.0, 2.0},
}

// computeRevenue fills the result's revenue from recorded per-recipe sales
// when present, or the even-split fallback otherwise. Recipes whose menu
// price is missing contribute nothing instead of failing the turn.
func (e *Engine) computeRevenue(r *models.Restaurant, result *models.AllocationResult) {
	if len(result.RecipeSales) == 0 && result.ServedCustomers > 0 {
		result.RecipeSales = evenSplit(result.ServedCustomers, r.PricedRecipes())
	}

	revenue := decimal.Zero
	for recipe, sold := range result.RecipeSales {
		price, ok := r.Menu[recipe]
		if !ok {
			continue
		}
		revenue = revenue.Add(price.Mul(decimal.NewFromInt(int64(sold))))
	}
	result.Revenue = revenue
}

// evenSplit spreads served customers as evenly as possible across recipes,
// with the remainder going to the first recipes in order.
func evenSplit(served int, recipes []string) map[string]int {
	sales := make(map[string]int, len(recipes))
	if len(recipes) == 0 || served <= 0 {
		return sales
	}

	base := served / len(recipes)
	remainder := served % len(recipes)
	for i, recipe := range recipes {
		sales[recipe] = base
		if i < remainder {
			sales[recipe]++
		}
	}
	return sales
}

// computeSatisfaction derives the 1-5 satisfaction score from the final
// price-to-quality ratio and produces the reputation the caller applies
// for the next turn. Restaurants that served nobody keep their reputation.
func (e *Engine) computeSatisfaction(r *models.Restaurant, result *models.AllocationResult) {
	result.ReputationAfter = r.Reputation
	if result.ServedCustomers == 0 {
		return
	}

	ticket, _ := result.Revenue.DivRound(decimal.NewFromInt(int64(result.ServedCustomers)), 4).Float64()
	ratio := ticket
	if r.QualityScore > 0 {
		ratio = ticket / r.QualityScore
	}

	result.Satisfaction = satisfactionScore(ratio)
	result.ReputationAfter = models.BlendReputation(r.Reputation, result.Satisfaction, e.cfg.ReputationAlpha)
}

func satisfactionScore(ratio float64) float64 {
	for _, tier := range satisfactionTiers {
		if ratio <= tier.upTo {
			return tier.score
		}
	}
	return 1.0
}
