package market

import (
	"sort"

	"github.com/PierreLepagnol/foodops/internal/models"
)

// allocateContinuous splits each segment's demand across restaurants
// proportionally to attraction score. Integer truncation may lose up to
// one customer per restaurant per segment; that loss is accepted.
func (e *Engine) allocateContinuous(restaurants []*models.Restaurant, segmentDemand map[string]int, results map[string]*models.AllocationResult) {
	for i := range e.segments {
		seg := &e.segments[i]
		demand := segmentDemand[seg.Name]
		if demand <= 0 {
			continue
		}

		scores := make([]float64, len(restaurants))
		totalScore := 0.0
		for j, r := range restaurants {
			scores[j] = e.attractionScore(r, seg)
			totalScore += scores[j]
		}
		if totalScore == 0 {
			continue
		}

		for j, r := range restaurants {
			allocated := int(float64(demand) * scores[j] / totalScore)
			results[r.ID].AllocatedDemand += allocated
		}
	}
}

// rankedRestaurant pairs a competitor with its score for one segment.
type rankedRestaurant struct {
	restaurant *models.Restaurant
	score      float64
}

// allocateDiscrete simulates each segment's demand customer by customer,
// routing every customer to the highest-scoring restaurant that still has
// capacity and a servable recipe. A restaurant can never sell a recipe
// without ready units in this mode. Customers nobody can serve are
// dropped; overflow accounting only applies to the continuous mode.
func (e *Engine) allocateDiscrete(restaurants []*models.Restaurant, segmentDemand map[string]int, results map[string]*models.AllocationResult) {
	// Working copies so the inputs stay untouched.
	remainingCapacity := make(map[string]int, len(restaurants))
	readyUnits := make(map[string]map[string]int, len(restaurants))
	for _, r := range restaurants {
		remainingCapacity[r.ID] = r.EffectiveCapacity()
		units := make(map[string]int, len(r.ReadyUnits))
		for recipe, count := range r.ReadyUnits {
			units[recipe] = count
		}
		readyUnits[r.ID] = units
	}

	for i := range e.segments {
		seg := &e.segments[i]
		demand := segmentDemand[seg.Name]
		if demand <= 0 {
			continue
		}

		ranked := make([]rankedRestaurant, 0, len(restaurants))
		for _, r := range restaurants {
			score := e.attractionScore(r, seg)
			if score > 0 {
				ranked = append(ranked, rankedRestaurant{restaurant: r, score: score})
			}
		}
		sort.SliceStable(ranked, func(a, b int) bool {
			if ranked[a].score != ranked[b].score {
				return ranked[a].score > ranked[b].score
			}
			return ranked[a].restaurant.ID < ranked[b].restaurant.ID
		})

		for customer := 0; customer < demand; customer++ {
			for _, candidate := range ranked {
				r := candidate.restaurant
				if remainingCapacity[r.ID] <= 0 {
					continue
				}
				recipe, ok := cheapestServable(r, readyUnits[r.ID])
				if !ok {
					continue
				}

				remainingCapacity[r.ID]--
				readyUnits[r.ID][recipe]--
				result := results[r.ID]
				result.AllocatedDemand++
				result.ServedCustomers++
				result.RecipeSales[recipe]++
				break
			}
		}
	}
}

// cheapestServable picks the cheapest active recipe with ready units and a
// menu price, ties broken by recipe id for determinism.
func cheapestServable(r *models.Restaurant, readyUnits map[string]int) (string, bool) {
	best := ""
	found := false
	for _, recipe := range r.PricedRecipes() {
		if readyUnits[recipe] <= 0 {
			continue
		}
		if !found || r.Menu[recipe].LessThan(r.Menu[best]) {
			best = recipe
			found = true
		}
	}
	return best, found
}
