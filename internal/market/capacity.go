package market

import (
	"sort"

	"github.com/PierreLepagnol/foodops/internal/models"
)

// applyCapacity caps each restaurant's served customers at capacity and
// redistributes the market-wide overflow into spare capacity, proportional
// to each restaurant's spare. Single pass: residual overflow left by
// integer truncation stays unserved, which is accepted lossy behavior.
func (e *Engine) applyCapacity(results map[string]*models.AllocationResult) {
	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	totalOverflow := 0
	totalSpare := 0
	spare := make(map[string]int, len(results))

	for _, id := range ids {
		result := results[id]
		if result.AllocatedDemand > result.Capacity {
			result.ServedCustomers = result.Capacity
			totalOverflow += result.AllocatedDemand - result.Capacity
		} else {
			result.ServedCustomers = result.AllocatedDemand
			spare[id] = result.Capacity - result.AllocatedDemand
			totalSpare += spare[id]
		}
	}

	if totalOverflow == 0 || totalSpare == 0 {
		return
	}

	redistributed := totalOverflow
	if totalSpare < redistributed {
		redistributed = totalSpare
	}

	for _, id := range ids {
		if spare[id] <= 0 {
			continue
		}
		additional := int(float64(redistributed) * float64(spare[id]) / float64(totalSpare))
		if additional > spare[id] {
			additional = spare[id]
		}
		results[id].ServedCustomers += additional
	}
}
