package models

import "github.com/shopspring/decimal"

// AllocationResult is the per-restaurant outcome of one market turn.
// Created fresh each turn and never persisted by the engine itself.
type AllocationResult struct {
	RestaurantID    string          `json:"restaurant_id"`
	Turn            int             `json:"turn"`
	AllocatedDemand int             `json:"allocated_demand"`
	ServedCustomers int             `json:"served_customers"`
	Capacity        int             `json:"capacity"`
	UtilizationRate float64         `json:"utilization_rate"`
	LostCustomers   int             `json:"lost_customers"`
	Revenue         decimal.Decimal `json:"revenue"`
	AverageTicket   decimal.Decimal `json:"average_ticket"`
	RecipeSales     map[string]int  `json:"recipe_sales"`

	// Satisfaction is the 1-5 score derived from price-to-quality, 0 when
	// nobody was served. ReputationAfter is the reputation the caller
	// should apply for the next turn.
	Satisfaction    float64 `json:"satisfaction"`
	ReputationAfter float64 `json:"reputation_after"`
}

// Recompute refreshes the derived fields from the final served and
// revenue figures, after capacity capping and redistribution.
func (r *AllocationResult) Recompute() {
	if r.Capacity > 0 {
		r.UtilizationRate = float64(r.ServedCustomers) / float64(r.Capacity)
	} else {
		r.UtilizationRate = 0
	}

	r.LostCustomers = r.AllocatedDemand - r.ServedCustomers
	if r.LostCustomers < 0 {
		r.LostCustomers = 0
	}

	if r.ServedCustomers > 0 {
		r.AverageTicket = r.Revenue.DivRound(decimal.NewFromInt(int64(r.ServedCustomers)), 4)
	} else {
		r.AverageTicket = decimal.Zero
	}
}
