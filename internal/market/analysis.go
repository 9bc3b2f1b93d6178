package market

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Analysis summarizes one stored turn for reporting layers.
type Analysis struct {
	Turn               int             `json:"turn"`
	TotalDemand        int             `json:"total_demand"`
	TotalServed        int             `json:"total_served"`
	TotalCapacity      int             `json:"total_capacity"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	MarketUtilization  float64         `json:"market_utilization"`
	DemandSatisfaction float64         `json:"demand_satisfaction"`
	AverageTicket      decimal.Decimal `json:"average_ticket"`
}

// record resolves a turn number against the history; -1 means the most
// recent turn.
func (e *Engine) record(turn int) (*TurnRecord, error) {
	if len(e.history) == 0 {
		return nil, fmt.Errorf("no turns allocated yet")
	}
	if turn < 0 {
		return &e.history[len(e.history)-1], nil
	}
	for i := range e.history {
		if e.history[i].Turn == turn {
			return &e.history[i], nil
		}
	}
	return nil, fmt.Errorf("turn %d not found in history", turn)
}

// MarketAnalysis aggregates a stored turn into market-wide figures.
func (e *Engine) MarketAnalysis(turn int) (*Analysis, error) {
	rec, err := e.record(turn)
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{
		Turn:         rec.Turn,
		TotalDemand:  rec.TotalDemand,
		TotalRevenue: decimal.Zero,
	}
	for _, result := range rec.Results {
		analysis.TotalServed += result.ServedCustomers
		analysis.TotalCapacity += result.Capacity
		analysis.TotalRevenue = analysis.TotalRevenue.Add(result.Revenue)
	}

	if analysis.TotalCapacity > 0 {
		analysis.MarketUtilization = float64(analysis.TotalServed) / float64(analysis.TotalCapacity)
	}
	if analysis.TotalDemand > 0 {
		analysis.DemandSatisfaction = float64(analysis.TotalServed) / float64(analysis.TotalDemand)
	}
	if analysis.TotalServed > 0 {
		analysis.AverageTicket = analysis.TotalRevenue.DivRound(decimal.NewFromInt(int64(analysis.TotalServed)), 4)
	} else {
		analysis.AverageTicket = decimal.Zero
	}

	return analysis, nil
}

// MarketShare returns a restaurant's share of customers served in a turn.
func (e *Engine) MarketShare(restaurantID string, turn int) (decimal.Decimal, error) {
	rec, err := e.record(turn)
	if err != nil {
		return decimal.Zero, err
	}

	totalServed := 0
	for _, result := range rec.Results {
		totalServed += result.ServedCustomers
	}
	if totalServed == 0 {
		return decimal.Zero, nil
	}

	result, ok := rec.Results[restaurantID]
	if !ok {
		return decimal.Zero, fmt.Errorf("restaurant %s not present in turn %d", restaurantID, rec.Turn)
	}

	return decimal.NewFromInt(int64(result.ServedCustomers)).
		DivRound(decimal.NewFromInt(int64(totalServed)), 4), nil
}
