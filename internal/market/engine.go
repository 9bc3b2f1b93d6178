package market

import (
	"fmt"
	"math/rand"

	"github.com/PierreLepagnol/foodops/internal/models"
	"go.uber.org/zap"
)

// SeasonalityFunc maps (segment name, month) to a demand multiplier.
// Ownership is external; the engine only calls it.
type SeasonalityFunc func(segmentName string, month int) float64

// TurnRecord is one entry of the engine's turn history.
type TurnRecord struct {
	Turn        int
	Month       int
	TotalDemand int
	Results     map[string]*models.AllocationResult
}

// Engine distributes a pool of simulated customers across competing
// restaurants, one synchronous call per turn. All randomness comes from
// the engine's own seeded generator, so a given seed and call sequence
// reproduces the same market.
type Engine struct {
	cfg         *models.Config
	segments    []models.MarketSegment
	seasonality SeasonalityFunc
	modifiers   models.MarketModifiers
	rng         *rand.Rand
	log         *zap.Logger

	// history grows one record per turn; callers needing bounded memory
	// truncate it with TruncateHistory.
	history []TurnRecord
}

// NewEngine builds an allocation engine over a validated segment set.
func NewEngine(cfg *models.Config, segments []models.MarketSegment, log *zap.Logger) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if err := models.ValidateSegments(segments); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		cfg:         cfg,
		segments:    segments,
		seasonality: DefaultSeasonality,
		modifiers:   models.NeutralModifiers(),
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		log:         log.Named("market"),
	}, nil
}

// SetModifiers installs the turn's market modifiers from the external
// event/competition subsystem.
func (e *Engine) SetModifiers(mods models.MarketModifiers) {
	if mods.Demand == 0 {
		mods.Demand = 1.0
	}
	if mods.PriceSensitivity == 0 {
		mods.PriceSensitivity = 1.0
	}
	if mods.QualityImportance == 0 {
		mods.QualityImportance = 1.0
	}
	e.modifiers = mods
}

// SetSeasonality replaces the seasonal lookup.
func (e *Engine) SetSeasonality(fn SeasonalityFunc) {
	if fn != nil {
		e.seasonality = fn
	}
}

// AllocateDemand runs one full market turn: demand computation, per-segment
// allocation, capacity constraints, revenue and satisfaction. Inputs are
// never mutated; reputation and inventory transitions come back on the
// results and are applied by the caller via Restaurant.ApplyAllocation.
func (e *Engine) AllocateDemand(restaurants []*models.Restaurant, turn, month int) (map[string]*models.AllocationResult, error) {
	if month < 1 || month > 12 {
		month = 1
	}
	if err := checkRestaurants(restaurants); err != nil {
		return nil, err
	}

	totalDemand, segmentDemand := e.turnDemand(month)

	results := make(map[string]*models.AllocationResult, len(restaurants))
	for _, r := range restaurants {
		results[r.ID] = &models.AllocationResult{
			RestaurantID: r.ID,
			Turn:         turn,
			Capacity:     r.EffectiveCapacity(),
			RecipeSales:  make(map[string]int),
		}
	}

	if productionAware(restaurants) {
		e.allocateDiscrete(restaurants, segmentDemand, results)
	} else {
		e.allocateContinuous(restaurants, segmentDemand, results)
		e.applyCapacity(results)
	}

	for _, r := range restaurants {
		result := results[r.ID]
		e.computeRevenue(r, result)
		e.computeSatisfaction(r, result)
		result.Recompute()
	}

	e.history = append(e.history, TurnRecord{
		Turn:        turn,
		Month:       month,
		TotalDemand: totalDemand,
		Results:     results,
	})

	e.log.Debug("turn allocated",
		zap.Int("turn", turn),
		zap.Int("month", month),
		zap.Int("total_demand", totalDemand),
		zap.Int("restaurants", len(restaurants)),
	)

	return results, nil
}

// History returns the stored turn records. The slice is shared; callers
// must not modify past records.
func (e *Engine) History() []TurnRecord {
	return e.history
}

// TruncateHistory keeps only the most recent keep records.
func (e *Engine) TruncateHistory(keep int) {
	if keep < 0 {
		keep = 0
	}
	if len(e.history) > keep {
		e.history = e.history[len(e.history)-keep:]
	}
}

func checkRestaurants(restaurants []*models.Restaurant) error {
	seen := make(map[string]bool, len(restaurants))
	for i, r := range restaurants {
		if r == nil {
			return fmt.Errorf("restaurant at index %d is nil", i)
		}
		if r.ID == "" {
			return fmt.Errorf("restaurant at index %d has no id", i)
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate restaurant id %s", r.ID)
		}
		seen[r.ID] = true
	}
	return nil
}

// productionAware reports whether any competitor exposes ready units this
// turn, which switches the whole market to the discrete serving mode.
func productionAware(restaurants []*models.Restaurant) bool {
	for _, r := range restaurants {
		if r.TotalReadyUnits() > 0 {
			return true
		}
	}
	return false
}
