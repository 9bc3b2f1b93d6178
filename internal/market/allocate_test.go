package market

import (
	"testing"

	"github.com/PierreLepagnol/foodops/internal/models"
	"github.com/shopspring/decimal"
)

// Two identical competitors split the market evenly and fit within their
// capacity.
func TestAllocateDemandEvenSplit(t *testing.T) {
	engine := newTestEngine(t, testConfig(100), singleSegment(12))
	restaurants := []*models.Restaurant{
		testRestaurant("r1", 60, 10),
		testRestaurant("r2", 60, 10),
	}

	results, err := engine.AllocateDemand(restaurants, 1, 1)
	if err != nil {
		t.Fatalf("AllocateDemand failed: %v", err)
	}

	for _, id := range []string{"r1", "r2"} {
		result := results[id]
		if result.AllocatedDemand != 50 {
			t.Errorf("%s allocated %d, want 50", id, result.AllocatedDemand)
		}
		if result.ServedCustomers != 50 {
			t.Errorf("%s served %d, want 50", id, result.ServedCustomers)
		}
		if !result.Revenue.Equal(decimal.NewFromFloat(500)) {
			t.Errorf("%s revenue %s, want 500", id, result.Revenue)
		}
		// ticket 10 over quality 3 lands in the 3.5 satisfaction tier
		if result.Satisfaction != 4.0 {
			t.Errorf("%s satisfaction %.1f, want 4.0", id, result.Satisfaction)
		}
		if !almostEqual(result.ReputationAfter, 5.9) {
			t.Errorf("%s reputation after %.3f, want 5.9", id, result.ReputationAfter)
		}
	}
}

func TestAllocateDemandClosedGetsNothing(t *testing.T) {
	engine := newTestEngine(t, testConfig(100), singleSegment(12))
	open := testRestaurant("open", 60, 10)
	closed := testRestaurant("closed", 60, 10)
	closed.Staffing = models.StaffingClosed

	results, err := engine.AllocateDemand([]*models.Restaurant{open, closed}, 1, 1)
	if err != nil {
		t.Fatalf("AllocateDemand failed: %v", err)
	}

	if results["closed"].AllocatedDemand != 0 {
		t.Errorf("closed allocated %d, want 0", results["closed"].AllocatedDemand)
	}
	if results["open"].AllocatedDemand != 100 {
		t.Errorf("open allocated %d, want 100", results["open"].AllocatedDemand)
	}
	// the closed competitor has no spare capacity, so the overflow is lost
	if results["open"].ServedCustomers != 60 {
		t.Errorf("open served %d, want 60", results["open"].ServedCustomers)
	}
	if results["open"].LostCustomers != 40 {
		t.Errorf("open lost %d, want 40", results["open"].LostCustomers)
	}
}

func TestAllocateDemandAllClosed(t *testing.T) {
	engine := newTestEngine(t, testConfig(100), singleSegment(12))
	a := testRestaurant("a", 60, 10)
	b := testRestaurant("b", 60, 10)
	a.Staffing = models.StaffingClosed
	b.Staffing = models.StaffingClosed

	results, err := engine.AllocateDemand([]*models.Restaurant{a, b}, 1, 1)
	if err != nil {
		t.Fatalf("AllocateDemand failed: %v", err)
	}
	for id, result := range results {
		if result.AllocatedDemand != 0 || result.ServedCustomers != 0 {
			t.Errorf("%s got customers while closed: %+v", id, result)
		}
	}
}

// A restaurant with declared ready units can only sell what it produced,
// no matter how much demand shows up.
func TestAllocateDemandProductionAware(t *testing.T) {
	engine := newTestEngine(t, testConfig(20), singleSegment(12))
	r := testRestaurant("r1", 100, 10)
	r.ReadyUnits = map[string]int{"plat": 5}

	results, err := engine.AllocateDemand([]*models.Restaurant{r}, 1, 1)
	if err != nil {
		t.Fatalf("AllocateDemand failed: %v", err)
	}

	result := results["r1"]
	if result.ServedCustomers != 5 {
		t.Errorf("served %d, want 5 (limited by ready units)", result.ServedCustomers)
	}
	if result.RecipeSales["plat"] != 5 {
		t.Errorf("plat sales %d, want 5", result.RecipeSales["plat"])
	}
	if !result.Revenue.Equal(decimal.NewFromFloat(50)) {
		t.Errorf("revenue %s, want 50", result.Revenue)
	}
	// inputs stay untouched until the caller applies the result
	if r.ReadyUnits["plat"] != 5 {
		t.Errorf("engine mutated ready units: %d", r.ReadyUnits["plat"])
	}
}

func TestAllocateDiscreteCheapestFirst(t *testing.T) {
	engine := newTestEngine(t, testConfig(3), singleSegment(12))
	r := testRestaurant("r1", 100, 10)
	r.Menu = map[string]decimal.Decimal{
		"burger": decimal.NewFromFloat(8),
		"fries":  decimal.NewFromFloat(4),
	}
	r.ActiveRecipes = []string{"burger", "fries"}
	r.ReadyUnits = map[string]int{"burger": 5, "fries": 2}

	results, err := engine.AllocateDemand([]*models.Restaurant{r}, 1, 1)
	if err != nil {
		t.Fatalf("AllocateDemand failed: %v", err)
	}

	result := results["r1"]
	if result.RecipeSales["fries"] != 2 {
		t.Errorf("fries sales %d, want 2 (cheapest sells out first)", result.RecipeSales["fries"])
	}
	if result.RecipeSales["burger"] != 1 {
		t.Errorf("burger sales %d, want 1", result.RecipeSales["burger"])
	}
	if !result.Revenue.Equal(decimal.NewFromFloat(16)) {
		t.Errorf("revenue %s, want 16", result.Revenue)
	}
}

func TestAllocateDiscreteRespectsCapacity(t *testing.T) {
	engine := newTestEngine(t, testConfig(20), singleSegment(12))
	r := testRestaurant("r1", 3, 10)
	r.ReadyUnits = map[string]int{"plat": 10}

	results, err := engine.AllocateDemand([]*models.Restaurant{r}, 1, 1)
	if err != nil {
		t.Fatalf("AllocateDemand failed: %v", err)
	}

	if results["r1"].ServedCustomers != 3 {
		t.Errorf("served %d, want 3 (capped at capacity)", results["r1"].ServedCustomers)
	}
}

func TestAllocateDiscretePrefersHigherScore(t *testing.T) {
	engine := newTestEngine(t, testConfig(10), singleSegment(12))
	cheap := testRestaurant("cheap", 100, 8)
	pricey := testRestaurant("pricey", 100, 15)
	cheap.ReadyUnits = map[string]int{"plat": 100}
	pricey.ReadyUnits = map[string]int{"plat": 100}

	results, err := engine.AllocateDemand([]*models.Restaurant{cheap, pricey}, 1, 1)
	if err != nil {
		t.Fatalf("AllocateDemand failed: %v", err)
	}

	if results["cheap"].ServedCustomers != 10 {
		t.Errorf("cheap served %d, want all 10", results["cheap"].ServedCustomers)
	}
	if results["pricey"].ServedCustomers != 0 {
		t.Errorf("pricey served %d, want 0", results["pricey"].ServedCustomers)
	}
}

func TestCheapestServable(t *testing.T) {
	r := testRestaurant("r1", 50, 10)
	r.Menu = map[string]decimal.Decimal{
		"burger": decimal.NewFromFloat(8),
		"fries":  decimal.NewFromFloat(4),
		"salad":  decimal.NewFromFloat(6),
	}
	r.ActiveRecipes = []string{"burger", "fries", "salad"}

	recipe, ok := cheapestServable(r, map[string]int{"burger": 1, "salad": 2})
	if !ok || recipe != "salad" {
		t.Errorf("cheapestServable = %q, %v, want salad (fries sold out)", recipe, ok)
	}

	_, ok = cheapestServable(r, map[string]int{})
	if ok {
		t.Error("expected no servable recipe with empty inventory")
	}
}
