package factories

import (
	"math/rand"
	"testing"
)

func TestCreateRestaurant(t *testing.T) {
	rf := &RestaurantFactory{}
	r := rf.CreateRestaurant("fast_food")

	if r.ID == "" {
		t.Error("expected generated id")
	}
	if r.Type != "fast_food" {
		t.Errorf("type = %s, want fast_food", r.Type)
	}
	if len(r.Menu) == 0 || len(r.ActiveRecipes) != len(r.Menu) {
		t.Errorf("menu/active mismatch: %d priced, %d active", len(r.Menu), len(r.ActiveRecipes))
	}
	if r.BaseCapacity < 40 || r.BaseCapacity > 120 {
		t.Errorf("base capacity %d outside 40-120", r.BaseCapacity)
	}
	if r.AverageTicket().IsZero() {
		t.Error("expected a sellable menu")
	}
}

func TestCreateRestaurantUnknownType(t *testing.T) {
	rf := &RestaurantFactory{}
	r := rf.CreateRestaurant("ghost_kitchen")
	if r.Type != "casual" {
		t.Errorf("unknown type should fall back to casual, got %s", r.Type)
	}
}

func TestCreateRestaurantsUniqueIDs(t *testing.T) {
	rf := &RestaurantFactory{}
	restaurants := rf.CreateRestaurants(8)

	if len(restaurants) != 8 {
		t.Fatalf("got %d restaurants, want 8", len(restaurants))
	}
	seen := make(map[string]bool, len(restaurants))
	for _, r := range restaurants {
		if seen[r.ID] {
			t.Errorf("duplicate id %s", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestWithProduction(t *testing.T) {
	rf := &RestaurantFactory{}
	rng := rand.New(rand.NewSource(7))
	r := WithProduction(rf.CreateRestaurant("casual"), rng)

	if r.TotalReadyUnits() == 0 {
		t.Error("expected ready units after WithProduction")
	}
	for _, recipe := range r.ActiveRecipes {
		if r.ReadyUnits[recipe] < 10 {
			t.Errorf("%s ready units %d below floor", recipe, r.ReadyUnits[recipe])
		}
		quality := r.BatchQuality[recipe]
		if quality < 0.85 || quality > 1.15 {
			t.Errorf("%s batch quality %.3f outside 0.85-1.15", recipe, quality)
		}
	}
}
