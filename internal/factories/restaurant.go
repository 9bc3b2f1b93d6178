package factories

import (
	"math/rand"

	"github.com/PierreLepagnol/foodops/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"
)

var fake = faker.New()

// menuTemplates gives each restaurant type a plausible menu with a price
// band per recipe.
var menuTemplates = map[string][]struct {
	Recipe   string
	MinPrice float64
	MaxPrice float64
}{
	"fast_food": {
		{"burger", 6.5, 11.0},
		{"fries", 2.5, 4.5},
		{"nuggets", 5.0, 8.0},
		{"soda", 1.5, 3.0},
	},
	"food_truck": {
		{"tacos", 7.0, 10.5},
		{"wrap", 6.0, 9.0},
		{"lemonade", 2.0, 3.5},
	},
	"casual": {
		{"pizza", 9.0, 14.0},
		{"pasta", 10.0, 15.0},
		{"salad", 7.5, 12.0},
		{"tiramisu", 5.0, 7.5},
	},
	"brasserie": {
		{"steak_frites", 14.0, 19.0},
		{"croque_monsieur", 9.0, 13.0},
		{"soupe_oignon", 7.0, 10.0},
		{"creme_brulee", 6.0, 8.5},
	},
	"fine_dining": {
		{"tasting_menu", 45.0, 75.0},
		{"duck_confit", 26.0, 38.0},
		{"souffle", 12.0, 18.0},
	},
}

type RestaurantFactory struct{}

// CreateRestaurant generates a demo competitor with a typed menu, mid-road
// reputation and randomized staffing and quality.
func (rf *RestaurantFactory) CreateRestaurant(restaurantType string) *models.Restaurant {
	template, ok := menuTemplates[restaurantType]
	if !ok {
		restaurantType = "casual"
		template = menuTemplates[restaurantType]
	}

	menu := make(map[string]decimal.Decimal, len(template))
	active := make([]string, 0, len(template))
	for _, dish := range template {
		price := fake.Float64(2, int(dish.MinPrice), int(dish.MaxPrice))
		menu[dish.Recipe] = decimal.NewFromFloat(price)
		active = append(active, dish.Recipe)
	}

	return &models.Restaurant{
		ID:            cuid.New(),
		Name:          fake.Company().Name(),
		Type:          restaurantType,
		Menu:          menu,
		ActiveRecipes: active,
		BaseCapacity:  fake.IntBetween(40, 120),
		Staffing:      models.StaffingNormal,
		Reputation:    5.0,
		QualityScore:  fake.Float64(1, 2, 4),
	}
}

// CreateRestaurants generates count competitors cycling through the known
// restaurant types.
func (rf *RestaurantFactory) CreateRestaurants(count int) []*models.Restaurant {
	types := []string{"fast_food", "casual", "brasserie", "food_truck", "fine_dining"}
	restaurants := make([]*models.Restaurant, 0, count)
	for i := 0; i < count; i++ {
		restaurants = append(restaurants, rf.CreateRestaurant(types[i%len(types)]))
	}
	return restaurants
}

// WithProduction equips a restaurant with ready units and batch quality
// for a production-aware turn.
func WithProduction(r *models.Restaurant, rng *rand.Rand) *models.Restaurant {
	r.ReadyUnits = make(map[string]int, len(r.ActiveRecipes))
	r.BatchQuality = make(map[string]float64, len(r.ActiveRecipes))
	for _, recipe := range r.ActiveRecipes {
		r.ReadyUnits[recipe] = 10 + rng.Intn(30)
		r.BatchQuality[recipe] = 0.85 + rng.Float64()*0.3
	}
	return r
}
