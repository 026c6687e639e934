package models

// Units a log entry may be measured in. The set is fixed; lookups and commits
// reject anything outside it.
const (
	UnitServing    = "serving"
	UnitItem       = "item"
	UnitGram       = "gram"
	UnitOunce      = "ounce"
	UnitPound      = "pound"
	UnitCup        = "cup"
	UnitTablespoon = "tablespoon"
	UnitTeaspoon   = "teaspoon"
	UnitSlice      = "slice"
)

// Units lists every valid unit, in display order.
var Units = []string{
	UnitServing,
	UnitItem,
	UnitGram,
	UnitOunce,
	UnitPound,
	UnitCup,
	UnitTablespoon,
	UnitTeaspoon,
	UnitSlice,
}

var unitSet = func() map[string]bool {
	m := make(map[string]bool, len(Units))
	for _, u := range Units {
		m[u] = true
	}
	return m
}()

// ValidUnit reports whether u belongs to the fixed unit set.
func ValidUnit(u string) bool {
	return unitSet[u]
}

// MealCategory is a meal slot with a target point range, used when asking the
// advisor for suggestions.
type MealCategory struct {
	Name      string `json:"name"`
	MinPoints int    `json:"min_points"`
	MaxPoints int    `json:"max_points"`
}

// MealCategories maps category names to their target point ranges.
var MealCategories = map[string]MealCategory{
	"breakfast": {Name: "breakfast", MinPoints: 4, MaxPoints: 8},
	"lunch":     {Name: "lunch", MinPoints: 7, MaxPoints: 12},
	"dinner":    {Name: "dinner", MinPoints: 8, MaxPoints: 14},
	"snack":     {Name: "snack", MinPoints: 1, MaxPoints: 4},
}
