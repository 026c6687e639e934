// Package points implements the food scoring scheme. The formula is frozen:
// historical log totals depend on it, so any change to rounding, clamping or
// the fiber cap silently rewrites every user's history.
package points

import (
	"math"
	"strconv"
	"strings"

	"github.com/djf2128/WWGemini/models"
)

// Facts are the inputs to the scoring formula, already coerced to numbers.
type Facts struct {
	ZeroPoint bool
	// Calories nil means "derive from macros".
	Calories                   *float64
	Protein, Carbs, Fat, Fiber float64
	Quantity                   float64
}

// Compute maps nutrient facts to an integer point score.
//
// Zero-point items always score 0. Otherwise calories (explicit, or derived as
// 4p + 4c + 9f) drive the base cost, fat adds a penalty, and fiber earns a
// discount capped at one tenth of the carbs so a fiber value unrelated to the
// carb content cannot buy points back. The per-unit value is scaled by
// quantity first and rounded once, then clamped at zero.
func Compute(f Facts) int {
	if f.ZeroPoint {
		return 0
	}

	p := nonneg(f.Protein)
	c := nonneg(f.Carbs)
	fat := nonneg(f.Fat)
	fiber := nonneg(f.Fiber)

	cal := 4*p + 4*c + 9*fat
	if f.Calories != nil {
		cal = nonneg(*f.Calories)
	}

	qty := f.Quantity
	if !(qty > 0) || math.IsInf(qty, 0) {
		qty = 1
	}

	perUnit := cal/33 + fat/9 - math.Min(fiber, c/10)/5
	pts := math.Round(perUnit * qty)
	if pts < 0 {
		return 0
	}
	return int(pts)
}

func nonneg(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// ForItem scores a persisted log entry.
func ForItem(item models.FoodItem) int {
	return Compute(Facts{
		ZeroPoint: item.IsZeroPoint,
		Calories:  item.Calories,
		Protein:   item.Protein,
		Carbs:     item.Carbs,
		Fat:       item.Fat,
		Fiber:     item.Fiber,
		Quantity:  item.Quantity,
	})
}

// ForPending scores a draft entry, applying the text-field degrade rules.
func ForPending(p models.PendingEntry) int {
	return Compute(Facts{
		ZeroPoint: p.IsZeroPoint,
		Calories:  ParseCalories(p.Calories),
		Protein:   ParseField(p.Protein),
		Carbs:     ParseField(p.Carbs),
		Fat:       ParseField(p.Fat),
		Fiber:     ParseField(p.Fiber),
		Quantity:  ParseQuantity(p.Quantity),
	})
}

// Total sums the scores of a slice of entries.
func Total(items []models.FoodItem) int {
	total := 0
	for _, it := range items {
		total += ForItem(it)
	}
	return total
}

// ParseField parses a nutrient text field. Anything unparseable or negative
// degrades to 0.
func ParseField(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseQuantity parses a quantity text field. An unparseable quantity
// degrades to 1, not 0: a bad quantity must not erase an item's points.
func ParseQuantity(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 1
	}
	return v
}

// ParseCalories parses the optional calories field. Unparseable or missing
// values return nil so the score derives calories from the macros instead of
// defaulting them to zero.
func ParseCalories(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}

// ItemFromPending coerces a draft into a persistable FoodItem using the same
// degrade rules the scorer applies, so the committed entry scores identically
// to its preview.
func ItemFromPending(p models.PendingEntry) models.FoodItem {
	return models.FoodItem{
		Name:        strings.TrimSpace(p.Name),
		Quantity:    ParseQuantity(p.Quantity),
		Unit:        p.Unit,
		Calories:    ParseCalories(p.Calories),
		Protein:     ParseField(p.Protein),
		Carbs:       ParseField(p.Carbs),
		Fat:         ParseField(p.Fat),
		Fiber:       ParseField(p.Fiber),
		IsZeroPoint: p.IsZeroPoint,
	}
}
