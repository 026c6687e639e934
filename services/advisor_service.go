package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/djf2128/WWGemini/models"
	"github.com/djf2128/WWGemini/points"
)

// AdvisorOracle is the slice of the oracle the advisory workflows need.
type AdvisorOracle interface {
	SuggestMeals(ctx context.Context, category models.MealCategory) ([]string, error)
	AnalyzeDay(ctx context.Context, summary string) (string, error)
}

// AdvisorService runs the two read-only advisory workflows. Both read the log
// through the store's view and never write anything.
type AdvisorService struct {
	oracle AdvisorOracle
	status *StatusBoard
	log    *LogStore

	suggesting atomic.Bool
	analyzing  atomic.Bool
}

func NewAdvisorService(oracle AdvisorOracle, status *StatusBoard, log *LogStore) *AdvisorService {
	return &AdvisorService{oracle: oracle, status: status, log: log}
}

// SuggestMeal asks for three ideas in the category's target point range. A
// malformed reply comes back as an error result for the caller to render in
// place; it never escapes the workflow.
func (a *AdvisorService) SuggestMeal(ctx context.Context, category string) ([]string, error) {
	cat, ok := models.MealCategories[strings.ToLower(category)]
	if !ok {
		return nil, fmt.Errorf("unknown meal category %q", category)
	}

	a.suggesting.Store(true)
	defer a.suggesting.Store(false)

	ideas, err := a.oracle.SuggestMeals(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("getting %s suggestions: %w", cat.Name, err)
	}
	return ideas, nil
}

// AnalyzeDay summarizes every logged entry with its computed points and asks
// the oracle for a free-text take. An empty log raises a status message and
// makes no request.
func (a *AdvisorService) AnalyzeDay(ctx context.Context) (string, error) {
	entries := a.log.Entries()
	if len(entries) == 0 {
		a.status.Set("Log at least one food before analyzing your day.")
		return "", ErrEmptyLog
	}

	a.analyzing.Store(true)
	defer a.analyzing.Store(false)

	return a.oracle.AnalyzeDay(ctx, DaySummary(entries))
}

// Suggesting reports whether a suggestion request is in flight.
func (a *AdvisorService) Suggesting() bool { return a.suggesting.Load() }

// Analyzing reports whether a day analysis is in flight.
func (a *AdvisorService) Analyzing() bool { return a.analyzing.Load() }

// DaySummary renders the log the way the oracle sees it: one line per entry
// plus the grand total.
func DaySummary(entries []models.FoodItem) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%g %s of %s (%d points)\n", e.Quantity, e.Unit, e.Name, points.ForItem(e))
	}
	fmt.Fprintf(&b, "Total: %d points", points.Total(entries))
	return b.String()
}
