package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djf2128/WWGemini/collection"
	"github.com/djf2128/WWGemini/models"
)

type stubAdvisorOracle struct {
	suggestions []string
	suggestErr  error
	analysis    string
	analyzeErr  error

	gotCategory models.MealCategory
	gotSummary  string
	calls       int
}

func (o *stubAdvisorOracle) SuggestMeals(_ context.Context, cat models.MealCategory) ([]string, error) {
	o.calls++
	o.gotCategory = cat
	return o.suggestions, o.suggestErr
}

func (o *stubAdvisorOracle) AnalyzeDay(_ context.Context, summary string) (string, error) {
	o.calls++
	o.gotSummary = summary
	return o.analysis, o.analyzeErr
}

func cal(v float64) *float64 { return &v }

func storeWithEntries(entries []models.FoodItem) *LogStore {
	store := NewLogStore(collection.NewMemory(), NewStatusBoard(testTTL))
	store.applySnapshot(entries)
	return store
}

func TestSuggestMealUsesCategoryRange(t *testing.T) {
	oracle := &stubAdvisorOracle{suggestions: []string{"a", "b", "c"}}
	svc := NewAdvisorService(oracle, NewStatusBoard(testTTL), storeWithEntries(nil))

	ideas, err := svc.SuggestMeal(context.Background(), "Breakfast")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ideas)
	assert.Equal(t, models.MealCategories["breakfast"], oracle.gotCategory)
}

func TestSuggestMealUnknownCategory(t *testing.T) {
	oracle := &stubAdvisorOracle{}
	svc := NewAdvisorService(oracle, NewStatusBoard(testTTL), storeWithEntries(nil))

	_, err := svc.SuggestMeal(context.Background(), "second breakfast")
	require.Error(t, err)
	assert.Zero(t, oracle.calls)
}

func TestSuggestMealFailsClosed(t *testing.T) {
	oracle := &stubAdvisorOracle{suggestErr: errors.New("malformed reply")}
	svc := NewAdvisorService(oracle, NewStatusBoard(testTTL), storeWithEntries(nil))

	ideas, err := svc.SuggestMeal(context.Background(), "lunch")
	require.Error(t, err)
	assert.Nil(t, ideas)
}

func TestAnalyzeDayRequiresEntries(t *testing.T) {
	oracle := &stubAdvisorOracle{}
	status := NewStatusBoard(testTTL)
	svc := NewAdvisorService(oracle, status, storeWithEntries(nil))

	_, err := svc.AnalyzeDay(context.Background())
	require.ErrorIs(t, err, ErrEmptyLog)
	assert.NotEmpty(t, status.Message())
	assert.Zero(t, oracle.calls, "empty log must not reach the oracle")
}

func TestAnalyzeDaySummarizesLog(t *testing.T) {
	now := time.Now()
	entries := []models.FoodItem{
		{Name: "oatmeal", Quantity: 2, Unit: models.UnitCup, Calories: cal(300), CreatedAt: now},
		{Name: "apple", Quantity: 1, Unit: models.UnitItem, IsZeroPoint: true, CreatedAt: now.Add(-time.Hour)},
	}
	oracle := &stubAdvisorOracle{analysis: "Nice day! Try more protein tomorrow."}
	svc := NewAdvisorService(oracle, NewStatusBoard(testTTL), storeWithEntries(entries))

	got, err := svc.AnalyzeDay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Nice day! Try more protein tomorrow.", got)

	// 2 cups at 300 kcal each: round(300/33 * 2) = 18.
	assert.Contains(t, oracle.gotSummary, "2 cup of oatmeal (18 points)")
	assert.Contains(t, oracle.gotSummary, "1 item of apple (0 points)")
	assert.Contains(t, oracle.gotSummary, "Total: 18 points")
}

func TestDaySummaryFormat(t *testing.T) {
	entries := []models.FoodItem{
		{Name: "toast", Quantity: 1.5, Unit: models.UnitSlice, Calories: cal(66)},
	}
	// round(66/33 * 1.5) = 3
	assert.Equal(t, "1.5 slice of toast (3 points)\nTotal: 3 points", DaySummary(entries))
}
