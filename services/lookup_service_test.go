package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djf2128/WWGemini/llm"
	"github.com/djf2128/WWGemini/models"
)

type stubOracle struct {
	mu       sync.Mutex
	estimate llm.NutrientEstimate
	err      error
	calls    int
	// when set, EstimateNutrients blocks until released
	gate chan struct{}
}

func (o *stubOracle) EstimateNutrients(_ context.Context, _, _ string) (llm.NutrientEstimate, error) {
	o.mu.Lock()
	o.calls++
	gate := o.gate
	est, err := o.estimate, o.err
	o.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return est, err
}

func newLookup(oracle *stubOracle) (*LookupService, *StatusBoard) {
	status := NewStatusBoard(testTTL)
	return NewLookupService(oracle, status), status
}

func TestLookupPopulatesDraft(t *testing.T) {
	oracle := &stubOracle{estimate: llm.NutrientEstimate{
		Calories: 95, Protein: 0.5, Carbs: 25, Fat: 0.3, Fiber: 4.4, IsZeroPoint: true,
	}}
	svc, _ := newLookup(oracle)

	svc.SetName("apple")
	svc.SetUnit(models.UnitItem)
	require.NoError(t, svc.Lookup(context.Background()))

	p := svc.Pending()
	assert.Equal(t, "95", p.Calories)
	assert.Equal(t, "0.5", p.Protein)
	assert.Equal(t, "25", p.Carbs)
	assert.Equal(t, "0.3", p.Fat)
	assert.Equal(t, "4.4", p.Fiber)
	assert.True(t, p.IsZeroPoint)
	assert.True(t, p.LookupSucceeded)
	assert.Equal(t, LookupSuccess, svc.State())
}

func TestLookupRequiresName(t *testing.T) {
	oracle := &stubOracle{}
	svc, status := newLookup(oracle)
	svc.SetUnit(models.UnitGram)

	err := svc.Lookup(context.Background())
	require.ErrorIs(t, err, ErrEmptyName)
	assert.NotEmpty(t, status.Message())
	assert.Zero(t, oracle.calls, "no oracle request for an empty name")
}

func TestLookupRequiresKnownUnit(t *testing.T) {
	oracle := &stubOracle{}
	svc, _ := newLookup(oracle)
	svc.SetName("rice")
	svc.SetUnit("bucket")

	require.ErrorIs(t, svc.Lookup(context.Background()), ErrUnknownUnit)
	assert.Zero(t, oracle.calls)
}

func TestLookupFailureLeavesDraftUnset(t *testing.T) {
	oracle := &stubOracle{err: errors.New("status 500")}
	svc, status := newLookup(oracle)
	svc.SetName("pizza")
	svc.SetUnit(models.UnitSlice)

	require.Error(t, svc.Lookup(context.Background()))
	p := svc.Pending()
	assert.False(t, p.LookupSucceeded)
	assert.Empty(t, p.Calories)
	assert.Equal(t, LookupFailure, svc.State())
	assert.NotEmpty(t, status.Message())
}

func TestNameChangeResetsLookupResult(t *testing.T) {
	oracle := &stubOracle{estimate: llm.NutrientEstimate{Calories: 100}}
	svc, _ := newLookup(oracle)
	svc.SetName("bagel")
	svc.SetUnit(models.UnitItem)
	require.NoError(t, svc.Lookup(context.Background()))
	require.True(t, svc.Pending().LookupSucceeded)

	svc.SetName("donut")
	p := svc.Pending()
	assert.False(t, p.LookupSucceeded)
	assert.Empty(t, p.Calories)
	assert.Equal(t, LookupIdle, svc.State())
}

func TestSameNameDoesNotReset(t *testing.T) {
	oracle := &stubOracle{estimate: llm.NutrientEstimate{Calories: 100}}
	svc, _ := newLookup(oracle)
	svc.SetName("bagel")
	svc.SetUnit(models.UnitItem)
	require.NoError(t, svc.Lookup(context.Background()))

	svc.SetName("bagel")
	assert.True(t, svc.Pending().LookupSucceeded)
}

func TestStaleLookupResultIsDiscarded(t *testing.T) {
	gate := make(chan struct{})
	oracle := &stubOracle{
		estimate: llm.NutrientEstimate{Calories: 400},
		gate:     gate,
	}
	svc, _ := newLookup(oracle)
	svc.SetName("lasagna")
	svc.SetUnit(models.UnitServing)

	done := make(chan error, 1)
	go func() { done <- svc.Lookup(context.Background()) }()

	// Wait for the request to leave, then change the name underneath it.
	require.Eventually(t, func() bool {
		oracle.mu.Lock()
		defer oracle.mu.Unlock()
		return oracle.calls == 1
	}, time.Second, time.Millisecond)
	svc.SetName("salad")
	close(gate)

	require.NoError(t, <-done)
	p := svc.Pending()
	assert.Equal(t, "salad", p.Name)
	assert.False(t, p.LookupSucceeded, "stale result must not resurrect the discarded draft")
	assert.Empty(t, p.Calories)
}

func TestCommitDoneClearsDraft(t *testing.T) {
	oracle := &stubOracle{estimate: llm.NutrientEstimate{Calories: 100}}
	svc, _ := newLookup(oracle)
	svc.SetName("oats")
	svc.SetUnit(models.UnitCup)
	require.NoError(t, svc.Lookup(context.Background()))

	svc.CommitDone()
	assert.Equal(t, models.PendingEntry{}, svc.Pending())
	assert.Equal(t, LookupIdle, svc.State())
}
