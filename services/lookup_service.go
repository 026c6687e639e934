package services

import (
	"context"
	"strconv"
	"sync"

	"github.com/djf2128/WWGemini/llm"
	"github.com/djf2128/WWGemini/logger"
	"github.com/djf2128/WWGemini/models"
)

// LookupState tracks where the nutrient lookup workflow is.
type LookupState int

const (
	LookupIdle LookupState = iota
	LookupFetching
	LookupSuccess
	LookupFailure
)

// NutrientOracle is the slice of the oracle the lookup workflow needs.
type NutrientOracle interface {
	EstimateNutrients(ctx context.Context, name, unit string) (llm.NutrientEstimate, error)
}

// LookupService stages a pending entry and fills it from the oracle. Editing
// the food name discards any prior result; a lookup response that comes back
// after the name changed is dropped rather than resurrecting stale state.
type LookupService struct {
	oracle NutrientOracle
	status *StatusBoard

	mu      sync.Mutex
	pending models.PendingEntry
	state   LookupState
	// epoch bumps on every name change and commit; an in-flight lookup only
	// lands if the epoch it started under is still current.
	epoch uint64
}

func NewLookupService(oracle NutrientOracle, status *StatusBoard) *LookupService {
	return &LookupService{oracle: oracle, status: status}
}

// SetName updates the draft's food name. A changed name wipes the looked-up
// nutrients and invalidates any lookup still in flight.
func (s *LookupService) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == s.pending.Name {
		return
	}
	s.pending.Name = name
	s.pending.ResetNutrients()
	s.state = LookupIdle
	s.epoch++
}

// SetUnit picks the unit the lookup will price. Unlike a name change it keeps
// existing results; the user re-runs the lookup if they want a new estimate.
func (s *LookupService) SetUnit(unit string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Unit = unit
}

// SetQuantity edits the draft quantity. Quantity scales the score at read
// time and does not touch the per-unit estimate.
func (s *LookupService) SetQuantity(qty string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Quantity = qty
}

// Lookup asks the oracle for the nutrients of one unit of the current name.
// Network trouble, bad status and malformed payloads all collapse into one
// user-facing failure.
func (s *LookupService) Lookup(ctx context.Context) error {
	s.mu.Lock()
	name := s.pending.Name
	unit := s.pending.Unit
	if name == "" {
		s.mu.Unlock()
		s.status.Set("Enter a food name first.")
		return ErrEmptyName
	}
	if !models.ValidUnit(unit) {
		s.mu.Unlock()
		s.status.Set("Pick a unit before looking up nutrients.")
		return ErrUnknownUnit
	}
	s.state = LookupFetching
	started := s.epoch
	s.mu.Unlock()

	est, err := s.oracle.EstimateNutrients(ctx, name, unit)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != started {
		// The name changed (or the draft was committed) while we were out.
		logger.Debug("discarding stale lookup result", "name", name)
		return nil
	}
	if err != nil {
		s.state = LookupFailure
		s.pending.LookupSucceeded = false
		s.status.Set("Couldn't look up nutrients for \"" + name + "\". Please try again.")
		return err
	}

	s.pending.Calories = formatNum(est.Calories)
	s.pending.Protein = formatNum(est.Protein)
	s.pending.Carbs = formatNum(est.Carbs)
	s.pending.Fat = formatNum(est.Fat)
	s.pending.Fiber = formatNum(est.Fiber)
	s.pending.IsZeroPoint = est.IsZeroPoint
	s.pending.LookupSucceeded = true
	s.state = LookupSuccess
	return nil
}

// Pending returns a copy of the current draft.
func (s *LookupService) Pending() models.PendingEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// State returns the workflow state.
func (s *LookupService) State() LookupState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CommitDone clears the draft after a successful write to the log.
func (s *LookupService) CommitDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = models.PendingEntry{}
	s.state = LookupIdle
	s.epoch++
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
