package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/djf2128/WWGemini/collection"
	"github.com/djf2128/WWGemini/logger"
	"github.com/djf2128/WWGemini/models"
	"github.com/djf2128/WWGemini/points"
)

// LogStore bridges the live food log view and the replicated collection. The
// collection is the single source of truth: writes go through it and the view
// is replaced wholesale on every snapshot, never merged or optimistically
// updated.
type LogStore struct {
	col    collection.Collection
	status *StatusBoard
	scope  collection.Scope

	mu       sync.RWMutex
	view     []models.FoodItem
	loaded   bool
	loading  bool
	released bool

	sub  *collection.Subscription
	once sync.Once
}

func NewLogStore(col collection.Collection, status *StatusBoard) *LogStore {
	return &LogStore{col: col, status: status}
}

// Subscribe opens the standing subscription for a user's log and starts
// consuming snapshots. A failure surfaces a status message and leaves the
// store not-loading so callers do not hang waiting for data.
func (s *LogStore) Subscribe(ctx context.Context, appID, userID string) error {
	s.mu.Lock()
	s.scope = collection.Scope{AppID: appID, UserID: userID}
	s.loading = true
	s.mu.Unlock()

	sub, err := s.col.Watch(ctx, s.scope)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		s.status.Set("Could not load your food log. Please try again.")
		return fmt.Errorf("subscribing to log: %w", err)
	}

	s.mu.Lock()
	if s.released {
		// Torn down before the subscription opened; release it immediately.
		s.mu.Unlock()
		sub.Close()
		return nil
	}
	s.sub = sub
	s.mu.Unlock()

	go func() {
		for snap := range sub.Snapshots() {
			s.applySnapshot(snap)
		}
	}()
	return nil
}

// applySnapshot replaces the materialized view with a full snapshot, ordered
// most recent first. Snapshots arriving after release are discarded.
func (s *LogStore) applySnapshot(snap []models.FoodItem) {
	view := make([]models.FoodItem, len(snap))
	copy(view, snap)
	sort.SliceStable(view, func(i, j int) bool {
		return view[i].CreatedAt.After(view[j].CreatedAt)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return
	}
	s.view = view
	s.loaded = true
	s.loading = false
}

// Unsubscribe releases the subscription. Harmless if called again or before
// any subscription was opened.
func (s *LogStore) Unsubscribe() {
	s.once.Do(func() {
		s.mu.Lock()
		s.released = true
		sub := s.sub
		s.mu.Unlock()
		if sub != nil {
			sub.Close()
		}
	})
}

// Add commits a draft entry. The draft must have a successful lookup behind
// it and the store must be scoped to a user; otherwise nothing is written.
// The new item reaches the view through the subscription, not from here.
func (s *LogStore) Add(ctx context.Context, pending models.PendingEntry) (models.FoodItem, error) {
	if !pending.LookupSucceeded {
		s.status.Set("Look up nutrients before saving.")
		return models.FoodItem{}, ErrLookupRequired
	}

	s.mu.RLock()
	scope := s.scope
	s.mu.RUnlock()
	if scope.UserID == "" {
		s.status.Set("Sign in before saving to the log.")
		return models.FoodItem{}, ErrNoSession
	}

	item := points.ItemFromPending(pending)
	if err := item.Validate(); err != nil {
		s.status.Set("That entry doesn't look right: " + err.Error())
		return models.FoodItem{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	saved, err := s.col.Add(ctx, scope, item)
	if err != nil {
		s.status.Set("Could not save your food. Please try again.")
		return models.FoodItem{}, err
	}
	logger.Info("food logged", "user_id", scope.UserID, "name", saved.Name, "points", points.ForItem(saved))
	return saved, nil
}

// Remove deletes one entry. Removing an entry that is already gone succeeds.
func (s *LogStore) Remove(ctx context.Context, id string) error {
	s.mu.RLock()
	scope := s.scope
	s.mu.RUnlock()

	if err := s.col.Delete(ctx, scope, id); err != nil {
		s.status.Set("Could not delete that entry. Please try again.")
		return err
	}
	return nil
}

// Clear deletes every entry in the scope. Deletions run concurrently and are
// best-effort: one failure does not stop the others, and at most one failure
// message is raised for the whole operation.
func (s *LogStore) Clear(ctx context.Context) error {
	s.mu.RLock()
	scope := s.scope
	s.mu.RUnlock()

	items, err := s.col.List(ctx, scope)
	if err != nil {
		s.status.Set("Could not clear your log. Please try again.")
		return fmt.Errorf("listing entries for clear: %w", err)
	}

	var failed atomic.Int64
	var wg sync.WaitGroup
	for _, it := range items {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := s.col.Delete(ctx, scope, id); err != nil {
				logger.Warn("failed to delete entry during clear", "id", id, "error", err)
				failed.Add(1)
			}
		}(it.ID)
	}
	wg.Wait()

	if n := failed.Load(); n > 0 {
		s.status.Set("Some entries could not be cleared. Please try again.")
		return fmt.Errorf("clear: %d of %d deletions failed", n, len(items))
	}
	return nil
}

// Entries returns a copy of the materialized view, most recent first.
func (s *LogStore) Entries() []models.FoodItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.FoodItem, len(s.view))
	copy(out, s.view)
	return out
}

// Loaded reports whether at least one snapshot has been applied.
func (s *LogStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Loading reports whether the store is waiting for its first snapshot.
func (s *LogStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
