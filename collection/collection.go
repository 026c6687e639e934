// Package collection hosts the replicated food log: a scoped document set
// that clients mutate with point writes and observe through a snapshot feed.
// Every change produces a complete snapshot; subscribers replace, never merge.
package collection

import (
	"context"
	"sync"

	"github.com/djf2128/WWGemini/models"
)

// Scope identifies one user's log within one application.
type Scope struct {
	AppID  string
	UserID string
}

// Collection is the replicated document set the log store writes through to.
type Collection interface {
	// Watch opens a standing subscription for a scope. The subscription
	// receives the current snapshot immediately and a fresh full snapshot
	// after every change. An empty log is a valid (empty) snapshot.
	Watch(ctx context.Context, scope Scope) (*Subscription, error)

	// Add stores a document, assigning identity and creation timestamp.
	Add(ctx context.Context, scope Scope, item models.FoodItem) (models.FoodItem, error)

	// Delete removes a document by identity. Deleting an absent document is
	// not an error.
	Delete(ctx context.Context, scope Scope, id string) error

	// List returns the current documents in a scope, in no particular order.
	List(ctx context.Context, scope Scope) ([]models.FoodItem, error)
}

// Subscription is an owned handle on a scope's snapshot feed. Close releases
// it; closing more than once is safe.
type Subscription struct {
	snapshots chan []models.FoodItem
	release   func()
	once      sync.Once
}

// Snapshots returns the feed channel. It is closed when the subscription is
// released.
func (s *Subscription) Snapshots() <-chan []models.FoodItem {
	return s.snapshots
}

// Close releases the subscription exactly once.
func (s *Subscription) Close() {
	s.once.Do(s.release)
}
