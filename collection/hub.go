package collection

import (
	"sync"

	"github.com/djf2128/WWGemini/logger"
	"github.com/djf2128/WWGemini/models"
)

const snapshotBuffer = 8

// hub fans full snapshots out to the subscribers of each scope.
type hub struct {
	mu    sync.RWMutex
	subs  map[Scope]map[chan []models.FoodItem]struct{}
	locks map[Scope]*sync.Mutex
}

func newHub() *hub {
	return &hub{
		subs:  make(map[Scope]map[chan []models.FoodItem]struct{}),
		locks: make(map[Scope]*sync.Mutex),
	}
}

// scopeLock returns the mutex serializing snapshot publication for a scope.
func (h *hub) scopeLock(scope Scope) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := h.locks[scope]
	if m == nil {
		m = &sync.Mutex{}
		h.locks[scope] = m
	}
	return m
}

func (h *hub) subscribe(scope Scope) *Subscription {
	ch := make(chan []models.FoodItem, snapshotBuffer)

	h.mu.Lock()
	if h.subs[scope] == nil {
		h.subs[scope] = make(map[chan []models.FoodItem]struct{})
	}
	h.subs[scope][ch] = struct{}{}
	h.mu.Unlock()

	return &Subscription{
		snapshots: ch,
		release: func() {
			h.mu.Lock()
			if set := h.subs[scope]; set != nil {
				delete(set, ch)
				if len(set) == 0 {
					delete(h.subs, scope)
				}
			}
			h.mu.Unlock()
			close(ch)
		},
	}
}

// watch registers a subscriber and seeds it with an initial snapshot. Both
// happen under the scope's publish lock, so a write racing the subscription is
// either in the seed or queued behind it; it can never be missed or overtaken.
func (h *hub) watch(scope Scope, load func() ([]models.FoodItem, error)) (*Subscription, error) {
	sub := h.subscribe(scope)

	mu := h.scopeLock(scope)
	mu.Lock()
	defer mu.Unlock()

	snap, err := load()
	if err != nil {
		sub.Close()
		return nil, err
	}
	sub.snapshots <- snap
	return sub, nil
}

// publish loads a fresh snapshot and broadcasts it, serialized per scope so
// two concurrent writers cannot deliver their snapshots out of order.
func (h *hub) publish(scope Scope, load func() ([]models.FoodItem, error)) error {
	mu := h.scopeLock(scope)
	mu.Lock()
	defer mu.Unlock()

	snap, err := load()
	if err != nil {
		return err
	}
	h.broadcast(scope, snap)
	return nil
}

// broadcast delivers a snapshot to every subscriber of the scope. When a
// subscriber's buffer is full its oldest queued snapshot is discarded to make
// room: slow subscribers lose intermediate snapshots but always end up with
// the latest one.
func (h *hub) broadcast(scope Scope, items []models.FoodItem) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[scope] {
		for {
			select {
			case ch <- items:
			default:
				select {
				case <-ch:
					logger.Debug("stale snapshot dropped for slow subscriber", "user_id", scope.UserID)
				default:
				}
				continue
			}
			break
		}
	}
}
