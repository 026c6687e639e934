package collection

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/djf2128/WWGemini/models"
)

// Memory is an in-process Collection used by tests and local development
// (COLLECTION_DRIVER=memory). It implements the same snapshot contract as the
// Postgres driver.
type Memory struct {
	mu   sync.RWMutex
	docs map[Scope]map[string]models.FoodItem
	hub  *hub
}

func NewMemory() *Memory {
	return &Memory{
		docs: make(map[Scope]map[string]models.FoodItem),
		hub:  newHub(),
	}
}

func (m *Memory) Watch(ctx context.Context, scope Scope) (*Subscription, error) {
	return m.hub.watch(scope, func() ([]models.FoodItem, error) {
		return m.List(ctx, scope)
	})
}

func (m *Memory) Add(_ context.Context, scope Scope, item models.FoodItem) (models.FoodItem, error) {
	item.ID = uuid.NewString()
	item.AppID = scope.AppID
	item.UserID = scope.UserID
	item.CreatedAt = time.Now().UTC()

	m.mu.Lock()
	if m.docs[scope] == nil {
		m.docs[scope] = make(map[string]models.FoodItem)
	}
	m.docs[scope][item.ID] = item
	m.mu.Unlock()

	m.notify(scope)
	return item, nil
}

func (m *Memory) Delete(_ context.Context, scope Scope, id string) error {
	m.mu.Lock()
	set := m.docs[scope]
	_, existed := set[id]
	delete(set, id)
	m.mu.Unlock()

	if existed {
		m.notify(scope)
	}
	return nil
}

func (m *Memory) List(_ context.Context, scope Scope) ([]models.FoodItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]models.FoodItem, 0, len(m.docs[scope]))
	for _, it := range m.docs[scope] {
		items = append(items, it)
	}
	return items, nil
}

func (m *Memory) notify(scope Scope) {
	m.hub.publish(scope, func() ([]models.FoodItem, error) {
		return m.List(context.Background(), scope)
	})
}
