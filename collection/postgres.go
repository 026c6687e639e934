package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/djf2128/WWGemini/logger"
	"github.com/djf2128/WWGemini/models"
)

// Postgres persists the food log in Postgres rows and serves the snapshot
// feed from an in-process hub. Per-document atomicity comes from the
// database; subscribers of this process see every committed write.
type Postgres struct {
	db  *gorm.DB
	hub *hub
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db, hub: newHub()}
}

func (p *Postgres) Watch(ctx context.Context, scope Scope) (*Subscription, error) {
	sub, err := p.hub.watch(scope, func() ([]models.FoodItem, error) {
		return p.List(ctx, scope)
	})
	if err != nil {
		return nil, fmt.Errorf("loading initial snapshot: %w", err)
	}
	return sub, nil
}

func (p *Postgres) Add(ctx context.Context, scope Scope, item models.FoodItem) (models.FoodItem, error) {
	item.ID = uuid.NewString()
	item.AppID = scope.AppID
	item.UserID = scope.UserID
	item.CreatedAt = time.Now().UTC()

	if err := p.db.WithContext(ctx).Create(&item).Error; err != nil {
		return models.FoodItem{}, fmt.Errorf("writing log entry: %w", err)
	}

	p.notify(ctx, scope)
	return item, nil
}

func (p *Postgres) Delete(ctx context.Context, scope Scope, id string) error {
	res := p.db.WithContext(ctx).
		Where("app_id = ? AND user_id = ? AND id = ?", scope.AppID, scope.UserID, id).
		Delete(&models.FoodItem{})
	if res.Error != nil {
		return fmt.Errorf("deleting log entry: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		p.notify(ctx, scope)
	}
	return nil
}

func (p *Postgres) List(ctx context.Context, scope Scope) ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := p.db.WithContext(ctx).
		Where("app_id = ? AND user_id = ?", scope.AppID, scope.UserID).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("listing log entries: %w", err)
	}
	return items, nil
}

func (p *Postgres) notify(ctx context.Context, scope Scope) {
	err := p.hub.publish(scope, func() ([]models.FoodItem, error) {
		return p.List(ctx, scope)
	})
	if err != nil {
		logger.Error("failed to load snapshot after write", "user_id", scope.UserID, "error", err)
	}
}
