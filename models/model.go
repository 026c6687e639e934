package models

import (
	"fmt"
	"time"
)

// FoodItem is a persisted food log entry. Identity and CreatedAt are assigned
// by the collection on write; clients never supply them.
type FoodItem struct {
	ID     string `gorm:"primaryKey;size:64" json:"id"`
	AppID  string `gorm:"size:64;not null;index:idx_scope" json:"-"`
	UserID string `gorm:"size:128;not null;index:idx_scope" json:"-"`

	Name     string  `gorm:"size:255;not null" json:"name"`
	Quantity float64 `gorm:"not null" json:"quantity"`
	Unit     string  `gorm:"size:32;not null" json:"unit"`

	// Calories is optional. When nil, consumers derive it from the macros
	// (4p + 4c + 9f). An explicit value wins even if it disagrees with the
	// macros; user and estimate data are allowed to diverge.
	Calories *float64 `json:"calories,omitempty"`

	Protein float64 `gorm:"default:0" json:"protein"`
	Carbs   float64 `gorm:"default:0" json:"carbs"`
	Fat     float64 `gorm:"default:0" json:"fat"`
	Fiber   float64 `gorm:"default:0" json:"fiber"`

	// IsZeroPoint forces the item's points to zero regardless of nutrients.
	IsZeroPoint bool `gorm:"default:false" json:"is_zero_point"`

	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the persisted-item invariants: non-empty name, positive
// quantity, known unit, non-negative nutrients.
func (f *FoodItem) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("food item name is required")
	}
	if f.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %v", f.Quantity)
	}
	if !ValidUnit(f.Unit) {
		return fmt.Errorf("unknown unit %q", f.Unit)
	}
	if f.Calories != nil && *f.Calories < 0 {
		return fmt.Errorf("calories must be non-negative")
	}
	for name, v := range map[string]float64{
		"protein": f.Protein, "carbs": f.Carbs, "fat": f.Fat, "fiber": f.Fiber,
	} {
		if v < 0 {
			return fmt.Errorf("%s must be non-negative", name)
		}
	}
	return nil
}
