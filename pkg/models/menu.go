package models

import (
	"time"

	"github.com/google/uuid"
)

// Menu is a named grouping of categories (e.g. "Lunch", "Drinks"). The
// category links live in a join table; CategoryIDs is hydrated on read.
type Menu struct {
	ID          uuid.UUID   `db:"id"          json:"id"`
	TenantID    uuid.UUID   `db:"tenant_id"   json:"tenant_id"`
	Name        string      `db:"name"        json:"name"`
	Description string      `db:"description" json:"description,omitempty"`
	IsActive    bool        `db:"is_active"   json:"is_active"`
	CategoryIDs []uuid.UUID `db:"-"           json:"category_ids"`
	CreatedAt   time.Time   `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"  json:"updated_at"`
}

// MenuSection is one category plus its products, as served to the storefront.
type MenuSection struct {
	Category Category   `json:"category"`
	Products []*Product `json:"products"`
}
