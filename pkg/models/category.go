package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products on a tenant's menu. Position controls display order.
type Category struct {
	ID          uuid.UUID `db:"id"          json:"id"`
	TenantID    uuid.UUID `db:"tenant_id"   json:"tenant_id"`
	Name        string    `db:"name"        json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	ImageURL    string    `db:"image_url"   json:"image_url,omitempty"`
	IsActive    bool      `db:"is_active"   json:"is_active"`
	Position    int       `db:"position"    json:"position"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"  json:"updated_at"`
}
