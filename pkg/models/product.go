package models

import (
	"time"

	"github.com/google/uuid"
)

// NutritionInfo is optional per-product nutrition data. Stored as jsonb.
type NutritionInfo struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// Product is a single menu item belonging to a tenant and a category.
// PriceCents avoids floating-point money.
type Product struct {
	ID              uuid.UUID      `db:"id"               json:"id"`
	TenantID        uuid.UUID      `db:"tenant_id"        json:"tenant_id"`
	CategoryID      uuid.UUID      `db:"category_id"      json:"category_id"`
	Name            string         `db:"name"             json:"name"`
	Description     string         `db:"description"      json:"description,omitempty"`
	PriceCents      int64          `db:"price_cents"      json:"price_cents"`
	ImageURL        string         `db:"image_url"        json:"image_url,omitempty"`
	IsActive        bool           `db:"is_active"        json:"is_active"`
	Nutrition       *NutritionInfo `db:"nutrition"        json:"nutrition,omitempty"`
	Allergens       []string       `db:"allergens"        json:"allergens,omitempty"`
	PrepTimeMinutes int            `db:"prep_time_minutes" json:"prep_time_minutes"`
	CreatedAt       time.Time      `db:"created_at"       json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"       json:"updated_at"`
}
