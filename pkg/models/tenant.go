package models

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Subdomains are lowercase alphanumeric plus hyphen, 3-30 chars, and immutable
// once assigned (issued links and QR codes embed them).
var subdomainRE = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,28}[a-z0-9]$`)

// ValidSubdomain reports whether s is a well-formed tenant subdomain.
func ValidSubdomain(s string) bool {
	return subdomainRE.MatchString(s)
}

// TenantSettings holds per-tenant storefront customization. Stored as jsonb.
type TenantSettings struct {
	Theme    string `json:"theme"`
	Currency string `json:"currency"`
	Language string `json:"language"`
}

// Tenant represents one onboarded restaurant business. Every menu entity
// belongs to exactly one tenant.
type Tenant struct {
	ID           uuid.UUID      `db:"id"            json:"id"`
	Subdomain    string         `db:"subdomain"     json:"subdomain"`
	BusinessName string         `db:"business_name" json:"business_name"`
	Description  string         `db:"description"   json:"description,omitempty"`
	LogoURL      string         `db:"logo_url"      json:"logo_url,omitempty"`
	Email        string         `db:"email"         json:"email"`
	Phone        string         `db:"phone"         json:"phone"`
	Address      string         `db:"address"       json:"address,omitempty"`
	IsActive     bool           `db:"is_active"     json:"is_active"`
	Settings     TenantSettings `db:"settings"      json:"settings"`
	CreatedAt    time.Time      `db:"created_at"    json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"    json:"updated_at"`
}
