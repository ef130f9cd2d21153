package cache

import (
	"fmt"

	"github.com/google/uuid"
)

func TenantByIDKey(id uuid.UUID) string {
	return fmt.Sprintf("tenant:id:%s", id)
}

func TenantBySubdomainKey(subdomain string) string {
	return fmt.Sprintf("tenant:sub:%s", subdomain)
}

func RateLimitKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("ratelimit:%s", tenantID)
}
