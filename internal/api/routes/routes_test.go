package routes_test

import (
	"net/http"
	"testing"

	"github.com/ordercheff/api/internal/api/routes"
	"github.com/stretchr/testify/assert"
)

func TestTableDefaultsToProtected(t *testing.T) {
	table := routes.NewTable().Freeze()

	assert.False(t, table.IsPublic(http.MethodGet, "/api/v1/products"))
	assert.False(t, table.IsPublic(http.MethodPost, "/api/v1/anything"))
	assert.False(t, table.IsPublic(http.MethodGet, "/"))
}

func TestTableExactMatchIsMethodSpecific(t *testing.T) {
	table := routes.NewTable()
	table.MarkPublic(http.MethodGet, "/api/v1/health")
	table.Freeze()

	assert.True(t, table.IsPublic(http.MethodGet, "/api/v1/health"))
	assert.False(t, table.IsPublic(http.MethodPost, "/api/v1/health"))
	assert.False(t, table.IsPublic(http.MethodGet, "/api/v1/health/deep"))
}

func TestTablePrefixMatchesAllMethods(t *testing.T) {
	table := routes.NewTable()
	table.MarkPublicPrefix("/api/v1/auth/")
	table.Freeze()

	assert.True(t, table.IsPublic(http.MethodPost, "/api/v1/auth/register"))
	assert.True(t, table.IsPublic(http.MethodGet, "/api/v1/auth/check-subdomain/pizza"))
	assert.False(t, table.IsPublic(http.MethodGet, "/api/v1/authx"))
	assert.False(t, table.IsPublic(http.MethodGet, "/api/v1/tenant"))
}

func TestTablePanicsOnMarkAfterFreeze(t *testing.T) {
	table := routes.NewTable()
	table.MarkPublic(http.MethodGet, "/api/v1/health")
	table.Freeze()

	assert.Panics(t, func() {
		table.MarkPublic(http.MethodGet, "/api/v1/late")
	})
	assert.Panics(t, func() {
		table.MarkPublicPrefix("/api/v1/late/")
	})
}
