// Package routes classifies routes as public or protected. The table is
// built once at registration time and is read-only afterwards; there is no
// runtime reflection over handlers.
package routes

import (
	"strings"
	"sync/atomic"
)

// Table is a static route classification. Every route is protected unless
// explicitly marked public — the fail-closed default is the primary defense
// against shipping a new endpoint without tenant scoping.
type Table struct {
	exact    map[string]bool
	prefixes []string
	frozen   atomic.Bool
}

func NewTable() *Table {
	return &Table{exact: make(map[string]bool)}
}

// MarkPublic opts a single method+path pair out of tenant enforcement.
// Registration-time only.
func (t *Table) MarkPublic(method, path string) {
	if t.frozen.Load() {
		panic("routes: table modified after freeze")
	}
	t.exact[method+" "+path] = true
}

// MarkPublicPrefix opts a whole path group out of tenant enforcement,
// regardless of method. Used for onboarding surfaces (registration, login,
// subdomain availability) that by definition cannot require a pre-existing
// tenant.
func (t *Table) MarkPublicPrefix(prefix string) {
	if t.frozen.Load() {
		panic("routes: table modified after freeze")
	}
	t.prefixes = append(t.prefixes, prefix)
}

// Freeze makes further marking a programming error. The router calls it
// after registration so the table is immutable at request time.
func (t *Table) Freeze() *Table {
	t.frozen.Store(true)
	return t
}

// IsPublic reports whether the route bypasses tenant enforcement.
// Unknown routes are protected.
func (t *Table) IsPublic(method, path string) bool {
	if t.exact[method+" "+path] {
		return true
	}
	for _, p := range t.prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
