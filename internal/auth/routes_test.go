// ABOUTME: Tests for the route classification table
// ABOUTME: Covers prefix rules, the static extension allowlist, and the read-only carve-out

package auth

import (
	"net/http"
	"testing"
)

func TestRouteTable_Classify(t *testing.T) {
	table := DefaultRouteTable()

	tests := []struct {
		path   string
		method string
		want   Access
	}{
		{"/", http.MethodGet, AccessPublic},
		{"/home", http.MethodGet, AccessPublic},
		{"/projects", http.MethodGet, AccessPublic},
		{"/projects/42", http.MethodGet, AccessPublic},
		{"/login", http.MethodPost, AccessPublic},
		{"/api/login", http.MethodPost, AccessPublic},
		{"/api/session", http.MethodGet, AccessPublic},
		{"/api/logout", http.MethodPost, AccessPublic},
		{"/health", http.MethodGet, AccessPublic},
		{"/assets/app.css", http.MethodGet, AccessPublic},
		{"/anything/bundle.js", http.MethodGet, AccessPublic},
		{"/fonts/inter.woff2", http.MethodGet, AccessPublic},
		{"/i18n/en.json", http.MethodGet, AccessPublic},

		// Posts: readable by anyone, mutable only with a session
		{"/api/posts", http.MethodGet, AccessPublic},
		{"/api/posts", http.MethodHead, AccessPublic},
		{"/api/posts", http.MethodPost, AccessProtected},
		{"/api/posts", http.MethodPut, AccessProtected},
		{"/api/posts", http.MethodDelete, AccessProtected},
		{"/api/posts/7", http.MethodGet, AccessPublic},

		// Everything else defaults to protected
		{"/api/admin", http.MethodGet, AccessProtected},
		{"/api/imagekit-auth", http.MethodPost, AccessProtected},
		{"/secret", http.MethodGet, AccessProtected},
	}

	for _, tt := range tests {
		if got := table.Classify(tt.path, tt.method); got != tt.want {
			t.Errorf("Classify(%q, %q) = %v, want %v", tt.path, tt.method, got, tt.want)
		}
	}
}

func TestRouteTable_RootDoesNotLeak(t *testing.T) {
	table := &RouteTable{}
	table.AddPublicPrefix("/")

	if got := table.Classify("/", http.MethodGet); got != AccessPublic {
		t.Errorf("Classify(/) = %v, want AccessPublic", got)
	}
	if got := table.Classify("/api/admin", http.MethodGet); got != AccessProtected {
		t.Errorf("Classify(/api/admin) = %v, want AccessProtected: the root rule must match only the root", got)
	}
}

func TestRouteTable_PrefixBoundary(t *testing.T) {
	table := &RouteTable{}
	table.AddPublicPrefix("/login")

	// "/loginx" shares the characters but is not under the prefix
	if got := table.Classify("/loginx", http.MethodGet); got != AccessProtected {
		t.Errorf("Classify(/loginx) = %v, want AccessProtected", got)
	}
	if got := table.Classify("/login/callback", http.MethodGet); got != AccessPublic {
		t.Errorf("Classify(/login/callback) = %v, want AccessPublic", got)
	}
}
