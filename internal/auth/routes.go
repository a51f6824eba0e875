// ABOUTME: Route classification table deciding public vs protected requests
// ABOUTME: Ordered rule list plus a static-asset extension allowlist

package auth

import (
	"net/http"
	"path"
	"strings"
)

// Access is the classification of a request path.
type Access int

const (
	// AccessPublic requests are forwarded without token inspection.
	AccessPublic Access = iota
	// AccessProtected requests require a valid session token.
	AccessProtected
)

// matchKind selects how a rule's pattern is applied.
type matchKind int

const (
	// matchPrefix matches the pattern exactly or any path below it.
	// A pattern of "/" therefore matches only the root.
	matchPrefix matchKind = iota
	// matchReadOnly matches like matchPrefix but only for GET and HEAD;
	// mutating verbs on the same path stay protected.
	matchReadOnly
)

// rule is one entry in the classification table.
type rule struct {
	pattern string
	kind    matchKind
}

// staticExts is the file-extension allowlist for static assets. Requests for
// these are always public regardless of the prefix rules.
var staticExts = map[string]bool{
	".css":   true,
	".js":    true,
	".mjs":   true,
	".png":   true,
	".jpg":   true,
	".jpeg":  true,
	".gif":   true,
	".svg":   true,
	".ico":   true,
	".webp":  true,
	".json":  true,
	".woff":  true,
	".woff2": true,
	".ttf":   true,
	".map":   true,
}

// RouteTable classifies request paths as public or protected. The table is
// static configuration assembled at startup and consulted read-only on every
// request; rules are evaluated in order and the first match wins.
type RouteTable struct {
	rules []rule
}

// DefaultRouteTable returns the table for the portfolio site: the SPA routes,
// login and session endpoints, static asset directories, and the read-only
// carve-out for the posts collection. Everything else is protected.
func DefaultRouteTable() *RouteTable {
	t := &RouteTable{}

	// SPA page routes are viewable without auth
	for _, p := range []string{"/", "/home", "/projects", "/work", "/about", "/contact", "/login"} {
		t.AddPublicPrefix(p)
	}

	// Auth endpoints themselves must be reachable logged-out: login to get a
	// session, the probe to learn you have none, logout to drop a stale cookie.
	t.AddPublicPrefix("/api/login")
	t.AddPublicPrefix("/api/session")
	t.AddPublicPrefix("/api/logout")

	// Liveness checks carry no credentials
	t.AddPublicPrefix("/health")

	// Static asset directories
	for _, p := range []string{"/assets", "/static", "/projectImg", "/public", "/i18n"} {
		t.AddPublicPrefix(p)
	}

	// Posts are readable by anyone; mutations go through the gate
	t.AddReadOnly("/api/posts")

	return t
}

// AddPublicPrefix appends a prefix rule marking the path and everything
// below it public.
func (t *RouteTable) AddPublicPrefix(pattern string) {
	t.rules = append(t.rules, rule{pattern: pattern, kind: matchPrefix})
}

// AddReadOnly appends a rule making GET and HEAD requests under the path
// public while leaving other methods protected.
func (t *RouteTable) AddReadOnly(pattern string) {
	t.rules = append(t.rules, rule{pattern: pattern, kind: matchReadOnly})
}

// Classify returns the access class for a request path and method.
func (t *RouteTable) Classify(reqPath, method string) Access {
	if staticExts[strings.ToLower(path.Ext(reqPath))] {
		return AccessPublic
	}

	for _, r := range t.rules {
		if !prefixMatch(reqPath, r.pattern) {
			continue
		}
		switch r.kind {
		case matchPrefix:
			return AccessPublic
		case matchReadOnly:
			if method == http.MethodGet || method == http.MethodHead {
				return AccessPublic
			}
		}
	}

	return AccessProtected
}

// prefixMatch reports whether p equals pattern or lives below it.
// The bare root pattern "/" matches only the root itself; it must not make
// every path public.
func prefixMatch(p, pattern string) bool {
	if p == pattern {
		return true
	}
	if pattern == "/" {
		return false
	}
	return strings.HasPrefix(p, pattern+"/")
}
