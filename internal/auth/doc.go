// Package auth implements the edge gate: per-request classification of
// public vs protected routes and enforcement of cookie-token authentication
// before a request reaches its target handler.
//
// Classification is driven by an ordered RouteTable evaluated read-only on
// every request. Enforcement distinguishes a missing credential (401) from a
// presented-but-invalid one (403); on success the decoded Session is attached
// to the request context for downstream handlers.
package auth
