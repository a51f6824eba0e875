// Package gateway orchestrates the folio-gateway server components.
//
// # Overview
//
// The gateway package is the central coordinator of the folio-gateway
// server. It owns the data store, the token codec, the HTTP server, and the
// optional Tailscale node, and wires the API handlers behind the edge gate.
//
// # Request Flow
//
// Every request passes through the gate middleware before any handler runs:
//
//	client -> gate (route classification + cookie check) -> mux -> handler
//
// Public prefixes and read-only API paths pass straight through; everything
// else requires a valid session cookie.
//
// # HTTP API
//
//   - POST /api/login - Verify challenge + credentials, set session cookie
//   - GET /api/session - Report session state
//   - POST /api/logout - Clear the session cookie
//   - GET/POST/PUT/DELETE /api/posts - Post CRUD (reads public, writes gated)
//   - POST /api/imagekit-auth - Upload signature for the ImageKit widget
//   - GET /api/admin - Admin area ping (gated)
//   - GET /health - Liveness check
//
// All other paths serve the embedded frontend with an index.html fallback
// for client-side routes.
//
// # Lifecycle
//
// Start the gateway:
//
//	gw, err := gateway.New(cfg, logger)
//	ctx, cancel := context.WithCancel(context.Background())
//	go gw.Run(ctx)
//
// Graceful shutdown:
//
//	cancel()
//
// Run handles shutdown itself when its context is canceled; Shutdown is
// also available for direct control.
package gateway
