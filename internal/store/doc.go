// Package store provides persistence for folio-gateway: the admin users the
// session issuer authenticates against, and the portfolio posts served by
// the content API. The only implementation is SQLite via modernc.org/sqlite;
// the schema is created automatically on first open.
package store
