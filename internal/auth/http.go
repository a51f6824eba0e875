// ABOUTME: HTTP edge gate middleware enforcing cookie-token authentication
// ABOUTME: Classifies requests via the route table and validates the auth cookie

package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/foliolabs/folio-gateway/internal/token"
)

// CookieName is the cookie attribute carrying the session token.
const CookieName = "auth"

// TokenFromRequest extracts the session token from the request's auth cookie.
// Returns the empty string when no cookie is present.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Gate intercepts every inbound request and, for protected paths, requires a
// valid session token before the request reaches its target handler. The gate
// never mutates the token or the credential store.
type Gate struct {
	table  *RouteTable
	codec  *token.Codec
	logger *slog.Logger
}

// NewGate creates an edge gate over the given route table and token codec.
func NewGate(table *RouteTable, codec *token.Codec) *Gate {
	return &Gate{
		table:  table,
		codec:  codec,
		logger: slog.Default().With("component", "gate"),
	}
}

// Middleware wraps a handler with the gate's enforcement. Public requests are
// forwarded untouched. Protected requests without a cookie are rejected with
// 401 (never logged in); with a malformed, tampered, or expired cookie they
// are rejected with 403 (session invalid, log in again). On success the
// decoded session is attached to the request context.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.table.Classify(r.URL.Path, r.Method) == AccessPublic {
			next.ServeHTTP(w, r)
			return
		}

		tok := TokenFromRequest(r)
		if tok == "" {
			writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := g.codec.Decode(tok)
		if err != nil {
			// Expired vs tampered is visible in logs only; the response is
			// one undifferentiated 403.
			if errors.Is(err, token.ErrExpiredToken) {
				g.logger.Debug("rejected expired token", "path", r.URL.Path)
			} else {
				g.logger.Warn("rejected invalid token", "path", r.URL.Path, "error", err)
			}
			writeJSONError(w, http.StatusForbidden, "Forbidden")
			return
		}

		session := &Session{
			Username:  claims.Subject,
			ExpiresAt: claims.ExpiresAt,
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
