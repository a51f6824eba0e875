// ABOUTME: Session issuer, probe, and logout HTTP handlers
// ABOUTME: Verifies turnstile + credentials, mints the auth cookie, reports auth state

package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/foliolabs/folio-gateway/internal/auth"
	"github.com/foliolabs/folio-gateway/internal/store"
	"github.com/foliolabs/folio-gateway/internal/token"
	"github.com/foliolabs/folio-gateway/internal/turnstile"
)

// DefaultTTL is the session lifetime when none is configured. The cookie
// Max-Age and the token's exp claim are both derived from this one value.
const DefaultTTL = time.Hour

// dummyHash is compared against when the username does not exist, keeping
// login timing flat so usernames cannot be enumerated.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Handler serves the login, session-probe, and logout endpoints.
type Handler struct {
	codec    *token.Codec
	creds    store.CredentialStore
	verifier turnstile.Verifier // nil when no turnstile secret is configured
	ttl      time.Duration
	logger   *slog.Logger
}

// NewHandler creates the session endpoints. A zero ttl falls back to DefaultTTL.
func NewHandler(codec *token.Codec, creds store.CredentialStore, verifier turnstile.Verifier, ttl time.Duration) *Handler {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Handler{
		codec:    codec,
		creds:    creds,
		verifier: verifier,
		ttl:      ttl,
		logger:   slog.Default().With("component", "session"),
	}
}

// RegisterRoutes registers the session endpoints on the given mux. All three
// must be public in the gate's route table: login and probe by definition,
// logout so a client with a stale cookie can still drop it.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/login", h.handleLogin)
	mux.HandleFunc("GET /api/session", h.handleProbe)
	mux.HandleFunc("POST /api/logout", h.handleLogout)
}

// loginRequest is the JSON body for POST /api/login.
type loginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Turnstile string `json:"turnstile"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	// A malformed body is treated as an empty one; the missing-challenge
	// check below produces the client-facing error.
	_ = json.NewDecoder(r.Body).Decode(&req)

	// Challenge first: no credential-store lookups for bot traffic.
	if req.Turnstile == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing turnstile token"})
		return
	}

	if h.verifier == nil {
		h.logger.Error("login attempted without a configured turnstile secret")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Challenge verification not configured"})
		return
	}

	if err := h.verifier.Verify(r.Context(), req.Turnstile, remoteIP(r)); err != nil {
		if errors.Is(err, turnstile.ErrChallengeFailed) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Turnstile verification failed"})
			return
		}
		h.logger.Error("turnstile verifier unreachable", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Turnstile verification error"})
		return
	}

	user, err := h.creds.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a bcrypt comparison so unknown usernames take as long
			// as wrong passwords.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(req.Password))
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid credentials"})
			return
		}
		h.logger.Error("credential lookup failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "An error occurred"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid credentials"})
		return
	}

	expiresAt := time.Now().Add(h.ttl)
	tok, err := h.codec.Encode(token.Claims{
		Subject:   user.Username,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		h.logger.Error("minting session token failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "An error occurred"})
		return
	}

	http.SetCookie(w, h.sessionCookie(tok, int(h.ttl.Seconds())))
	h.logger.Info("login successful", "username", user.Username)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleProbe reports the caller's current authentication state. It is a
// query, not a gate: an absent or invalid token yields 200 with
// authenticated:false, never a 401/403.
func (h *Handler) handleProbe(w http.ResponseWriter, r *http.Request) {
	tok := auth.TokenFromRequest(r)
	if tok == "" {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	claims, err := h.codec.Decode(tok)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"username":      claims.Subject,
	})
}

// handleLogout clears the auth cookie. The token itself stays valid until
// its natural expiry; stateless tokens have no server-side revocation.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// sessionCookie builds the auth cookie with the fixed attribute set. maxAge
// is seconds for issuance and -1 for deletion.
func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

// remoteIP extracts the client IP for the turnstile verifier.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
