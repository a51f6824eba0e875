// ABOUTME: ImageKit upload signing endpoint for authenticated clients
// ABOUTME: Issues short-lived HMAC-SHA1 signatures over a random token + expiry

package uploads

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// signatureTTL is how long issued upload signatures stay valid. ImageKit
// rejects expiry values more than an hour out, so stay under that.
const signatureTTL = 50 * time.Minute

// Signer issues upload authentication parameters for the ImageKit client SDK.
// The endpoint sits behind the edge gate; only authenticated users can obtain
// a signature.
type Signer struct {
	privateKey string
	logger     *slog.Logger
}

// NewSigner creates a signer with the given ImageKit private key. An empty
// key leaves the endpoint registered but failing closed with 500.
func NewSigner(privateKey string) *Signer {
	return &Signer{
		privateKey: privateKey,
		logger:     slog.Default().With("component", "uploads"),
	}
}

// RegisterRoutes registers the signing endpoint on the given mux.
func (s *Signer) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/imagekit-auth", s.handleSign)
}

// signResponse is the JSON body the ImageKit upload widget expects.
type signResponse struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

func (s *Signer) handleSign(w http.ResponseWriter, r *http.Request) {
	if s.privateKey == "" {
		s.logger.Error("upload signing requested without a configured private key")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "ImageKit private key not configured"})
		return
	}

	tok := uuid.NewString()
	expire := time.Now().Add(signatureTTL).Unix()

	mac := hmac.New(sha1.New, []byte(s.privateKey))
	mac.Write([]byte(tok + strconv.FormatInt(expire, 10)))
	sig := hex.EncodeToString(mac.Sum(nil))

	writeJSON(w, http.StatusOK, signResponse{
		Token:     tok,
		Expire:    expire,
		Signature: sig,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
