// ABOUTME: Tests for the ImageKit upload signing endpoint

package uploads

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func TestSigner_Sign(t *testing.T) {
	mux := http.NewServeMux()
	NewSigner("private-key").RegisterRoutes(mux)

	req := httptest.NewRequest(http.MethodPost, "/api/imagekit-auth", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp signResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Error("empty token")
	}
	if resp.Expire <= time.Now().Unix() {
		t.Errorf("expire = %d, want a future instant", resp.Expire)
	}
	if resp.Expire > time.Now().Add(time.Hour).Unix() {
		t.Errorf("expire = %d, must stay under one hour out", resp.Expire)
	}

	// Signature must verify against the private key
	mac := hmac.New(sha1.New, []byte("private-key"))
	mac.Write([]byte(resp.Token + strconv.FormatInt(resp.Expire, 10)))
	want := hex.EncodeToString(mac.Sum(nil))
	if resp.Signature != want {
		t.Errorf("signature = %q, want %q", resp.Signature, want)
	}
}

func TestSigner_TokensAreUnique(t *testing.T) {
	mux := http.NewServeMux()
	NewSigner("private-key").RegisterRoutes(mux)

	issue := func() string {
		req := httptest.NewRequest(http.MethodPost, "/api/imagekit-auth", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		var resp signResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		return resp.Token
	}

	if issue() == issue() {
		t.Error("two signing requests returned the same token")
	}
}

func TestSigner_MissingKey(t *testing.T) {
	mux := http.NewServeMux()
	NewSigner("").RegisterRoutes(mux)

	req := httptest.NewRequest(http.MethodPost, "/api/imagekit-auth", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 when no private key is configured", rec.Code)
	}
}
