// ABOUTME: Unit tests for the session token codec
// ABOUTME: Covers round-trips, tampering, expiry, and cross-secret rejection

package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("test-secret-key-for-jwt-signing!")

func TestCodec_RoundTrip(t *testing.T) {
	codec, err := NewCodec(testSecret)
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}

	want := Claims{
		Subject:   "maria",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	tok, err := codec.Encode(want)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if strings.Count(tok, ".") != 2 {
		t.Errorf("Encode() = %q, want three dot-separated segments", tok)
	}

	got, err := codec.Decode(tok)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Subject != want.Subject {
		t.Errorf("Subject = %q, want %q", got.Subject, want.Subject)
	}
	// exp is carried in whole seconds
	if got.ExpiresAt.Unix() != want.ExpiresAt.Unix() {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt.Unix(), want.ExpiresAt.Unix())
	}
}

func TestCodec_ExtraClaimsPassThrough(t *testing.T) {
	codec, _ := NewCodec(testSecret)

	tok, err := codec.Encode(Claims{
		Subject:   "maria",
		ExpiresAt: time.Now().Add(time.Hour),
		Extra:     map[string]any{"role": "editor"},
	})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := codec.Decode(tok)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Extra["role"] != "editor" {
		t.Errorf("Extra[role] = %v, want %q", got.Extra["role"], "editor")
	}
}

func TestCodec_ShortSecret(t *testing.T) {
	if _, err := NewCodec([]byte("too-short")); !errors.Is(err, ErrShortSecret) {
		t.Errorf("NewCodec() error = %v, want ErrShortSecret", err)
	}
}

func TestCodec_InvalidToken(t *testing.T) {
	codec, _ := NewCodec(testSecret)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not-a-jwt-token"},
		{name: "two segments", token: "aGVhZGVy.cGF5bG9hZA"},
		{name: "malformed segments", token: "header.payload.signature"},
		{
			name: "wrong secret",
			token: func() string {
				other, _ := NewCodec([]byte("another-secret-of-32-bytes-here!"))
				tok, _ := other.Encode(Claims{Subject: "maria", ExpiresAt: time.Now().Add(time.Hour)})
				return tok
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := codec.Decode(tt.token); err == nil {
				t.Error("Decode() should have returned an error")
			}
		})
	}
}

func TestCodec_TamperedToken(t *testing.T) {
	codec, _ := NewCodec(testSecret)

	tok, err := codec.Encode(Claims{Subject: "maria", ExpiresAt: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// Flip one character in the payload segment
	parts := strings.Split(tok, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := codec.Decode(tampered); err == nil {
		t.Error("Decode() accepted a tampered payload")
	}

	// Flip one character in the signature segment
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered = parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := codec.Decode(tampered); err == nil {
		t.Error("Decode() accepted a tampered signature")
	}
}

func TestCodec_ExpiredToken(t *testing.T) {
	codec, _ := NewCodec(testSecret)

	tok, err := codec.Encode(Claims{Subject: "maria", ExpiresAt: time.Now().Add(-time.Second)})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	_, err = codec.Decode(tok)
	if err == nil {
		t.Fatal("Decode() should have rejected an expired token")
	}
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Decode() error = %v, want ErrExpiredToken", err)
	}
}

func TestCodec_EncodeRequiresClaims(t *testing.T) {
	codec, _ := NewCodec(testSecret)

	if _, err := codec.Encode(Claims{ExpiresAt: time.Now().Add(time.Hour)}); !errors.Is(err, ErrMissingClaim) {
		t.Errorf("Encode() without subject: error = %v, want ErrMissingClaim", err)
	}
	if _, err := codec.Encode(Claims{Subject: "maria"}); !errors.Is(err, ErrMissingClaim) {
		t.Errorf("Encode() without expiry: error = %v, want ErrMissingClaim", err)
	}
}
