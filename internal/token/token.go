// ABOUTME: JWT session token codec shared by the edge gate, issuer, and probe
// ABOUTME: Uses HS256 signing with a configurable shared secret

package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum allowed signing secret length in bytes.
// HS256 with a short secret is brute-forceable offline.
const MinSecretLength = 32

// Codec errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrMissingClaim = errors.New("missing required claim")
	ErrShortSecret  = errors.New("signing secret too short")
)

// Claims is the decoded payload of a session token. Subject identifies the
// authenticated user; ExpiresAt is the absolute expiry instant. Extra carries
// any additional claims through encode/decode unmodified.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
	Extra     map[string]any
}

// Codec encodes and decodes HS256-signed session tokens. It is the only
// component that signs or verifies tokens; every endpoint that needs either
// operation must share one Codec (and therefore one secret).
type Codec struct {
	secret []byte
}

// NewCodec creates a codec with the given shared secret.
func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", ErrShortSecret, MinSecretLength, len(secret))
	}
	return &Codec{secret: secret}, nil
}

// Encode signs the claim set into a compact token string.
// Subject and ExpiresAt are required; expiry is encoded in epoch seconds.
func (c *Codec) Encode(claims Claims) (string, error) {
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: sub", ErrMissingClaim)
	}
	if claims.ExpiresAt.IsZero() {
		return "", fmt.Errorf("%w: exp", ErrMissingClaim)
	}

	mc := jwt.MapClaims{}
	for k, v := range claims.Extra {
		mc[k] = v
	}
	mc["sub"] = claims.Subject
	mc["iat"] = time.Now().Unix()
	mc["exp"] = claims.ExpiresAt.Unix()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return tok.SignedString(c.secret)
}

// Decode validates a token string and returns its claim set. It fails with
// ErrExpiredToken when the token is expired, and an error wrapping
// ErrInvalidToken for any malformed, tampered, or wrongly signed token.
func (c *Codec) Decode(tokenString string) (Claims, error) {
	tok, err := jwt.Parse(tokenString, func(tok *jwt.Token) (interface{}, error) {
		// Only HS256-family signatures minted by this system are acceptable
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !tok.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sub, ok := mc["sub"].(string)
	if !ok || sub == "" {
		return Claims{}, fmt.Errorf("%w: sub", ErrMissingClaim)
	}

	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, fmt.Errorf("%w: exp", ErrMissingClaim)
	}

	claims := Claims{
		Subject:   sub,
		ExpiresAt: exp.Time,
	}
	for k, v := range mc {
		switch k {
		case "sub", "exp", "iat":
		default:
			if claims.Extra == nil {
				claims.Extra = make(map[string]any)
			}
			claims.Extra[k] = v
		}
	}

	return claims, nil
}
