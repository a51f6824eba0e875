// ABOUTME: Cloudflare Turnstile verification client for the login endpoint
// ABOUTME: Posts the challenge response to siteverify and reports the outcome

package turnstile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultVerifyURL is Cloudflare's siteverify endpoint.
const DefaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// ErrChallengeFailed is returned when the verifier rejects the challenge
// response. Transport failures return a different error so callers can map
// "verifier said no" and "verifier unreachable" to different statuses.
var ErrChallengeFailed = errors.New("challenge verification failed")

// Verifier checks an anti-automation challenge response.
type Verifier interface {
	Verify(ctx context.Context, response, remoteIP string) error
}

// Client verifies Turnstile challenge responses against the siteverify API.
type Client struct {
	secret    string
	verifyURL string
	client    *http.Client
	logger    *slog.Logger
}

// NewClient creates a verifier with the given shared secret. verifyURL may be
// empty to use the Cloudflare endpoint; tests point it at a local server.
func NewClient(secret, verifyURL string) *Client {
	if verifyURL == "" {
		verifyURL = DefaultVerifyURL
	}
	return &Client{
		secret:    secret,
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    slog.Default().With("component", "turnstile"),
	}
}

// verifyResponse is the siteverify JSON response body.
type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify posts the challenge response to the verifier. It returns
// ErrChallengeFailed when the verifier rejects the response, or a wrapped
// transport error when the verifier cannot be reached.
func (c *Client) Verify(ctx context.Context, response, remoteIP string) error {
	form := url.Values{
		"secret":   {c.secret},
		"response": {response},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("reaching verifier: %w", err)
	}
	defer resp.Body.Close()

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("parsing verifier response: %w", err)
	}

	if !body.Success {
		c.logger.Debug("challenge rejected", "error_codes", strings.Join(body.ErrorCodes, ","))
		return ErrChallengeFailed
	}
	return nil
}
