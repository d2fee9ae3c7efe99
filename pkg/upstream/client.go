package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	sessiondomain "couponbox/internal/session/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ErrUnauthorized marks a 401/403 from the backend: the token is invalid or
// the session expired, and the caller should prompt a re-login rather than
// retry.
var ErrUnauthorized = errors.New("upstream: unauthorized")

// APIError is a non-2xx response with the backend's error detail.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream: status %d: %s", e.StatusCode, e.Detail)
}

// Is lets errors.Is(err, ErrUnauthorized) match auth-status responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// Client talks to the coupon backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a backend client for baseURL with the given per-request
// timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// GetCoupons fetches the parsed coupon groups for the authenticated user.
func (c *Client) GetCoupons(ctx context.Context, token string) (*CouponsResponse, error) {
	var out CouponsResponse
	if err := c.do(ctx, http.MethodGet, "/api/coupons", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetEmailHTML fetches the raw HTML of the source email behind a coupon
// group.
func (c *Client) GetEmailHTML(ctx context.Context, token, messageID string) (*EmailHTMLResponse, error) {
	var out EmailHTMLResponse
	if err := c.do(ctx, http.MethodGet, "/api/email_html/"+messageID, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TestAuth checks the token locally for expiry, then against the backend.
func (c *Client) TestAuth(ctx context.Context, token string) error {
	if err := CheckToken(token); err != nil {
		return err
	}
	return c.do(ctx, http.MethodGet, "/api/test-auth", token, nil, nil)
}

// GoogleSignIn exchanges a Google ID token for a backend session.
func (c *Client) GoogleSignIn(ctx context.Context, idToken string) (*AuthResponse, error) {
	body := map[string]string{"id_token": idToken}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/google", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser fetches the account record for the token's owner.
func (c *Client) CurrentUser(ctx context.Context, token string) (*sessiondomain.User, error) {
	var out sessiondomain.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GmailStatus reports whether the user's Gmail account is connected.
func (c *Client) GmailStatus(ctx context.Context, token string) (*GmailStatusResponse, error) {
	var out GmailStatusResponse
	if err := c.do(ctx, http.MethodGet, "/auth/gmail/status", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GmailConnectURL returns the consent URL that connects the user's Gmail.
func (c *Client) GmailConnectURL(ctx context.Context, token string) (*GmailConnectResponse, error) {
	var out GmailConnectResponse
	if err := c.do(ctx, http.MethodGet, "/auth/gmail/connect", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DisconnectGmail revokes the Gmail connection on the backend.
func (c *Client) DisconnectGmail(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/gmail/disconnect", token, nil, nil)
}

// Logout invalidates the session on the backend. A local logout still makes
// sense when this fails.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: "request failed"}
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && eb.Detail != "" {
			apiErr.Detail = eb.Detail
		}
		log.WithFields(log.Fields{
			"path":   path,
			"status": resp.StatusCode,
			"detail": apiErr.Detail,
		}).Warn("Upstream request failed")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
