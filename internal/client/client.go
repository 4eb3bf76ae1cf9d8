// Package client is the Go rendering of the storefront's browser-side
// logic: the API client, the pending-changes staging store and the PIN
// entry state machine. It deliberately depends on net/http only — it
// models the consumer of the API, not the server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/websopen/web-valencio/internal/model"
)

// TokenQueryParam carries the hub-issued token on the first admin visit.
const TokenQueryParam = "admin_token"

// TokenValidation is the client-side view of a validate-token result.
type TokenValidation struct {
	Valid             bool   `json:"valid"`
	AlreadyAssociated bool   `json:"alreadyAssociated"`
	Error             string `json:"error"`
}

// Activation is the client-side view of an activate result.
type Activation struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// AuthStatus is the client-side view of an auth check.
type AuthStatus struct {
	IsAdmin           bool `json:"isAdmin"`
	OnboardingPending bool `json:"onboardingPending"`
}

type saveResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client talks to the Valencio API with a browser-like cookie jar, so the
// session cookie issued on activation rides along on later calls.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given API base URL (e.g. "https://store.example").
func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar},
	}
}

// ValidateToken checks a hub token with the server. Network failures are
// converted into an error-shaped result, never propagated.
func (c *Client) ValidateToken(ctx context.Context, token string) TokenValidation {
	var out TokenValidation
	err := c.postJSON(ctx, "/api/auth/validate-token", map[string]string{"token": token}, &out)
	if err != nil {
		return TokenValidation{Error: "network_error"}
	}
	return out
}

// ActivateAdmin completes activation with token + PIN. On success the
// session cookie lands in the jar.
func (c *Client) ActivateAdmin(ctx context.Context, token, pin string) Activation {
	var out Activation
	err := c.postJSON(ctx, "/api/auth/activate", map[string]string{"token": token, "pin": pin}, &out)
	if err != nil {
		return Activation{Error: "network_error"}
	}
	return out
}

// CheckAuth reports the current session's admin status. Failures read as
// "not admin".
func (c *Client) CheckAuth(ctx context.Context) AuthStatus {
	var out AuthStatus
	if err := c.getJSON(ctx, "/api/auth/check", &out); err != nil {
		return AuthStatus{}
	}
	return out
}

// LoadStoreData fetches the persisted aggregate. It never fails: any
// error falls back to defaults so the storefront always renders.
func (c *Client) LoadStoreData(ctx context.Context) *model.StoreData {
	var out model.StoreData
	if err := c.getJSON(ctx, "/api/store/data", &out); err != nil {
		return model.DefaultStoreData()
	}
	out.ApplyDefaults()
	return &out
}

// SaveStoreData sends the full aggregate in one request. The server
// either fully accepts or the caller keeps its pending edits for retry.
func (c *Client) SaveStoreData(ctx context.Context, data *model.StoreData) error {
	var out saveResult
	if err := c.postJSON(ctx, "/api/store/settings", data, &out); err != nil {
		return err
	}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = out.Error
		}
		return fmt.Errorf("save rejected: %s", msg)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("server error: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// TokenFromURL extracts the admin token from a page URL, or "" if absent.
func TokenFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get(TokenQueryParam)
}

// StripToken removes the admin token from a page URL. The caller must
// replace the visible URL with the result immediately after reading the
// token so it never leaks via history or referrer.
func StripToken(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Del(TokenQueryParam)
	u.RawQuery = q.Encode()
	return u.String()
}
