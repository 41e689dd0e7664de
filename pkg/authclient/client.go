// Package authclient is the credentialed HTTP client for the LMS API. It
// keeps the access token in memory only, sends the refresh cookie through its
// jar, and transparently performs a single refresh-and-retry when a request
// comes back unauthenticated.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client

	// Guards the single in-memory access-token slot. Two goroutines racing
	// past an expired token just cause a redundant refresh; the server does
	// not rotate the refresh token, so that is safe.
	mu          sync.Mutex
	accessToken string
}

type User struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	FullName     string  `json:"full_name"`
	Role         string  `json:"role"`
	Grade        *string `json:"grade,omitempty"`
	LanguagePref string  `json:"language_pref"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

func (c *Client) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

func (c *Client) setAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

// Login authenticates and seeds both the token slot and the cookie jar.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("login failed with status: %d", resp.StatusCode)
	}

	var result loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	c.setAccessToken(result.AccessToken)
	return &result.User, nil
}

// Logout revokes the refresh token server-side and drops the local slot.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	c.setAccessToken("")
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("logout failed with status: %d", resp.StatusCode)
	}
	return nil
}

// Do sends req with the current bearer token. On the first 401 it refreshes
// once and retries the original request exactly once with the new token; any
// further unauthenticated response is returned to the caller as-is.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	token := c.AccessToken()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	retry, err := cloneRequest(req)
	if err != nil {
		return resp, nil
	}

	if refreshErr := c.Refresh(req.Context()); refreshErr != nil {
		// Surface the original 401; the caller decides what to do next.
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	retry.Header.Set("Authorization", "Bearer "+c.AccessToken())
	return c.httpClient.Do(retry)
}

// Refresh exchanges the refresh cookie for a new access token and swaps the
// slot atomically.
func (c *Client) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/refresh", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.setAccessToken("")
		return fmt.Errorf("refresh failed with status: %d", resp.StatusCode)
	}

	var result refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	c.setAccessToken(result.AccessToken)
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.Do(req)
}

// Get is a convenience wrapper over Do for JSON GET endpoints.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status: %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// cloneRequest rebuilds a request so it can be sent a second time; requests
// with a consumed one-shot body cannot be retried.
func cloneRequest(req *http.Request) (*http.Request, error) {
	retry := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		retry.Body = nil
		return retry, nil
	}
	if req.GetBody == nil {
		return nil, fmt.Errorf("request body cannot be replayed")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	retry.Body = body
	return retry, nil
}
