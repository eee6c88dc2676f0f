package datahub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// datasetEndpoint is the catalog's dataset entity collection, also used as
// the startup probe target.
const datasetEndpoint = "/v3/entity/dataset"

// Client is a bearer-credentialed HTTP client bound to a DataHub base URL.
// Safe for concurrent use; the token is only written during session startup.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu        sync.RWMutex
	token     string
	csrfToken string // reserved for a future login flow, never sent today
}

// NewClient creates a catalog client with a fixed request timeout and a
// transport tuned for a small number of long-lived backend connections.
func NewClient(baseURL string) *Client {
	transport := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       30 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// SetToken attaches a bearer token to all subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken reverts the client to unauthenticated.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// Token returns the current bearer token, or "" when unauthenticated.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Close releases pooled connections.
func (c *Client) Close() {
	c.HTTPClient.CloseIdleConnections()
}

// Do issues one catalog request and normalizes the response into the result
// envelope. A non-2xx response is an ordinary result carrying an "error" key;
// a returned error means the request never produced a usable response.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any, params url.Values) (map[string]any, error) {
	var verb string
	switch strings.ToLower(method) {
	case "get":
		verb = http.MethodGet
	case "post":
		verb = http.MethodPost
	case "put":
		verb = http.MethodPut
	case "delete":
		verb = http.MethodDelete
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	u, err := url.Parse(c.BaseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	// GET and DELETE never carry a body.
	var payload io.Reader
	if body != nil && (verb == http.MethodPost || verb == http.MethodPut) {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, verb, u.String(), payload)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("datahub HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read datahub response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return map[string]any{
			"error": fmt.Sprintf("API request failed: %d - %s", resp.StatusCode, string(raw)),
		}, nil
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode datahub response: %w", err)
	}
	return out, nil
}
