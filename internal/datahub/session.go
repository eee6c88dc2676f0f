package datahub

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// Session is the process-lifetime context shared by every catalog operation:
// one HTTP client, the base URL, the current bearer token (held by the
// client) and the token store. It is created once at startup and passed
// explicitly into the tool layer.
type Session struct {
	Client  *Client
	BaseURL string
	Store   *TokenStore

	logger *zap.Logger
}

// NewSession wires a session around an already constructed client and store.
func NewSession(client *Client, store *TokenStore, logger *zap.Logger) *Session {
	return &Session{
		Client:  client,
		BaseURL: client.BaseURL,
		Store:   store,
		logger:  logger,
	}
}

// Open loads any stored token and verifies it against the catalog with one
// probe request. A token the backend rejects is dropped, leaving the session
// unauthenticated rather than failing startup.
func (s *Session) Open(ctx context.Context) {
	token := s.Store.Load()
	if token == "" {
		s.logger.Info("no stored access token, starting unauthenticated")
		return
	}

	s.Client.SetToken(token)
	s.logger.Info("using stored access token")

	status, err := s.probe(ctx)
	switch {
	case err != nil:
		s.logger.Warn("error verifying stored token", zap.Error(err))
		s.Client.ClearToken()
	case status != http.StatusOK:
		s.logger.Warn("stored token is invalid, re-authentication required",
			zap.Int("status", status))
		s.Client.ClearToken()
	}
}

// probe issues the token-validity check: one list request against the dataset
// endpoint. Only the status code matters.
func (s *Session) probe(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+datasetEndpoint, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+s.Client.Token())

	resp, err := s.Client.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// Close releases the client's pooled connections. Safe to call no matter how
// far Open got.
func (s *Session) Close() {
	s.logger.Info("shutting down datahub session")
	s.Client.Close()
}

// Authenticated reports whether a bearer token is currently attached.
func (s *Session) Authenticated() bool {
	return s.Client.Token() != ""
}

// Do issues one catalog request through the shared client.
func (s *Session) Do(ctx context.Context, method, endpoint string, body any, params url.Values) (map[string]any, error) {
	return s.Client.Do(ctx, method, endpoint, body, params)
}
