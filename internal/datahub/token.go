package datahub

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

// TokenStore persists a single bearer token to a local file.
type TokenStore struct {
	Path string

	logger *zap.Logger
}

// NewTokenStore creates a token store backed by the file at path.
func NewTokenStore(path string, logger *zap.Logger) *TokenStore {
	return &TokenStore{Path: path, logger: logger}
}

// Load returns the stored token, or "" when the file is missing or
// unreadable. Absence and read failure are deliberately indistinguishable.
func (s *TokenStore) Load() string {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save persists the token, overwriting any previous one. Persistence is
// best-effort: a write failure is logged, not returned.
func (s *TokenStore) Save(token string) {
	if err := os.WriteFile(s.Path, []byte(token), 0o600); err != nil {
		s.logger.Warn("could not save access token", zap.Error(err))
	}
}
