// Package session issues, validates, and revokes opaque admin session tokens
// over the key-value store. Expiry is enforced entirely by the store's native
// TTL; there is no in-process cache and no sliding renewal.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lm-xiao-fen/my-inft-repo/internal/adapters/kv"
	"github.com/lm-xiao-fen/my-inft-repo/pkg/metrics"
)

const keyPrefix = "session:"

// DefaultTTL is the fixed session lifetime applied when none is configured.
const DefaultTTL = 2 * time.Hour

// Session is the record persisted under a token.
type Session struct {
	Username string `json:"username"`
	Created  int64  `json:"created"` // unix milliseconds
}

// Manager creates and looks up sessions in the key-value store.
type Manager struct {
	kv  kv.Store
	ttl time.Duration
}

// NewManager creates a session manager with the given fixed TTL.
func NewManager(store kv.Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{kv: store, ttl: ttl}
}

// TTL returns the fixed session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create generates a cryptographically random token, persists the session
// record under it with the store-enforced TTL, and returns the token.
func (m *Manager) Create(ctx context.Context, username string) (string, error) {
	token := uuid.NewString()
	data, err := json.Marshal(Session{
		Username: username,
		Created:  time.Now().UnixMilli(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := m.kv.PutTTL(ctx, keyPrefix+token, string(data), m.ttl); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	metrics.RecordSessionCreated()
	return token, nil
}

// Validate looks up a token and returns the stored record, or nil when the
// token is empty, unknown, expired, or the stored data is undecodable. Only a
// store failure is reported as an error.
func (m *Manager) Validate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}
	raw, err := m.kv.Get(ctx, keyPrefix+token)
	if err != nil {
		if kv.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		// Undecodable session data is indistinguishable from absence.
		return nil, nil
	}
	return &s, nil
}

// Destroy deletes the record for token. Destroying an absent or empty token
// is a no-op and is not counted as a destroyed session.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	removed, err := m.kv.Delete(ctx, keyPrefix+token)
	if err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	if removed {
		metrics.RecordSessionDestroyed()
	}
	return nil
}
