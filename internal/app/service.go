// Package app provides the core business service that implements the
// dependencies required by the HTTP API and the rendered site.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/lm-xiao-fen/my-inft-repo/internal/adapters/kv"
	"github.com/lm-xiao-fen/my-inft-repo/internal/adapters/repository"
	"github.com/lm-xiao-fen/my-inft-repo/internal/domain/model"
	"github.com/lm-xiao-fen/my-inft-repo/internal/session"
	"github.com/lm-xiao-fen/my-inft-repo/pkg/logger"
	"github.com/lm-xiao-fen/my-inft-repo/pkg/metrics"
)

// Service implements the site and API dependencies for the leaderboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	kv         kv.Store
	profiles   *repository.Store
	background *repository.Background
	sessions   *session.Manager

	// Configuration
	username   string
	password   string
	sessionTTL time.Duration

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithKV sets the key-value store backing all durable state.
func WithKV(store kv.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.kv = store
		}
	}
}

// WithCredentials sets the single fixed admin credential pair.
func WithCredentials(username, password string) Option {
	return func(s *Service) {
		if username != "" && password != "" {
			s.username = username
			s.password = password
		}
	}
}

// WithSessionTTL sets the fixed session lifetime.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		username:   "admin",
		password:   "password",
		sessionTTL: session.DefaultTTL,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components over the configured store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.kv == nil {
		return ErrNotStarted
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.profiles = repository.New(s.kv, repository.WithLogger(s.logger))
	s.background = repository.NewBackground(s.kv)
	s.sessions = session.NewManager(s.kv, s.sessionTTL)

	s.started = true
	s.logger.Info(ctx, "profile service started",
		logger.Int("sessionTTLSeconds", int(s.sessionTTL.Seconds())),
	)
	return nil
}

// Stop releases the underlying store when it supports closing.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if closer, ok := s.kv.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "profile service stopped")
}

// Login checks the credential pair and creates a session on success.
// Returns ErrInvalidCredentials when the pair does not match.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username != s.username || password != s.password {
		return "", ErrInvalidCredentials
	}
	token, err := s.sessions.Create(ctx, username)
	if err != nil {
		return "", err
	}
	s.logger.Info(ctx, "admin logged in", logger.String("username", username))
	return token, nil
}

// Logout destroys the session for token; absent tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// Authenticated reports whether token references a live session.
func (s *Service) Authenticated(ctx context.Context, token string) (bool, error) {
	sess, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return false, err
	}
	return sess != nil, nil
}

// SessionTTL returns the fixed session lifetime.
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

// ListProfiles returns the full collection in stored order.
func (s *Service) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	return s.profiles.List(ctx)
}

// CreateProfile appends a new record built from the draft.
func (s *Service) CreateProfile(ctx context.Context, draft model.Draft) (model.Profile, error) {
	return s.profiles.Create(ctx, draft)
}

// UpdateProfile merges the patch into the record with the given id.
func (s *Service) UpdateProfile(ctx context.Context, id string, patch model.Patch) (model.Profile, error) {
	return s.profiles.Update(ctx, id, patch)
}

// DeleteProfile removes the record with the given id.
func (s *Service) DeleteProfile(ctx context.Context, id string) error {
	return s.profiles.Delete(ctx, id)
}

// Background returns the stored background URL, empty when unset.
func (s *Service) Background(ctx context.Context) (string, error) {
	return s.background.Get(ctx)
}

// SetBackground stores or clears the background URL.
func (s *Service) SetBackground(ctx context.Context, url string) error {
	return s.background.Set(ctx, url)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":           s.started,
		"sessionTTLSeconds": int(s.sessionTTL.Seconds()),
	}

	if s.started {
		count := s.profiles.Count(ctx)
		stats["profileCount"] = count
		metrics.UpdateProfileCount(count)
	}

	return stats
}
