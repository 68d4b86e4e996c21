package repository

import "github.com/lm-xiao-fen/my-inft-repo/pkg/logger"

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithLogger sets a logger for decode warnings.
func WithLogger(log logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}
