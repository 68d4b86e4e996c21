package repository

import (
	"context"
	"fmt"

	"github.com/lm-xiao-fen/my-inft-repo/internal/adapters/kv"
	"github.com/lm-xiao-fen/my-inft-repo/pkg/metrics"
)

const backgroundKey = "backgroundUrl"

// Background holds the single optional page background URL. It has no
// relational structure and is set or cleared independently of profiles.
type Background struct {
	kv kv.Store
}

// NewBackground creates the background URL holder.
func NewBackground(store kv.Store) *Background {
	return &Background{kv: store}
}

// Get returns the stored URL, or the empty string when unset.
func (b *Background) Get(ctx context.Context) (string, error) {
	raw, err := b.kv.Get(ctx, backgroundKey)
	if err != nil {
		if kv.IsNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("load background url: %w", err)
	}
	return raw, nil
}

// Set overwrites the stored URL unconditionally; an empty url clears it.
// The URL is not validated for well-formedness.
func (b *Background) Set(ctx context.Context, url string) error {
	if url == "" {
		if _, err := b.kv.Delete(ctx, backgroundKey); err != nil {
			return fmt.Errorf("clear background url: %w", err)
		}
		metrics.RecordBackgroundUpdate()
		return nil
	}
	if err := b.kv.Put(ctx, backgroundKey, url); err != nil {
		return fmt.Errorf("save background url: %w", err)
	}
	metrics.RecordBackgroundUpdate()
	return nil
}
