// Package repository persists the profile collection and the background URL
// in the key-value store. The whole collection is serialized under a single
// key and every mutation is a read-modify-write of that blob; with a single
// admin actor the resulting last-writer-wins behavior is accepted.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lm-xiao-fen/my-inft-repo/internal/adapters/kv"
	"github.com/lm-xiao-fen/my-inft-repo/internal/domain/model"
	"github.com/lm-xiao-fen/my-inft-repo/pkg/logger"
	"github.com/lm-xiao-fen/my-inft-repo/pkg/metrics"
)

const profilesKey = "profiles"

// Store provides read/write access to the profile collection.
type Store struct {
	kv  kv.Store
	log logger.Logger
}

// New creates a profile store over the given key-value store.
func New(store kv.Store, opts ...Option) *Store {
	s := &Store{kv: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the full collection in stored order. A missing or undecodable
// blob yields an empty collection, never an error.
func (s *Store) List(ctx context.Context) ([]model.Profile, error) {
	raw, err := s.kv.Get(ctx, profilesKey)
	if err != nil {
		if kv.IsNotFound(err) {
			return []model.Profile{}, nil
		}
		return nil, fmt.Errorf("load profiles: %w", err)
	}

	var profiles []model.Profile
	if err := json.Unmarshal([]byte(raw), &profiles); err != nil {
		// Lenient decode: corrupt state reads as empty rather than failing.
		if s.log != nil {
			s.log.Warn(ctx, "stored profile collection undecodable, treating as empty", logger.Error(err))
		}
		return []model.Profile{}, nil
	}
	if profiles == nil {
		profiles = []model.Profile{}
	}
	return profiles, nil
}

// Create constructs a new record from the draft, applies defaults, appends it
// to the collection and persists the whole collection.
func (s *Store) Create(ctx context.Context, draft model.Draft) (model.Profile, error) {
	profiles, err := s.List(ctx)
	if err != nil {
		return model.Profile{}, err
	}

	record := model.Profile{
		ID:      model.NewID(),
		Name:    draft.Name,
		Avatar:  draft.Avatar,
		Contact: draft.Contact,
		Tags:    draft.Tags,
		BioMD:   draft.BioMD,
		Score:   draft.Score,
	}
	if record.Name == "" {
		record.Name = model.DefaultName
	}
	if record.Tags == nil {
		record.Tags = model.Tags{}
	}

	profiles = append(profiles, record)
	if err := s.save(ctx, profiles); err != nil {
		return model.Profile{}, err
	}

	metrics.RecordProfileMutation("create")
	metrics.UpdateProfileCount(len(profiles))
	return record, nil
}

// Update locates the record by id, merges the provided fields over it and
// persists the whole collection. Returns ErrNotFound for an unknown id.
func (s *Store) Update(ctx context.Context, id string, patch model.Patch) (model.Profile, error) {
	profiles, err := s.List(ctx)
	if err != nil {
		return model.Profile{}, err
	}

	idx := indexByID(profiles, id)
	if idx < 0 {
		return model.Profile{}, ErrNotFound
	}

	patch.Apply(&profiles[idx])
	if err := s.save(ctx, profiles); err != nil {
		return model.Profile{}, err
	}

	metrics.RecordProfileMutation("update")
	return profiles[idx], nil
}

// Delete removes the first record matching id and persists the remainder.
// Returns ErrNotFound for an unknown id.
func (s *Store) Delete(ctx context.Context, id string) error {
	profiles, err := s.List(ctx)
	if err != nil {
		return err
	}

	idx := indexByID(profiles, id)
	if idx < 0 {
		return ErrNotFound
	}

	profiles = append(profiles[:idx], profiles[idx+1:]...)
	if err := s.save(ctx, profiles); err != nil {
		return err
	}

	metrics.RecordProfileMutation("delete")
	metrics.UpdateProfileCount(len(profiles))
	return nil
}

// Count returns the number of profiles currently stored.
func (s *Store) Count(ctx context.Context) int {
	profiles, err := s.List(ctx)
	if err != nil {
		return 0
	}
	return len(profiles)
}

func (s *Store) save(ctx context.Context, profiles []model.Profile) error {
	if profiles == nil {
		profiles = []model.Profile{}
	}
	data, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}
	if err := s.kv.Put(ctx, profilesKey, string(data)); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}
	return nil
}

func indexByID(profiles []model.Profile, id string) int {
	for i := range profiles {
		if profiles[i].ID == id {
			return i
		}
	}
	return -1
}
