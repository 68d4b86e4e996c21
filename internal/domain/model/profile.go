// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Profile represents a ranked person record shown on the public leaderboard.
// Field names mirror the JSON persisted in the key-value store.
type Profile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
	Contact string `json:"contact"`
	Tags    Tags   `json:"tags"`
	BioMD   string `json:"bio_md"`
	Score   Score  `json:"score"`
}

// Draft carries the fields accepted when creating a profile. Everything is
// optional except Name, which handlers reject when empty; the store still
// falls back to a sentinel name rather than failing.
type Draft struct {
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
	Contact string `json:"contact"`
	Tags    Tags   `json:"tags"`
	BioMD   string `json:"bio_md"`
	Score   Score  `json:"score"`
}

// Patch carries a sparse update: nil fields leave the stored value unchanged.
type Patch struct {
	Name    *string `json:"name"`
	Avatar  *string `json:"avatar"`
	Contact *string `json:"contact"`
	Tags    *Tags   `json:"tags"`
	BioMD   *string `json:"bio_md"`
	Score   *Score  `json:"score"`
}

// Apply merges the patch into p, field by field.
func (patch Patch) Apply(p *Profile) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Avatar != nil {
		p.Avatar = *patch.Avatar
	}
	if patch.Contact != nil {
		p.Contact = *patch.Contact
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	if patch.BioMD != nil {
		p.BioMD = *patch.BioMD
	}
	if patch.Score != nil {
		p.Score = *patch.Score
	}
}

// Tags is an ordered list of string tags. It decodes leniently: a JSON array
// of strings is taken as-is, a single string is wrapped into a one-element
// list, and anything else yields an empty list.
type Tags []string

// UnmarshalJSON implements the lenient tag coercion rule.
func (t *Tags) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*t = Tags{}
		} else {
			*t = Tags{single}
		}
		return nil
	}
	*t = Tags{}
	return nil
}

// MarshalJSON always emits an array, never null.
func (t Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

// Score is a profile's numeric rank value. It decodes from a JSON number or a
// numeric string; anything undecodable yields zero.
type Score float64

// UnmarshalJSON implements the lenient numeric coercion rule.
func (s *Score) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*s = Score(f)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			*s = Score(f)
			return nil
		}
	}
	*s = 0
	return nil
}

// DefaultName is stored when a profile is created without a name.
const DefaultName = "unknown"

const idRandomRange = 10000

// NewID generates a profile id from the current timestamp plus a random
// suffix, keeping collisions unlikely under the store's eventual-consistency
// model.
func NewID() string {
	return fmt.Sprintf("p-%d-%d", time.Now().UnixMilli(), rand.Intn(idRandomRange))
}

// SortByScore orders profiles by score descending, preserving stored order
// between equal scores.
func SortByScore(profiles []Profile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].Score > profiles[j].Score
	})
}
