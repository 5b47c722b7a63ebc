// Package session persists the navigation state between runs so the engine
// can restore the last destination and its back stack.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// DefaultProfile is used when no profile name is given.
const DefaultProfile = "default"

const stateFile = "state"

// Entry is one back stack entry.
type Entry struct {
	Destination string `json:"destination"`
}

// State is the persisted navigation state.
type State struct {
	Destination    string    `json:"destination"`
	Master         string    `json:"master,omitempty"`
	DetailRevealed bool      `json:"detail_revealed,omitempty"`
	Orientation    string    `json:"orientation,omitempty"`
	History        []Entry   `json:"history,omitempty"`
	SavedAt        time.Time `json:"saved_at"`
}

// Store is a diskv-backed session store. Each profile keeps its state under
// its own directory.
type Store struct {
	d       *diskv.Diskv
	profile string
}

// Open creates a store rooted at dir.
func Open(dir, profile string) *Store {
	if profile == "" {
		profile = DefaultProfile
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:          dir,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      64 * 1024,
		}),
		profile: profile,
	}
}

// profile-state → <dir>/profile/state
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

func (s *Store) key() string {
	return strings.ReplaceAll(s.profile, "-", "_") + "-" + stateFile
}

// Save writes st, stamping SavedAt.
func (s *Store) Save(st State) error {
	st.SavedAt = time.Now().UTC()
	b, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := s.d.Write(s.key(), b); err != nil {
		return fmt.Errorf("session: write: %w", err)
	}
	return nil
}

// Load reads the saved state. ok is false when nothing was saved.
func (s *Store) Load() (st State, ok bool, err error) {
	b, err := s.d.Read(s.key())
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, fmt.Errorf("session: read: %w", err)
	}
	if err := json.Unmarshal(b, &st); err != nil {
		return State{}, false, fmt.Errorf("session: decode: %w", err)
	}
	return st, true, nil
}

// Clear removes the saved state. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	if !s.d.Has(s.key()) {
		return nil
	}
	if err := s.d.Erase(s.key()); err != nil {
		return fmt.Errorf("session: erase: %w", err)
	}
	return nil
}

// Profiles lists the profiles that have saved state.
func (s *Store) Profiles() []string {
	var out []string
	for key := range s.d.Keys(nil) {
		if profile, ok := strings.CutSuffix(key, "-"+stateFile); ok {
			out = append(out, profile)
		}
	}
	return out
}
