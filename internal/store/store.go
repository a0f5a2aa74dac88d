// Package store persists generated persona records as one JSON file per id.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/agenthands/persona/internal/core/model"
)

var ErrNotFound = errors.New("persona not found")

// validID accepts uuid-like identifiers and rejects anything that could
// escape the directory.
var validID = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// FileStore writes <dir>/<id>.json once per id. Reads go through an
// in-memory cache since records never change after Save.
type FileStore struct {
	dir   string
	cache *cache.Cache
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &FileStore{
		dir:   dir,
		cache: cache.New(30*time.Minute, 10*time.Minute),
	}, nil
}

func (s *FileStore) Dir() string {
	return s.dir
}

// Path is where the record for id lives on disk.
func (s *FileStore) Path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *FileStore) Save(p model.Persona) error {
	if !validID.MatchString(p.ID) {
		return fmt.Errorf("invalid persona id %q", p.ID)
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode persona: %w", err)
	}
	if err := os.WriteFile(s.Path(p.ID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write persona: %w", err)
	}

	s.cache.Set(p.ID, p, cache.DefaultExpiration)
	return nil
}

// Load returns ErrNotFound for unknown or malformed ids.
func (s *FileStore) Load(id string) (model.Persona, error) {
	if !validID.MatchString(id) {
		return model.Persona{}, ErrNotFound
	}
	if v, ok := s.cache.Get(id); ok {
		return v.(model.Persona), nil
	}

	data, err := os.ReadFile(s.Path(id))
	if errors.Is(err, os.ErrNotExist) {
		return model.Persona{}, ErrNotFound
	}
	if err != nil {
		return model.Persona{}, fmt.Errorf("failed to read persona: %w", err)
	}

	var p model.Persona
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Persona{}, fmt.Errorf("failed to decode persona %s: %w", id, err)
	}

	s.cache.Set(id, p, cache.DefaultExpiration)
	return p, nil
}

// Raw returns the stored bytes for id exactly as written.
func (s *FileStore) Raw(id string) ([]byte, error) {
	if !validID.MatchString(id) {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(s.Path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read persona: %w", err)
	}
	return data, nil
}

// Wipe deletes every stored record and the directory itself.
func (s *FileStore) Wipe() error {
	s.cache.Flush()
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to wipe upload dir: %w", err)
	}
	return nil
}
