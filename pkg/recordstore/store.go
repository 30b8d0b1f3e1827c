// Package recordstore implements the Article Record Store: one JSON file
// per article ID under a directory, with atomic saves.
package recordstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
	"github.com/Gyro1978/Dacoola-sub001/pkg/fsutil"
)

// ErrNotFound is returned by Load when no record exists for the given ID.
var ErrNotFound = errors.New("article record not found")

// Store is a directory of {id}.json files, one per ArticleRecord.
type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating it if necessary.
func New(dir string) (*Store, error) {
	if err := fsutil.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("creating record store directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) pathFor(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Load reads the record for id.
func (s *Store) Load(id string) (*article.Record, error) {
	raw, err := os.ReadFile(s.pathFor(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("reading record %s: %w", id, err)
	}
	var rec article.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decoding record %s: %w", id, err)
	}
	return &rec, nil
}

// Save atomically writes rec to its {id}.json file.
func (s *Store) Save(rec *article.Record) error {
	if rec.ID == "" {
		return errors.New("cannot save a record with an empty ID")
	}
	return fsutil.WriteJSONAtomic(s.pathFor(rec.ID), rec, 0o644)
}

// Delete removes the record file for id. Deleting a record that does not
// exist is not an error.
func (s *Store) Delete(id string) error {
	err := os.Remove(s.pathFor(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting record %s: %w", id, err)
	}
	return nil
}

// ListIDs returns every article ID currently present in the store.
func (s *Store) ListIDs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing record store %s: %w", s.dir, err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".json") && !strings.HasPrefix(name, ".tmp-") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}
	return ids, nil
}
