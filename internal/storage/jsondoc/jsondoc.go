// Package jsondoc implements storage.Store on a single pretty-printed JSON
// file. The whole document is read and rewritten on every operation; an
// advisory flock serializes writers sharing the same path.
package jsondoc

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/untoldecay/tickets/internal/storage"
	"github.com/untoldecay/tickets/internal/types"
)

const lockRetryInterval = 50 * time.Millisecond

// DocStore is a storage.Store backed by one JSON document file.
type DocStore struct {
	path        string
	lockTimeout time.Duration
}

var _ storage.Store = (*DocStore)(nil)

// New creates a store for the document at path. lockTimeout bounds how long
// Lock waits for a competing writer before giving up.
func New(path string, lockTimeout time.Duration) *DocStore {
	if lockTimeout <= 0 {
		lockTimeout = 30 * time.Second
	}
	return &DocStore{path: path, lockTimeout: lockTimeout}
}

// Path returns the document file path.
func (s *DocStore) Path() string { return s.path }

// Load reads and decodes the full document.
func (s *DocStore) Load() (*types.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &storage.IOError{Op: "load", Path: s.path, Err: err}
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &storage.IOError{Op: "load", Path: s.path, Err: fmt.Errorf("corrupt document: %w", err)}
	}

	if doc.Tickets == nil {
		doc.Tickets = make(map[string]*types.Ticket)
	}
	if doc.NextID < 1 {
		doc.NextID = 1
	}
	for _, t := range doc.Tickets {
		t.SetDefaults()
	}
	return &doc, nil
}

// Save encodes the document and replaces the file contents atomically via a
// temp file in the same directory plus rename.
func (s *DocStore) Save(doc *types.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &storage.IOError{Op: "save", Path: s.path, Err: err}
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tickets-*.json")
	if err != nil {
		return &storage.IOError{Op: "save", Path: s.path, Err: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &storage.IOError{Op: "save", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &storage.IOError{Op: "save", Path: s.path, Err: err}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return &storage.IOError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// MintID formats the next ticket id and advances the counter. The counter
// only persists when the caller saves the document, so a validation failure
// before save never burns an id.
func (s *DocStore) MintID(doc *types.Document) string {
	id := fmt.Sprintf("TICKET-%04d", doc.NextID)
	doc.NextID++
	return id
}

// Lock acquires an exclusive advisory lock next to the document. Two
// processes sharing the path serialize their load-mutate-save cycles instead
// of silently losing one writer's changes.
func (s *DocStore) Lock(ctx context.Context) (func(), error) {
	lockPath := s.path + ".lock"
	lock := flock.New(lockPath)

	ctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	locked, err := lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("acquiring document lock %s: %w", lockPath, err)
	}
	if !locked {
		cancel()
		return nil, fmt.Errorf("document %s is locked by another process", s.path)
	}
	return func() {
		_ = lock.Unlock()
		cancel()
	}, nil
}
