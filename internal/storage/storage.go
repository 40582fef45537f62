// Package storage defines the interface for ticket document stores.
package storage

import (
	"context"
	"fmt"

	"github.com/untoldecay/tickets/internal/types"
)

// IOError wraps a failure to load or save the ticket document.
type IOError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Store owns the on-disk representation of the ticket document. There is no
// caching between calls: every service operation loads the full document,
// mutates it, and saves it back as one unit.
type Store interface {
	// Load reads the whole document. Fails with *IOError if the file is
	// missing, unreadable, or not valid JSON.
	Load() (*types.Document, error)

	// Save writes the whole document atomically, replacing the previous
	// contents. Fails with *IOError.
	Save(doc *types.Document) error

	// MintID formats the document's id counter into a ticket id and
	// increments the counter. Ids are never reused, even across deletions.
	MintID(doc *types.Document) string

	// Lock acquires an exclusive advisory lock on the document for one
	// load-mutate-save cycle. The returned function releases it.
	Lock(ctx context.Context) (func(), error)

	// Path returns the document file path.
	Path() string
}
