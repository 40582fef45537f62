package jsondoc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/untoldecay/tickets/internal/storage"
	"github.com/untoldecay/tickets/internal/types"
)

func setupTestStore(t *testing.T) *DocStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickets.json")
	store := New(path, time.Second)
	if err := store.Save(types.NewDocument()); err != nil {
		t.Fatalf("saving empty document: %v", err)
	}
	return store
}

func TestLoadSaveRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	doc, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	doc.Tickets["TICKET-0001"] = &types.Ticket{
		ID:          "TICKET-0001",
		Title:       "First",
		Description: "desc",
		Projects:    []string{"Alpha"},
		Status:      types.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	doc.NextID = 2

	if err := store.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	tk, ok := got.Tickets["TICKET-0001"]
	if !ok {
		t.Fatal("ticket missing after round trip")
	}
	if tk.Title != "First" || !tk.CreatedAt.Equal(now) {
		t.Errorf("round trip mismatch: %+v", tk)
	}
	if got.NextID != 2 {
		t.Errorf("NextID = %d, want 2", got.NextID)
	}
	if got.Version != types.CurrentVersion {
		t.Errorf("Version = %q, want %q", got.Version, types.CurrentVersion)
	}
}

func TestSaveIsPrettyPrinted(t *testing.T) {
	store := setupTestStore(t)
	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("reading document: %v", err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("document is not pretty-printed")
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("document missing trailing newline")
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "absent.json"), time.Second)
	_, err := store.Load()
	var ioErr *storage.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Load() error = %v, want *storage.IOError", err)
	}
	if ioErr.Op != "load" {
		t.Errorf("Op = %q, want load", ioErr.Op)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickets.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := New(path, time.Second)
	_, err := store.Load()
	var ioErr *storage.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Load() error = %v, want *storage.IOError", err)
	}
}

func TestMintID(t *testing.T) {
	store := setupTestStore(t)
	doc, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}

	first := store.MintID(doc)
	second := store.MintID(doc)
	if first != "TICKET-0001" {
		t.Errorf("first id = %q, want TICKET-0001", first)
	}
	if second != "TICKET-0002" {
		t.Errorf("second id = %q, want TICKET-0002", second)
	}
	if doc.NextID != 3 {
		t.Errorf("NextID = %d, want 3", doc.NextID)
	}
}

func TestMintIDNotPersistedWithoutSave(t *testing.T) {
	store := setupTestStore(t)
	doc, _ := store.Load()
	store.MintID(doc)

	// Abort without save: the counter on disk must be untouched.
	reloaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.NextID != 1 {
		t.Errorf("NextID = %d after abandoned mint, want 1", reloaded.NextID)
	}
}

func TestLockReleases(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	unlock, err := store.Lock(ctx)
	if err != nil {
		t.Fatalf("first Lock failed: %v", err)
	}
	unlock()

	unlock2, err := store.Lock(ctx)
	if err != nil {
		t.Fatalf("Lock after release failed: %v", err)
	}
	unlock2()
}
