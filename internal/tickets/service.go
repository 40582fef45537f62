// Package tickets implements the ticket service: every public operation is
// one load → validate → mutate → save cycle over the whole document, guarded
// by the store's advisory lock. Validation runs strictly before any write,
// so a failed batch leaves the persisted document untouched.
package tickets

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/untoldecay/tickets/internal/queries"
	"github.com/untoldecay/tickets/internal/storage"
	"github.com/untoldecay/tickets/internal/types"
	"github.com/untoldecay/tickets/internal/utils"
	"github.com/untoldecay/tickets/internal/validation"
)

// NotFoundError reports a referenced ticket id that does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("ticket %s not found", e.ID)
}

// CreateInput is the caller-supplied part of a new ticket.
type CreateInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Projects    []string `json:"projects,omitempty"`
	BlockedBy   []string `json:"blockedBy,omitempty"`
}

// Service orchestrates the store, the dependency validator, and the unblock
// tree builder.
type Service struct {
	store storage.Store
	now   func() time.Time
}

// NewService creates a ticket service on top of store.
func NewService(store storage.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Create validates and persists a single new ticket.
func (s *Service) Create(ctx context.Context, in CreateInput) (*types.Ticket, error) {
	created, err := s.CreateBatch(ctx, []CreateInput{in})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// CreateBatch creates all items or none. Pass 1 validates every item against
// the original snapshot — items do not exist yet, so later items cannot name
// earlier items in the same batch as dependencies. Pass 2 mints ids and
// cycle-checks each new ticket as the batch accumulates.
func (s *Service) CreateBatch(ctx context.Context, items []CreateInput) ([]*types.Ticket, error) {
	unlock, err := s.store.Lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	for _, in := range items {
		if in.Title == "" {
			return nil, &validation.ValidationError{Reason: validation.ReasonMissingField, ID: "title"}
		}
		if in.Description == "" {
			return nil, &validation.ValidationError{Reason: validation.ReasonMissingField, ID: "description"}
		}
		if err := validation.ValidateDeps(in.BlockedBy, doc, ""); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	created := make([]*types.Ticket, 0, len(items))
	for _, in := range items {
		id := s.store.MintID(doc)
		if validation.HasCycle(id, in.BlockedBy, doc) {
			return nil, &validation.CycleError{ID: id}
		}
		t := &types.Ticket{
			ID:          id,
			Title:       in.Title,
			Description: in.Description,
			Projects:    append([]string(nil), in.Projects...),
			BlockedBy:   append([]string(nil), in.BlockedBy...),
			Status:      types.StatusOpen,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		doc.Tickets[id] = t
		created = append(created, t)
	}

	if err := s.store.Save(doc); err != nil {
		return nil, err
	}
	return created, nil
}

// Get returns the ticket with the given id.
func (s *Service) Get(ctx context.Context, id string) (*types.Ticket, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	t, ok := doc.Tickets[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return t.Clone(), nil
}

// Update applies a single partial update.
func (s *Service) Update(ctx context.Context, u types.TicketUpdate) (*types.Ticket, error) {
	updated, err := s.UpdateBatch(ctx, []types.TicketUpdate{u})
	if err != nil {
		return nil, err
	}
	return updated[0], nil
}

// UpdateBatch applies all updates or none, in three strict phases covering
// the whole batch: every referenced id must exist, then every dependency and
// cycle constraint must hold, and only then is any field changed.
func (s *Service) UpdateBatch(ctx context.Context, updates []types.TicketUpdate) ([]*types.Ticket, error) {
	unlock, err := s.store.Lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	// Phase 1: existence.
	for _, u := range updates {
		if _, ok := doc.Tickets[u.ID]; !ok {
			return nil, &NotFoundError{ID: u.ID}
		}
	}

	// Phase 2: field and graph constraints. Cycle checks run against a
	// working copy carrying every edge change in the batch, so updates that
	// are only cyclic in combination are also rejected.
	working := doc.Clone()
	for _, u := range updates {
		if u.Title != nil && *u.Title == "" {
			return nil, &validation.ValidationError{Reason: validation.ReasonMissingField, ID: "title"}
		}
		if u.Description != nil && *u.Description == "" {
			return nil, &validation.ValidationError{Reason: validation.ReasonMissingField, ID: "description"}
		}
		if u.Status != nil && !u.Status.IsValid() {
			return nil, &validation.ValidationError{Reason: validation.ReasonInvalidStatus, ID: string(*u.Status)}
		}
		if u.BlockedBy != nil {
			if err := validation.ValidateDeps(*u.BlockedBy, doc, u.ID); err != nil {
				return nil, err
			}
			working.Tickets[u.ID].BlockedBy = append([]string(nil), (*u.BlockedBy)...)
		}
	}
	for _, u := range updates {
		if u.BlockedBy == nil {
			continue
		}
		if validation.HasCycle(u.ID, *u.BlockedBy, working) {
			return nil, &validation.CycleError{ID: u.ID}
		}
	}

	// Phase 3: apply.
	now := s.now().UTC()
	updated := make([]*types.Ticket, 0, len(updates))
	for _, u := range updates {
		t := doc.Tickets[u.ID]
		if u.Title != nil {
			t.Title = *u.Title
		}
		if u.Description != nil {
			t.Description = *u.Description
		}
		if u.Projects != nil {
			t.Projects = append([]string(nil), (*u.Projects)...)
		}
		if u.BlockedBy != nil {
			t.BlockedBy = append([]string(nil), (*u.BlockedBy)...)
		}
		if u.Status != nil {
			t.Status = *u.Status
		}
		t.UpdatedAt = now
		updated = append(updated, t.Clone())
	}

	if err := s.store.Save(doc); err != nil {
		return nil, err
	}
	return updated, nil
}

// Close marks a ticket closed.
func (s *Service) Close(ctx context.Context, id string) (*types.Ticket, error) {
	status := types.StatusClosed
	return s.Update(ctx, types.TicketUpdate{ID: id, Status: &status})
}

// Delete removes a ticket and strips its id from every other ticket's
// blockedBy list, as one persisted write. Dangling-reference cleanup is
// automatic; dependents are otherwise untouched.
func (s *Service) Delete(ctx context.Context, id string) error {
	unlock, err := s.store.Lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	doc, err := s.store.Load()
	if err != nil {
		return err
	}
	if _, ok := doc.Tickets[id]; !ok {
		return &NotFoundError{ID: id}
	}

	delete(doc.Tickets, id)
	for _, t := range doc.Tickets {
		t.BlockedBy = stripID(t.BlockedBy, id)
	}

	return s.store.Save(doc)
}

func stripID(ids []string, id string) []string {
	out := ids[:0]
	for _, dep := range ids {
		if dep != id {
			out = append(out, dep)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// List returns tickets matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter types.TicketFilter) ([]*types.Ticket, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	var out []*types.Ticket
	for _, t := range doc.Tickets {
		if !matches(t, filter) {
			continue
		}
		out = append(out, t.Clone())
	}
	sortNewestFirst(out)
	return out, nil
}

func matches(t *types.Ticket, f types.TicketFilter) bool {
	if f.Project != "" && !t.HasProject(f.Project) {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.DependsOn != "" && !t.IsBlockedBy(f.DependsOn) {
		return false
	}
	if f.Since != nil && t.CreatedAt.Before(*f.Since) {
		return false
	}
	if f.Search != "" && !utils.FuzzyMatch(f.Search, t.Title) {
		return false
	}
	return true
}

// Next returns the ready tickets: not closed, with an empty blockedBy or
// every referenced ticket closed. A dangling reference is never ready, since
// it can never resolve to closed. Each result carries its unblock tree and
// omits the blockedBy list.
func (s *Service) Next(ctx context.Context, project string) ([]*types.NextTicket, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	var ready []*types.Ticket
	for _, t := range doc.Tickets {
		if t.Status == types.StatusClosed {
			continue
		}
		if project != "" && !t.HasProject(project) {
			continue
		}
		if !isReady(t, doc) {
			continue
		}
		ready = append(ready, t)
	}
	sortNewestFirst(ready)

	out := make([]*types.NextTicket, 0, len(ready))
	for _, t := range ready {
		node := queries.BuildUnblockTree(t.ID, doc)
		out = append(out, &types.NextTicket{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Projects:    append([]string(nil), t.Projects...),
			Status:      t.Status,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
			Unblocks:    node.Unblocks,
		})
	}
	return out, nil
}

func isReady(t *types.Ticket, doc *types.Document) bool {
	for _, dep := range t.BlockedBy {
		blocker, ok := doc.Tickets[dep]
		if !ok || blocker.Status != types.StatusClosed {
			return false
		}
	}
	return true
}

func sortNewestFirst(ts []*types.Ticket) {
	sort.SliceStable(ts, func(i, j int) bool {
		if !ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
			return ts[i].CreatedAt.After(ts[j].CreatedAt)
		}
		// Same instant (batch creation): later-minted id first.
		return ts[i].ID > ts[j].ID
	})
}
