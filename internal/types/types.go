// Package types defines the core data model shared by all tickets packages.
package types

import (
	"strings"
	"time"
)

// CurrentVersion is the document schema version this build reads and writes.
// Older documents are brought forward by internal/migrate before any other
// package touches them.
const CurrentVersion = "0.3.0"

// Status represents the lifecycle state of a ticket.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusClosed     Status = "closed"
)

// IsValid returns true if the status is a known lifecycle state.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// Ticket is a single work item. BlockedBy holds the ids of tickets that must
// be closed before this one is considered ready.
type Ticket struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Projects    []string  `json:"projects,omitempty"`
	BlockedBy   []string  `json:"blockedBy,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SetDefaults applies defaults for fields omitted in serialized form.
func (t *Ticket) SetDefaults() {
	if t.Status == "" {
		t.Status = StatusOpen
	}
}

// HasProject reports case-insensitive membership in the ticket's project list.
func (t *Ticket) HasProject(name string) bool {
	for _, p := range t.Projects {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

// IsBlockedBy reports whether id appears in the ticket's blockedBy list.
func (t *Ticket) IsBlockedBy(id string) bool {
	for _, dep := range t.BlockedBy {
		if dep == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the ticket.
func (t *Ticket) Clone() *Ticket {
	c := *t
	c.Projects = append([]string(nil), t.Projects...)
	c.BlockedBy = append([]string(nil), t.BlockedBy...)
	return &c
}

// Document is the persisted container: the full ticket collection plus the
// id counter. It is always loaded and saved as one unit.
type Document struct {
	Version string             `json:"version,omitempty"`
	Tickets map[string]*Ticket `json:"tickets"`
	NextID  int                `json:"nextId"`
}

// NewDocument returns an empty document at the current schema version.
func NewDocument() *Document {
	return &Document{
		Version: CurrentVersion,
		Tickets: make(map[string]*Ticket),
		NextID:  1,
	}
}

// Clone returns a deep copy of the document. Service operations validate and
// mutate a clone so a failed batch never leaves the loaded snapshot dirty.
func (d *Document) Clone() *Document {
	c := &Document{
		Version: d.Version,
		Tickets: make(map[string]*Ticket, len(d.Tickets)),
		NextID:  d.NextID,
	}
	for id, t := range d.Tickets {
		c.Tickets[id] = t.Clone()
	}
	return c
}

// TicketUpdate is a partial update applied by UpdateTickets. Nil fields are
// left unchanged; non-nil fields replace the stored value wholesale.
type TicketUpdate struct {
	ID          string    `json:"id"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Projects    *[]string `json:"projects,omitempty"`
	BlockedBy   *[]string `json:"blockedBy,omitempty"`
	Status      *Status   `json:"status,omitempty"`
}

// TicketFilter narrows List results. All set fields must match (conjunctive).
type TicketFilter struct {
	Project   string
	Status    Status
	DependsOn string
	Since     *time.Time
	Search    string // fuzzy match against title
}

// TreeNode is one node of the unblock cascade: the tickets that become
// workable once the ticket identified by ID is closed.
type TreeNode struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Unblocks []*TreeNode `json:"unblocks"`
}

// NextTicket is a ready ticket as returned by Next. The blockedBy list is
// omitted; the unblock tree supersedes it.
type NextTicket struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Projects    []string    `json:"projects,omitempty"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Unblocks    []*TreeNode `json:"unblocks"`
}
