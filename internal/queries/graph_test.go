package queries

import (
	"testing"

	"github.com/untoldecay/tickets/internal/types"
)

func buildDoc(t *testing.T, tickets ...*types.Ticket) *types.Document {
	t.Helper()
	doc := types.NewDocument()
	for _, tk := range tickets {
		tk.SetDefaults()
		doc.Tickets[tk.ID] = tk
	}
	return doc
}

func TestBuildUnblockTree(t *testing.T) {
	// A <- B <- C: closing A unblocks B, which unblocks C.
	doc := buildDoc(t,
		&types.Ticket{ID: "TICKET-0001", Title: "A"},
		&types.Ticket{ID: "TICKET-0002", Title: "B", BlockedBy: []string{"TICKET-0001"}},
		&types.Ticket{ID: "TICKET-0003", Title: "C", BlockedBy: []string{"TICKET-0002"}},
	)

	tree := BuildUnblockTree("TICKET-0001", doc)
	if tree == nil {
		t.Fatal("BuildUnblockTree returned nil")
	}
	if tree.ID != "TICKET-0001" {
		t.Errorf("root = %s, want TICKET-0001", tree.ID)
	}
	if len(tree.Unblocks) != 1 || tree.Unblocks[0].ID != "TICKET-0002" {
		t.Fatalf("root children = %+v, want [TICKET-0002]", tree.Unblocks)
	}
	b := tree.Unblocks[0]
	if len(b.Unblocks) != 1 || b.Unblocks[0].ID != "TICKET-0003" {
		t.Fatalf("B children = %+v, want [TICKET-0003]", b.Unblocks)
	}
}

func TestBuildUnblockTreeUnknownID(t *testing.T) {
	doc := buildDoc(t)
	if tree := BuildUnblockTree("TICKET-0099", doc); tree != nil {
		t.Errorf("expected nil tree for unknown id, got %+v", tree)
	}
}

func TestBuildUnblockTreeExcludesClosed(t *testing.T) {
	doc := buildDoc(t,
		&types.Ticket{ID: "TICKET-0001", Title: "A"},
		&types.Ticket{ID: "TICKET-0002", Title: "B", Status: types.StatusClosed, BlockedBy: []string{"TICKET-0001"}},
		&types.Ticket{ID: "TICKET-0003", Title: "C", BlockedBy: []string{"TICKET-0002"}},
	)

	tree := BuildUnblockTree("TICKET-0001", doc)
	// B is closed: not a node, and C is not reachable through it.
	if len(tree.Unblocks) != 0 {
		t.Errorf("children = %+v, want none (closed tickets are excluded entirely)", tree.Unblocks)
	}
}

func TestBuildUnblockTreeDiamond(t *testing.T) {
	// D is blocked by both B and C, which are blocked by A. D must appear
	// under each branch independently (the tree is not deduplicated).
	doc := buildDoc(t,
		&types.Ticket{ID: "TICKET-0001", Title: "A"},
		&types.Ticket{ID: "TICKET-0002", Title: "B", BlockedBy: []string{"TICKET-0001"}},
		&types.Ticket{ID: "TICKET-0003", Title: "C", BlockedBy: []string{"TICKET-0001"}},
		&types.Ticket{ID: "TICKET-0004", Title: "D", BlockedBy: []string{"TICKET-0002", "TICKET-0003"}},
	)

	tree := BuildUnblockTree("TICKET-0001", doc)
	if len(tree.Unblocks) != 2 {
		t.Fatalf("root children = %d, want 2", len(tree.Unblocks))
	}
	for _, branch := range tree.Unblocks {
		if len(branch.Unblocks) != 1 || branch.Unblocks[0].ID != "TICKET-0004" {
			t.Errorf("branch %s children = %+v, want [TICKET-0004]", branch.ID, branch.Unblocks)
		}
	}
}

func TestBuildUnblockTreeTerminatesOnStoredCycle(t *testing.T) {
	// Latent cycle in stored data (e.g. imported legacy documents) must not
	// recurse forever.
	doc := buildDoc(t,
		&types.Ticket{ID: "TICKET-0001", Title: "A", BlockedBy: []string{"TICKET-0002"}},
		&types.Ticket{ID: "TICKET-0002", Title: "B", BlockedBy: []string{"TICKET-0001"}},
	)

	tree := BuildUnblockTree("TICKET-0001", doc)
	if tree == nil {
		t.Fatal("BuildUnblockTree returned nil")
	}
	if len(tree.Unblocks) != 1 || tree.Unblocks[0].ID != "TICKET-0002" {
		t.Fatalf("root children = %+v, want [TICKET-0002]", tree.Unblocks)
	}
	// The cycle back to A stops: B has no children.
	if len(tree.Unblocks[0].Unblocks) != 0 {
		t.Errorf("cycle not cut: B children = %+v", tree.Unblocks[0].Unblocks)
	}
}

func TestBuildUnblockTreeStableOrder(t *testing.T) {
	doc := buildDoc(t,
		&types.Ticket{ID: "TICKET-0001", Title: "A"},
		&types.Ticket{ID: "TICKET-0003", Title: "C", BlockedBy: []string{"TICKET-0001"}},
		&types.Ticket{ID: "TICKET-0002", Title: "B", BlockedBy: []string{"TICKET-0001"}},
	)

	tree := BuildUnblockTree("TICKET-0001", doc)
	if len(tree.Unblocks) != 2 {
		t.Fatalf("children = %d, want 2", len(tree.Unblocks))
	}
	if tree.Unblocks[0].ID != "TICKET-0002" || tree.Unblocks[1].ID != "TICKET-0003" {
		t.Errorf("children order = [%s %s], want [TICKET-0002 TICKET-0003]",
			tree.Unblocks[0].ID, tree.Unblocks[1].ID)
	}
}
