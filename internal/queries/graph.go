// Package queries builds derived views over a document snapshot.
package queries

import (
	"sort"

	"github.com/untoldecay/tickets/internal/types"
)

// BuildUnblockTree returns the unblock cascade for a ticket: every non-closed
// ticket directly blocked by it becomes a child node, recursively.
//
// The cycle guard is path-local: each recursive branch gets its own copy of
// the visited set, so a ticket reachable through two different parents (a
// diamond) is expanded independently down each branch, while a latent cycle
// in stored data terminates with an empty child list instead of recursing
// forever. Exponential blowup on pathological diamond-heavy graphs is
// accepted at the target scale of a few thousand tickets.
func BuildUnblockTree(id string, doc *types.Document) *types.TreeNode {
	t, ok := doc.Tickets[id]
	if !ok {
		return nil
	}
	return &types.TreeNode{
		ID:       id,
		Title:    t.Title,
		Unblocks: unblockChildren(id, doc, map[string]bool{id: true}),
	}
}

func unblockChildren(id string, doc *types.Document, path map[string]bool) []*types.TreeNode {
	var children []*types.TreeNode
	for _, depID := range sortedIDs(doc) {
		dependent := doc.Tickets[depID]
		if dependent.Status == types.StatusClosed || !dependent.IsBlockedBy(id) {
			continue
		}
		if path[depID] {
			// Already on this path: stored data contains a cycle.
			// Stop descending rather than erroring.
			continue
		}
		branch := make(map[string]bool, len(path)+1)
		for k := range path {
			branch[k] = true
		}
		branch[depID] = true
		children = append(children, &types.TreeNode{
			ID:       depID,
			Title:    dependent.Title,
			Unblocks: unblockChildren(depID, doc, branch),
		})
	}
	return children
}

// sortedIDs returns ticket ids in ascending order so tree output is stable
// across runs (map iteration order is not).
func sortedIDs(doc *types.Document) []string {
	ids := make([]string, 0, len(doc.Tickets))
	for id := range doc.Tickets {
		ids = append(ids, id)
	}
	// TICKET-%04d ids sort correctly as strings up to 9999.
	sort.Strings(ids)
	return ids
}
