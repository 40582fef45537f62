// Package validation provides pure dependency checks over a document
// snapshot: existence, self-reference, and cycle detection. All checks run
// against a hypothetical graph state (as if the candidate edges were already
// committed), so callers validate strictly before any write.
package validation

import (
	"github.com/untoldecay/tickets/internal/types"
)

// ValidateDeps checks that every id in ids exists in the document and that
// none of them equals excludeID. Pass the ticket's own id as excludeID to
// reject self-dependencies; pass "" when the ticket does not exist yet.
func ValidateDeps(ids []string, doc *types.Document, excludeID string) error {
	for _, id := range ids {
		if excludeID != "" && id == excludeID {
			return &ValidationError{Reason: ReasonSelfDependency, ID: id}
		}
		if _, ok := doc.Tickets[id]; !ok {
			return &ValidationError{Reason: ReasonMissingDependency, ID: id}
		}
	}
	return nil
}

// DFS colors for cycle detection.
const (
	unvisited = iota // not yet reached
	visiting         // on the current DFS path
	done             // fully processed, known cycle-free
)

// HasCycle reports whether giving candidateID the edges candidateBlockedBy
// would create a cycle. For every other ticket the stored blockedBy edges
// apply; for candidateID the candidate edges override any stored value, so
// the same check serves both create (ticket not stored yet) and update
// (ticket stored with old edges). O(V+E) per call.
func HasCycle(candidateID string, candidateBlockedBy []string, doc *types.Document) bool {
	edges := func(id string) []string {
		if id == candidateID {
			return candidateBlockedBy
		}
		if t, ok := doc.Tickets[id]; ok {
			return t.BlockedBy
		}
		return nil
	}

	colors := make(map[string]int, len(doc.Tickets)+1)

	var visit func(id string) bool
	visit = func(id string) bool {
		colors[id] = visiting
		for _, dep := range edges(id) {
			switch colors[dep] {
			case visiting:
				return true
			case unvisited:
				if visit(dep) {
					return true
				}
			}
		}
		colors[id] = done
		return false
	}

	return visit(candidateID)
}
