// Package migrate brings an on-disk ticket document forward to the current
// schema version. It runs once at startup, strictly before the ticket
// service accepts any call: a document at the wrong version is unsafe to
// operate on, so migration failures are fatal to the caller.
package migrate

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"golang.org/x/mod/semver"

	"github.com/untoldecay/tickets/internal/debug"
	"github.com/untoldecay/tickets/internal/types"
)

// Known schema versions, oldest first.
const (
	Version010 = "0.1.0" // tickets carry a "dependencies" array, no version stamp
	Version020 = "0.2.0" // "dependencies" renamed to "blockedBy", version stamped
	Version030 = "0.3.0" // single "project" string replaced by "projects" list
)

// Step is one declared version-to-version transform. Transform rewrites the
// document file at path in place, already re-versioned to To.
type Step struct {
	From      string
	To        string
	Transform func(path string) error
}

// PathNotFoundError means no sequence of catalog steps connects the detected
// version to the current one. Fatal: the process cannot start.
type PathNotFoundError struct {
	From string
	To   string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("no migration path from %s to %s", e.From, e.To)
}

// StepError means a transform step itself failed. The document may be left
// at the pre-step state if the step failed before writing, or inconsistent
// if it failed mid-write; there is no multi-step rollback.
type StepError struct {
	From string
	To   string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("migration step %s -> %s: %v", e.From, e.To, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// DetectVersion determines the schema version of the document at path.
// Priority: an explicit version field is trusted verbatim; otherwise the
// first ticket is sniffed structurally ("dependencies" implies the oldest
// format, "blockedBy" the version that introduced it); anything else,
// including a document with zero tickets, defaults to the oldest known
// version. The zero-ticket default is a known ambiguity — harmless, because
// every migration step is a no-op on an empty ticket map.
func DetectVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}

	var doc struct {
		Version string                     `json:"version"`
		Tickets map[string]json.RawMessage `json:"tickets"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("corrupt document %s: %w", path, err)
	}

	if doc.Version != "" {
		return doc.Version, nil
	}

	for _, raw := range sortedRaw(doc.Tickets) {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		if _, ok := fields["dependencies"]; ok {
			return Version010, nil
		}
		if _, ok := fields["blockedBy"]; ok {
			return Version020, nil
		}
		break
	}
	return Version010, nil
}

// sortedRaw returns ticket payloads in id order so structural sniffing is
// deterministic across runs.
func sortedRaw(tickets map[string]json.RawMessage) []json.RawMessage {
	ids := make([]string, 0, len(tickets))
	for id := range tickets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		out = append(out, tickets[id])
	}
	return out
}

// Plan finds the shortest sequence of catalog steps from one version to
// another using breadth-first search over the version graph.
func Plan(from, to string, catalog []Step) ([]Step, error) {
	if from == to {
		return nil, nil
	}

	edges := make(map[string][]Step)
	for _, s := range catalog {
		edges[s.From] = append(edges[s.From], s)
	}
	// Deterministic expansion order: lowest target version first.
	for _, out := range edges {
		sort.Slice(out, func(i, j int) bool {
			return semver.Compare("v"+out[i].To, "v"+out[j].To) < 0
		})
	}

	type visit struct {
		version string
		path    []Step
	}
	queue := []visit{{version: from}}
	seen := map[string]bool{from: true}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, s := range edges[cur.version] {
			if seen[s.To] {
				continue
			}
			path := append(append([]Step(nil), cur.path...), s)
			if s.To == to {
				return path, nil
			}
			seen[s.To] = true
			queue = append(queue, visit{version: s.To, path: path})
		}
	}
	return nil, &PathNotFoundError{From: from, To: to}
}

// Status describes where a document stands relative to the current schema.
type Status struct {
	Detected string
	Current  string
	Steps    int
	Ahead    bool // document version is newer than this build understands
}

// Check reports the document's migration status without writing anything.
func Check(path string) (*Status, error) {
	detected, err := DetectVersion(path)
	if err != nil {
		return nil, err
	}
	st := &Status{Detected: detected, Current: types.CurrentVersion}
	if detected == types.CurrentVersion {
		return st, nil
	}
	if semver.IsValid("v"+detected) && semver.Compare("v"+detected, "v"+types.CurrentVersion) > 0 {
		st.Ahead = true
		return st, nil
	}
	plan, err := Plan(detected, types.CurrentVersion, Catalog())
	if err != nil {
		return nil, err
	}
	st.Steps = len(plan)
	return st, nil
}

// Run migrates the document at path to the current schema version. Already
// current is a no-op: no write, no backup. Each step first copies the whole
// file to a backup suffixed with the step's source version, then transforms
// the original in place. Steps execute strictly in path order and are not
// retried.
func Run(path string) error {
	detected, err := DetectVersion(path)
	if err != nil {
		return err
	}
	if detected == types.CurrentVersion {
		debug.Logf("document %s already at version %s", path, detected)
		return nil
	}

	plan, err := Plan(detected, types.CurrentVersion, Catalog())
	if err != nil {
		return err
	}

	debug.Logf("migrating %s: %s -> %s in %d step(s)", path, detected, types.CurrentVersion, len(plan))
	for _, step := range plan {
		if err := writeBackup(path, step.From); err != nil {
			return &StepError{From: step.From, To: step.To, Err: err}
		}
		if err := step.Transform(path); err != nil {
			return &StepError{From: step.From, To: step.To, Err: err}
		}
		debug.Logf("applied migration %s -> %s", step.From, step.To)
	}
	return nil
}

// BackupPath returns where Run copies the document before transforming it
// away from the given version.
func BackupPath(path, fromVersion string) string {
	return path + ".backup-" + fromVersion
}

func writeBackup(path, fromVersion string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading document for backup: %w", err)
	}
	if err := os.WriteFile(BackupPath(path, fromVersion), data, 0o644); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}
