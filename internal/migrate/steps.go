package migrate

import (
	"encoding/json"
	"fmt"
	"os"
)

// Catalog returns the declared migration steps. The catalog is an explicit
// version graph built at startup; adding a schema version means declaring
// its step here.
func Catalog() []Step {
	return []Step{
		{From: Version010, To: Version020, Transform: migrateRenameDependencies},
		{From: Version020, To: Version030, Transform: migrateProjectsList},
	}
}

// rawDocument is the version-agnostic shape transforms work on. Steps edit
// raw JSON rather than typed structs so each one can read its source
// version's fields without the current types package knowing about them.
type rawDocument struct {
	Version string                                `json:"version,omitempty"`
	Tickets map[string]map[string]json.RawMessage `json:"tickets"`
	NextID  int                                   `json:"nextId"`
}

func readRaw(path string) (*rawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("corrupt document: %w", err)
	}
	if doc.Tickets == nil {
		doc.Tickets = make(map[string]map[string]json.RawMessage)
	}
	return &doc, nil
}

func writeRaw(path string, doc *rawDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// migrateRenameDependencies moves every ticket's "dependencies" array to
// "blockedBy" and stamps the document version.
func migrateRenameDependencies(path string) error {
	doc, err := readRaw(path)
	if err != nil {
		return err
	}
	for _, fields := range doc.Tickets {
		if deps, ok := fields["dependencies"]; ok {
			fields["blockedBy"] = deps
			delete(fields, "dependencies")
		}
	}
	doc.Version = Version020
	return writeRaw(path, doc)
}

// migrateProjectsList replaces the single "project" string with a "projects"
// list. Tickets that already carry a projects list pass through unchanged,
// so re-running on half-migrated data is safe.
func migrateProjectsList(path string) error {
	doc, err := readRaw(path)
	if err != nil {
		return err
	}
	for _, fields := range doc.Tickets {
		if _, ok := fields["projects"]; ok {
			delete(fields, "project")
			continue
		}
		raw, ok := fields["project"]
		if !ok {
			continue
		}
		var project string
		if err := json.Unmarshal(raw, &project); err != nil {
			return fmt.Errorf("invalid project field: %w", err)
		}
		delete(fields, "project")
		if project != "" {
			list, err := json.Marshal([]string{project})
			if err != nil {
				return err
			}
			fields["projects"] = list
		}
	}
	doc.Version = Version030
	return writeRaw(path, doc)
}
