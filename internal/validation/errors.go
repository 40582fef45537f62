package validation

import "fmt"

// Validation failure reasons.
const (
	ReasonSelfDependency    = "self-dependency"
	ReasonMissingDependency = "missing-dependency"
	ReasonMissingField      = "missing-field"
	ReasonInvalidStatus     = "invalid-status"
)

// ValidationError reports malformed input to a mutating operation. It is
// always surfaced to the caller before any write happens.
type ValidationError struct {
	Reason string
	ID     string // offending id or field name, when applicable
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.ID)
}

// CycleError reports that a candidate edge set would create a cycle in the
// blocked-by graph. Distinct from ValidationError because it requires
// graph-wide reasoning rather than a single-field check.
type CycleError struct {
	ID string // ticket whose candidate edges close the cycle
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency involving %s", e.ID)
}
