package plan

import (
	"errors"
	"fmt"
)

// ErrOutdatedFormat marks a stored plan document that predates the current
// schema. Callers surface it distinctly so the client can prompt for
// regeneration instead of choking on the parse.
var ErrOutdatedFormat = errors.New("plan stored in outdated format")

// InvalidInputError is a caller mistake: bad race date, race too soon, race too
// far out. Always a client error.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// MalformedResponseError means the model output could not be salvaged into
// JSON at all. Snippet keeps the offending text for diagnostics.
type MalformedResponseError struct {
	Snippet string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %s", e.Snippet)
}

// SchemaViolationError means the decoded structure broke a hard invariant that
// per-day repair cannot fix, e.g. a week without exactly 7 days.
type SchemaViolationError struct {
	WeekNumber int
	Reason     string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation in week %d: %s", e.WeekNumber, e.Reason)
}

// IncompleteGenerationError means the model returned fewer weeks than the
// computed plan length. MissingWeek is the first week index with no content.
type IncompleteGenerationError struct {
	MissingWeek int
}

func (e *IncompleteGenerationError) Error() string {
	return fmt.Sprintf("incomplete generation: missing week %d", e.MissingWeek)
}

// AssemblyError is an internal invariant broken after repair succeeded. It
// signals a defect in this package, not a user or model problem.
type AssemblyError struct {
	Reason string
}

func (e *AssemblyError) Error() string {
	return "plan assembly failed: " + e.Reason
}
