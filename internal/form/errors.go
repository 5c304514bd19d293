package form

import (
	"strings"

	"github.com/starboard-re/comps-cli/internal/model"
)

// ValidationError reports the draft fields that blocked submission.
// No request was sent and no persisted state changed.
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid subject property:")
	for _, f := range e.Fields {
		b.WriteString(" ")
		b.WriteString(f.Field)
		b.WriteString(" (")
		b.WriteString(f.Reason)
		b.WriteString(")")
	}
	return b.String()
}

// SearchFailedError wraps a transport failure or non-success response
// from the comparable-search service. The prior session, if any, is
// untouched.
type SearchFailedError struct {
	Err error
}

func (e *SearchFailedError) Error() string {
	return "search failed: " + e.Err.Error()
}

func (e *SearchFailedError) Unwrap() error {
	return e.Err
}
