// Package session persists the search-to-results handoff: exactly one
// subject property paired with the ordered comparables it produced.
package session

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/starboard-re/comps-cli/internal/model"
	"github.com/starboard-re/comps-cli/pkg/comparable"
)

// Storage keys. Both are always written together and read together; a
// reader observing one without the other treats the session as absent.
const (
	keySubject = "subjectProperty"
	keyResults = "searchResults"
)

// Session pairs the submitted subject property with the response it
// produced. Result order is the server-determined rank and is
// preserved verbatim.
type Session struct {
	Subject model.SubjectProperty `json:"subject_property"`
	Results []comparable.Result   `json:"search_results"`
}

// ErrNotFound is returned by Read when no complete session exists.
var ErrNotFound = eris.New("session: not found")

// Store defines the persistence contract for the cross-screen
// handoff. Write replaces any prior session atomically; Read returns
// ErrNotFound unless both halves of the pair are present.
type Store interface {
	Write(ctx context.Context, s Session) error
	Read(ctx context.Context) (*Session, error)
	Clear(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}
