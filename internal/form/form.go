// Package form holds the search-form state machine: field updates,
// submission preconditions, the single-outstanding-search guard, and
// the handoff that creates a new search session.
package form

import (
	"context"
	"strconv"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/starboard-re/comps-cli/internal/model"
	"github.com/starboard-re/comps-cli/internal/session"
	"github.com/starboard-re/comps-cli/pkg/comparable"
)

// Field names accepted by UpdateField.
const (
	FieldLatitude       = "latitude"
	FieldLongitude      = "longitude"
	FieldAddress        = "address"
	FieldSquareFeet     = "square_feet"
	FieldYearBuilt      = "year_built"
	FieldZoning         = "zoning"
	FieldNumComparables = "num_comparables"
)

// ErrSearchInFlight is returned when Submit is called while a prior
// search is still outstanding. At most one search per form instance.
var ErrSearchInFlight = eris.New("form: search already in flight")

// Form collects a subject-property draft and submits it. It is the
// only component that creates or overwrites a search session.
type Form struct {
	mu        sync.Mutex
	searching bool
	draft     model.SubjectProperty

	client comparable.Client
	store  session.Store
}

// New creates a form with an empty draft and the default result-set
// size.
func New(client comparable.Client, store session.Store) *Form {
	return &Form{
		draft:  model.NewSubjectProperty(),
		client: client,
		store:  store,
	}
}

// UpdateField is a pure state update: no validation happens until
// Submit. Unknown field names and a non-integer num_comparables are
// the only rejections.
func (f *Form) UpdateField(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case FieldLatitude:
		f.draft.Latitude = value
	case FieldLongitude:
		f.draft.Longitude = value
	case FieldAddress:
		f.draft.Address = value
	case FieldSquareFeet:
		f.draft.SquareFeet = value
	case FieldYearBuilt:
		f.draft.YearBuilt = value
	case FieldZoning:
		f.draft.Zoning = value
	case FieldNumComparables:
		n, err := strconv.Atoi(value)
		if err != nil {
			return eris.Wrapf(err, "form: parse %s", field)
		}
		f.draft.NumComparables = n
	default:
		return eris.Errorf("form: unknown field %q", field)
	}
	return nil
}

// SetDraft replaces the whole draft at once.
func (f *Form) SetDraft(d model.SubjectProperty) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = d
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() model.SubjectProperty {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Searching reports whether a submission is outstanding.
func (f *Form) Searching() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searching
}

// Submit validates the draft, calls the comparable-search service and,
// on success, writes the new session (replacing any prior one) before
// returning it. A validation failure sends no request; a transport or
// non-success response leaves any prior session untouched and returns
// the form to idle.
func (f *Form) Submit(ctx context.Context) (*session.Session, error) {
	f.mu.Lock()
	if f.searching {
		f.mu.Unlock()
		return nil, ErrSearchInFlight
	}
	draft := f.draft
	if fieldErrs := draft.Validate(); len(fieldErrs) > 0 {
		f.mu.Unlock()
		return nil, &ValidationError{Fields: fieldErrs}
	}
	f.searching = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.searching = false
		f.mu.Unlock()
	}()

	req := buildRequest(draft)
	n := draft.Comparables()

	zap.L().Info("submitting comparable search",
		zap.Float64("latitude", req.Latitude),
		zap.Float64("longitude", req.Longitude),
		zap.Int("n", n),
	)

	results, err := f.client.Search(ctx, req, n)
	if err != nil {
		zap.L().Warn("comparable search failed", zap.Error(err))
		return nil, &SearchFailedError{Err: err}
	}

	sess := session.Session{Subject: draft, Results: results}
	if err := f.store.Write(ctx, sess); err != nil {
		return nil, eris.Wrap(err, "form: persist session")
	}

	zap.L().Info("comparable search complete", zap.Int("results", len(results)))
	return &sess, nil
}

// buildRequest coerces the validated draft into the wire request.
// Validate has already guaranteed every parse below succeeds.
func buildRequest(d model.SubjectProperty) comparable.Request {
	lat, _ := strconv.ParseFloat(d.Latitude, 64)
	lon, _ := strconv.ParseFloat(d.Longitude, 64)
	sqft, _ := strconv.Atoi(d.SquareFeet)
	year, _ := strconv.Atoi(d.YearBuilt)
	return comparable.Request{
		Latitude:   lat,
		Longitude:  lon,
		SquareFeet: sqft,
		YearBuilt:  year,
		Zoning:     d.Zoning,
	}
}
