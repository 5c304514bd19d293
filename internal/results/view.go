// Package results derives the presentation state for the results
// screen: the subject summary, per-card score bands and percentages,
// and the expand/collapse set.
package results

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/starboard-re/comps-cli/internal/model"
	"github.com/starboard-re/comps-cli/internal/session"
	"github.com/starboard-re/comps-cli/pkg/comparable"
)

// ErrSessionMissing means the results screen was entered without a
// complete search session. It is a navigational guard, not a
// user-facing error: callers redirect to the search form.
var ErrSessionMissing = eris.New("results: no search session")

// View is one results-screen instance: the loaded session plus the
// purely local card-expansion state.
type View struct {
	Subject     model.SubjectProperty
	Comparables []comparable.Result

	expanded map[string]struct{}
}

// Load reads the current session. Results are never rendered without
// a complete, matching session; when it is absent the caller must
// redirect to the search form.
func Load(ctx context.Context, store session.Store) (*View, error) {
	sess, err := store.Read(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionMissing
		}
		return nil, eris.Wrap(err, "results: load session")
	}
	return &View{
		Subject:     sess.Subject,
		Comparables: sess.Results,
		expanded:    make(map[string]struct{}),
	}, nil
}

// Toggle flips the expansion state of one card. It is its own
// inverse and touches rendering state only.
func (v *View) Toggle(id string) {
	if _, ok := v.expanded[id]; ok {
		delete(v.expanded, id)
		return
	}
	v.expanded[id] = struct{}{}
}

// Expanded reports whether a card is showing its breakdown.
func (v *View) Expanded(id string) bool {
	_, ok := v.expanded[id]
	return ok
}

// ExpandAll expands every card.
func (v *View) ExpandAll() {
	for _, c := range v.Comparables {
		v.expanded[c.ID] = struct{}{}
	}
}

// ExpandedIDs returns the expanded card ids in sorted order.
func (v *View) ExpandedIDs() []string {
	ids := make([]string, 0, len(v.expanded))
	for id := range v.expanded {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Summary is the subject-property header, formatted from the draft as
// submitted.
type Summary struct {
	Size      string
	YearBuilt string
	Zoning    string
	Location  string
}

// Summary formats the stored subject property for display.
func (v *View) Summary() Summary {
	size := v.Subject.SquareFeet
	if sqft, err := strconv.Atoi(v.Subject.SquareFeet); err == nil {
		size = model.FormatSquareFeet(sqft)
	}
	return Summary{
		Size:      size,
		YearBuilt: v.Subject.YearBuilt,
		Zoning:    v.Subject.Zoning,
		Location:  model.DisplayLatitude(v.Subject.Latitude) + ", " + model.DisplayLongitude(v.Subject.Longitude),
	}
}

// BreakdownRow is one sub-score line of the expanded card.
type BreakdownRow struct {
	Label   string
	Percent string
	Fill    int
	Color   string
}

// Card is the fully derived render state for one comparable.
type Card struct {
	ID         string
	Title      string
	PropertyID string

	Size      string
	YearBuilt string
	Zoning    string
	Location  string

	MatchLabel   string
	Color        string
	BadgeVariant string

	Expanded  bool
	Breakdown []BreakdownRow
}

// Cards derives render state for every comparable, preserving the
// server rank order.
func (v *View) Cards() []Card {
	cards := make([]Card, 0, len(v.Comparables))
	for _, c := range v.Comparables {
		band := model.BandFor(c.Score)

		title := c.Property.Address
		if title == "" {
			title = "Property " + c.Property.ID
		}

		cards = append(cards, Card{
			ID:           c.ID,
			Title:        title,
			PropertyID:   c.Property.ID,
			Size:         model.FormatSquareFeet(c.Property.SquareFeet),
			YearBuilt:    strconv.Itoa(c.Property.YearBuilt),
			Zoning:       c.Property.Zoning,
			Location:     model.FormatCoordinates(c.Property.Latitude, c.Property.Longitude),
			MatchLabel:   model.PercentLabel(c.Score) + " Match",
			Color:        band.Color(),
			BadgeVariant: band.BadgeVariant(),
			Expanded:     v.Expanded(c.ID),
			Breakdown:    breakdownRows(c.Breakdown),
		})
	}
	return cards
}

func breakdownRows(b comparable.Breakdown) []BreakdownRow {
	rows := []struct {
		label string
		score float64
	}{
		{"Location Match", b.Location},
		{"Size Match", b.Size},
		{"Age Match", b.YearBuilt},
		{"Zoning Match", b.Zoning},
	}

	out := make([]BreakdownRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, BreakdownRow{
			Label:   r.label,
			Percent: model.PercentLabel(r.score),
			Fill:    model.BarFill(r.score),
			Color:   model.BandFor(r.score).Color(),
		})
	}
	return out
}
