package results

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starboard-re/comps-cli/internal/model"
	"github.com/starboard-re/comps-cli/internal/session"
	"github.com/starboard-re/comps-cli/pkg/comparable"
)

func storedSession() session.Session {
	return session.Session{
		Subject: model.SubjectProperty{
			Latitude:       "34.0522",
			Longitude:      "-118.2437",
			SquareFeet:     "50000",
			YearBuilt:      "2010",
			Zoning:         "Industrial",
			NumComparables: 3,
		},
		Results: []comparable.Result{
			{
				ID:    "c1",
				Score: 0.92,
				Breakdown: comparable.Breakdown{
					Location: 0.95, Size: 0.9, YearBuilt: 0.88, Zoning: 1.0,
				},
				Property: comparable.Property{
					ID: "p1", Latitude: 34.05, Longitude: -118.25,
					SquareFeet: 48000, YearBuilt: 2012, Zoning: "Industrial",
					Address: "500 Dock St",
				},
			},
			{
				ID:    "c2",
				Score: 0.71,
				Property: comparable.Property{
					ID: "p2", Latitude: 34.01, Longitude: -118.2,
					SquareFeet: 61000, YearBuilt: 1998, Zoning: "Mixed-Use",
				},
			},
			{
				ID:    "c3",
				Score: 0.44,
				Property: comparable.Property{
					ID: "p3", Latitude: 33.99, Longitude: -118.31,
					SquareFeet: 22000, YearBuilt: 1975, Zoning: "Commercial",
				},
			},
		},
	}
}

func loadedView(t *testing.T) *View {
	t.Helper()
	store := session.NewMemory()
	require.NoError(t, store.Write(context.Background(), storedSession()))
	v, err := Load(context.Background(), store)
	require.NoError(t, err)
	return v
}

func TestLoad_MissingSessionRedirects(t *testing.T) {
	store := session.NewMemory()

	v, err := Load(context.Background(), store)
	assert.Nil(t, v)
	assert.ErrorIs(t, err, ErrSessionMissing)
}

func TestView_Summary(t *testing.T) {
	v := loadedView(t)

	s := v.Summary()
	assert.Equal(t, "50,000 sq ft", s.Size)
	assert.Equal(t, "2010", s.YearBuilt)
	assert.Equal(t, "Industrial", s.Zoning)
	assert.Equal(t, "34.0522, -118.243", s.Location)
}

func TestView_Cards(t *testing.T) {
	v := loadedView(t)

	cards := v.Cards()
	require.Len(t, cards, 3)

	// Server rank order, never re-sorted locally.
	assert.Equal(t, "c1", cards[0].ID)
	assert.Equal(t, "c2", cards[1].ID)
	assert.Equal(t, "c3", cards[2].ID)

	high := cards[0]
	assert.Equal(t, "500 Dock St", high.Title)
	assert.Equal(t, "p1", high.PropertyID)
	assert.Equal(t, "48,000 sq ft", high.Size)
	assert.Equal(t, "2012", high.YearBuilt)
	assert.Equal(t, "34.0500, -118.2500", high.Location)
	assert.Equal(t, "92% Match", high.MatchLabel)
	assert.Equal(t, "green", high.Color)
	assert.Equal(t, "default", high.BadgeVariant)
	assert.False(t, high.Expanded)

	// A comparable without an address falls back to its property id.
	medium := cards[1]
	assert.Equal(t, "Property p2", medium.Title)
	assert.Equal(t, "71% Match", medium.MatchLabel)
	assert.Equal(t, "yellow", medium.Color)
	assert.Equal(t, "secondary", medium.BadgeVariant)

	low := cards[2]
	assert.Equal(t, "44% Match", low.MatchLabel)
	assert.Equal(t, "red", low.Color)
	assert.Equal(t, "destructive", low.BadgeVariant)
}

func TestView_CardBreakdown(t *testing.T) {
	v := loadedView(t)

	rows := v.Cards()[0].Breakdown
	require.Len(t, rows, 4)

	assert.Equal(t, "Location Match", rows[0].Label)
	assert.Equal(t, "95%", rows[0].Percent)
	assert.Equal(t, "Size Match", rows[1].Label)
	assert.Equal(t, "Age Match", rows[2].Label)
	assert.Equal(t, "88%", rows[2].Percent)
	assert.Equal(t, "Zoning Match", rows[3].Label)
	assert.Equal(t, "100%", rows[3].Percent)
	assert.Equal(t, 100, rows[3].Fill)
	assert.Equal(t, "green", rows[3].Color)
}

func TestView_Toggle(t *testing.T) {
	v := loadedView(t)

	assert.False(t, v.Expanded("c2"))
	v.Toggle("c2")
	assert.True(t, v.Expanded("c2"))
	assert.False(t, v.Expanded("c1"), "cards expand independently")

	// Toggle is its own inverse.
	v.Toggle("c2")
	assert.False(t, v.Expanded("c2"))

	v.Toggle("c1")
	v.Toggle("c3")
	assert.Equal(t, []string{"c1", "c3"}, v.ExpandedIDs())

	v.ExpandAll()
	assert.Equal(t, []string{"c1", "c2", "c3"}, v.ExpandedIDs())
}

func TestView_Render(t *testing.T) {
	v := loadedView(t)
	v.Toggle("c1")

	var sb strings.Builder
	v.Render(&sb)
	out := sb.String()

	assert.Contains(t, out, "3 Comparables Found")
	assert.Contains(t, out, "Your Subject Property")
	assert.Contains(t, out, "50,000 sq ft")
	assert.Contains(t, out, "1. 500 Dock St  [92% Match]")
	assert.Contains(t, out, "2. Property p2  [71% Match]")
	assert.Contains(t, out, "Property ID: p1")

	// Only the toggled card shows its breakdown.
	assert.Equal(t, 1, strings.Count(out, "Compatibility Score Breakdown"))
	assert.Contains(t, out, "Location Match")
	assert.Contains(t, out, "95%")
}
