package results

import (
	"fmt"
	"io"
	"strings"
)

const barWidth = 10

// Render writes the results screen as plain text: header, subject
// summary, then one block per comparable in rank order.
func (v *View) Render(w io.Writer) {
	fmt.Fprintf(w, "%d Comparables Found\n\n", len(v.Comparables))

	s := v.Summary()
	fmt.Fprintln(w, "Your Subject Property")
	fmt.Fprintf(w, "  Size        %s\n", s.Size)
	fmt.Fprintf(w, "  Year Built  %s\n", s.YearBuilt)
	fmt.Fprintf(w, "  Zoning      %s\n", s.Zoning)
	fmt.Fprintf(w, "  Location    %s\n", s.Location)

	for i, card := range v.Cards() {
		fmt.Fprintf(w, "\n%d. %s  [%s]\n", i+1, card.Title, card.MatchLabel)
		fmt.Fprintf(w, "   Property ID: %s\n", card.PropertyID)
		fmt.Fprintf(w, "   %s | Built %s | %s | %s\n",
			card.Size, card.YearBuilt, card.Zoning, card.Location)

		if !card.Expanded {
			continue
		}
		fmt.Fprintln(w, "   Compatibility Score Breakdown")
		for _, row := range card.Breakdown {
			fmt.Fprintf(w, "     %-15s %s %4s\n", row.Label, bar(row.Fill), row.Percent)
		}
	}
}

// bar renders a proportionally filled indicator on the 0-100 scale.
func bar(fill int) string {
	filled := fill * barWidth / 100
	return strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled)
}
