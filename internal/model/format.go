package model

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatSquareFeet renders a size with thousands separators,
// e.g. 50000 -> "50,000 sq ft".
func FormatSquareFeet(sqft int) string {
	return printer.Sprintf("%d sq ft", sqft)
}

// DisplayLatitude truncates a latitude exactly as submitted to at
// most 7 characters for the subject summary.
func DisplayLatitude(lat string) string {
	return truncate(lat, 7)
}

// DisplayLongitude truncates a longitude as submitted to at most 8
// characters (one extra for the leading sign on western longitudes).
func DisplayLongitude(lon string) string {
	return truncate(lon, 8)
}

// FormatCoordinates renders a comparable's coordinate pair at four
// decimal places.
func FormatCoordinates(lat, lon float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lon)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
