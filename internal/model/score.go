package model

import (
	"fmt"
	"math"
)

// Band partitions compatibility scores into three presentation tiers.
// The same partition drives both the text color class and the badge
// severity, with boundaries at exactly 0.8 and 0.6.
type Band string

const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

// BandFor classifies a score: >= 0.8 is High, >= 0.6 is Medium,
// everything below is Low.
func BandFor(score float64) Band {
	switch {
	case score >= 0.8:
		return BandHigh
	case score >= 0.6:
		return BandMedium
	default:
		return BandLow
	}
}

// Color returns the text color class for the band.
func (b Band) Color() string {
	switch b {
	case BandHigh:
		return "green"
	case BandMedium:
		return "yellow"
	default:
		return "red"
	}
}

// BadgeVariant returns the badge severity for the band.
func (b Band) BadgeVariant() string {
	switch b {
	case BandHigh:
		return "default"
	case BandMedium:
		return "secondary"
	default:
		return "destructive"
	}
}

// Percent converts a [0,1] score to a whole percentage, rounding
// half up (0.8049 -> 80, 0.5 -> 50).
func Percent(score float64) int {
	return int(math.Floor(score*100 + 0.5))
}

// PercentLabel renders a score as a rounded percentage string.
func PercentLabel(score float64) string {
	return fmt.Sprintf("%d%%", Percent(score))
}

// BarFill converts a [0,1] sub-score to a 0-100 indicator fill,
// clamped so out-of-range server values cannot break rendering.
func BarFill(score float64) int {
	fill := Percent(score)
	if fill < 0 {
		return 0
	}
	if fill > 100 {
		return 100
	}
	return fill
}
