package model

import (
	"math"
	"strconv"
)

// Zoning is the fixed set of zoning designations accepted by the
// comparable-search service.
type Zoning string

const (
	ZoningIndustrial Zoning = "Industrial"
	ZoningMixedUse   Zoning = "Mixed-Use"
	ZoningCommercial Zoning = "Commercial"
	ZoningOther      Zoning = "Other"
)

// Zonings lists all valid zoning values in display order.
func Zonings() []Zoning {
	return []Zoning{ZoningIndustrial, ZoningMixedUse, ZoningCommercial, ZoningOther}
}

// ParseZoning returns the matching zoning value, or false when the
// input is not one of the fixed designations.
func ParseZoning(s string) (Zoning, bool) {
	for _, z := range Zonings() {
		if string(z) == s {
			return z, true
		}
	}
	return "", false
}

// Bounds for the requested result-set size. NumComparables always has
// a valid value and never blocks submission.
const (
	DefaultNumComparables = 5
	MinNumComparables     = 1
	MaxNumComparables     = 10
)

// SubjectProperty is the user's property draft. Numeric fields keep
// the raw string values as typed so the results screen can echo them
// back exactly; coercion happens only when the search request is
// built.
type SubjectProperty struct {
	Latitude       string `json:"latitude"`
	Longitude      string `json:"longitude"`
	Address        string `json:"address"`
	SquareFeet     string `json:"square_feet"`
	YearBuilt      string `json:"year_built"`
	Zoning         string `json:"zoning"`
	NumComparables int    `json:"num_comparables"`
}

// NewSubjectProperty returns an empty draft with the default
// result-set size.
func NewSubjectProperty() SubjectProperty {
	return SubjectProperty{NumComparables: DefaultNumComparables}
}

// Comparables returns the requested result count clamped to [1,10].
func (p SubjectProperty) Comparables() int {
	n := p.NumComparables
	if n < MinNumComparables {
		return MinNumComparables
	}
	if n > MaxNumComparables {
		return MaxNumComparables
	}
	return n
}

// FieldError describes why a single draft field blocks submission.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Validate reports every field that makes the draft non-submittable.
// Address is display-only and never validated; NumComparables is
// clamped rather than rejected.
func (p SubjectProperty) Validate() []FieldError {
	var errs []FieldError

	errs = appendFiniteErr(errs, "latitude", p.Latitude)
	errs = appendFiniteErr(errs, "longitude", p.Longitude)

	switch sqft, err := strconv.Atoi(p.SquareFeet); {
	case p.SquareFeet == "":
		errs = append(errs, FieldError{"square_feet", "required"})
	case err != nil:
		errs = append(errs, FieldError{"square_feet", "must be an integer"})
	case sqft <= 0:
		errs = append(errs, FieldError{"square_feet", "must be positive"})
	}

	if p.YearBuilt == "" {
		errs = append(errs, FieldError{"year_built", "required"})
	} else if _, err := strconv.Atoi(p.YearBuilt); err != nil {
		errs = append(errs, FieldError{"year_built", "must be an integer"})
	}

	if p.Zoning == "" {
		errs = append(errs, FieldError{"zoning", "required"})
	} else if _, ok := ParseZoning(p.Zoning); !ok {
		errs = append(errs, FieldError{"zoning", "must be one of Industrial, Mixed-Use, Commercial, Other"})
	}

	return errs
}

// Submittable reports whether all required fields are present and
// well-typed.
func (p SubjectProperty) Submittable() bool {
	return len(p.Validate()) == 0
}

func appendFiniteErr(errs []FieldError, field, value string) []FieldError {
	if value == "" {
		return append(errs, FieldError{field, "required"})
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return append(errs, FieldError{field, "must be a finite number"})
	}
	return errs
}
