// Package catalog turns a course collection and a browse query into the page
// of courses the admin grid and the public catalog display.
//
// Every function in this package is pure: inputs are never mutated and the
// same inputs always yield the same page.
package catalog

import (
	"strings"

	"coursedesk/internal/model"
)

const (
	// AllLanguages disables the language filter.
	AllLanguages = "all"
	// AllLevels disables the level filter.
	AllLevels = "all"
)

// Filters selects which courses are shown. All set clauses must match.
type Filters struct {
	Search   string `json:"search"`
	Language string `json:"language"`
	Level    string `json:"level"`
	// IsActive is nil when both active and inactive courses are shown.
	IsActive *bool `json:"isActive"`
}

// DefaultFilters matches every course.
func DefaultFilters() Filters {
	return Filters{Language: AllLanguages, Level: AllLevels}
}

// Match reports whether c passes every clause of f.
func (f Filters) Match(c model.Course) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.Code), q) {
			return false
		}
	}
	if f.Language != "" && f.Language != AllLanguages && f.Language != c.Language {
		return false
	}
	if f.Level != "" && f.Level != AllLevels && f.Level != c.Level {
		return false
	}
	if f.IsActive != nil && *f.IsActive != c.IsActive {
		return false
	}
	return true
}

// IsDefault reports whether f matches every course.
func (f Filters) IsDefault() bool {
	return strings.TrimSpace(f.Search) == "" &&
		(f.Language == "" || f.Language == AllLanguages) &&
		(f.Level == "" || f.Level == AllLevels) &&
		f.IsActive == nil
}

// Filter returns the courses matching f in their original order.
func Filter(courses []model.Course, f Filters) []model.Course {
	out := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}
