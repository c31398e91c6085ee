package catalog

import (
	"cmp"
	"slices"
	"strings"

	"coursedesk/internal/model"
)

// SortField names the course attribute a page is ordered by.
type SortField string

const (
	SortByName          SortField = "name"
	SortByLanguage      SortField = "language"
	SortByLevel         SortField = "level"
	SortByDurationWeeks SortField = "durationWeeks"
	SortByTotalSlots    SortField = "totalSlots"
	SortByFeeFull       SortField = "feeFull"
	SortByCreatedAt     SortField = "createdAt"
)

// SortFields lists the sortable columns.
var SortFields = []SortField{
	SortByName,
	SortByLanguage,
	SortByLevel,
	SortByDurationWeeks,
	SortByTotalSlots,
	SortByFeeFull,
	SortByCreatedAt,
}

// Direction is the sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// Sort is a sort key and direction.
type Sort struct {
	Field     SortField `json:"field"`
	Direction Direction `json:"direction"`
}

// DefaultSort orders courses by name, A to Z.
func DefaultSort() Sort {
	return Sort{Field: SortByName, Direction: Ascending}
}

// Valid reports whether s.Field is a sortable column.
func (s Sort) Valid() bool {
	return slices.Contains(SortFields, s.Field)
}

func comparator(field SortField) func(a, b model.Course) int {
	switch field {
	case SortByName:
		return func(a, b model.Course) int { return foldCompare(a.Name, b.Name) }
	case SortByLanguage:
		return func(a, b model.Course) int { return foldCompare(a.Language, b.Language) }
	case SortByLevel:
		return func(a, b model.Course) int { return foldCompare(a.Level, b.Level) }
	case SortByDurationWeeks:
		return func(a, b model.Course) int { return cmp.Compare(a.DurationWeeks, b.DurationWeeks) }
	case SortByTotalSlots:
		return func(a, b model.Course) int { return cmp.Compare(a.TotalSlots, b.TotalSlots) }
	case SortByFeeFull:
		return func(a, b model.Course) int { return cmp.Compare(a.FeeFull, b.FeeFull) }
	case SortByCreatedAt:
		return func(a, b model.Course) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
	return nil
}

func foldCompare(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// SortCourses returns a sorted copy of courses. Courses with equal keys keep
// their relative order in both directions, so sorting is idempotent and
// flipping the direction reverses every pair of non-equal keys. An unknown
// field leaves the order unchanged.
func SortCourses(courses []model.Course, s Sort) []model.Course {
	out := slices.Clone(courses)
	compare := comparator(s.Field)
	if compare == nil {
		return out
	}
	if s.Direction == Descending {
		slices.SortStableFunc(out, func(a, b model.Course) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(out, compare)
	}
	return out
}
