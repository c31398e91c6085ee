package catalog

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"coursedesk/internal/model"
)

func createCourse(id, code, name, language, level string, weeks int, fee float64, active bool, createdOffset int) model.Course {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return model.Course{
		ID:            id,
		Code:          code,
		Name:          name,
		Language:      language,
		Level:         level,
		DurationWeeks: weeks,
		TotalSlots:    20,
		FeeFull:       fee,
		IsActive:      active,
		CreatedAt:     start.Add(time.Duration(createdOffset) * time.Hour),
	}
}

func createCourses() []model.Course {
	return []model.Course{
		createCourse("1", "ENG-101", "English for Beginners", "English", "Beginner", 8, 300, true, 0),
		createCourse("2", "SPA-101", "Spanish Basics", "Spanish", "Beginner", 10, 250, true, 1),
		createCourse("3", "ENG-201", "Business English", "English", "Intermediate", 12, 450, false, 2),
		createCourse("4", "FRE-101", "french Conversation", "French", "Beginner", 8, 300, true, 3),
		createCourse("5", "GER-301", "German Literature", "German", "Advanced", 16, 600, true, 4),
		createCourse("6", "ENG-301", "Academic Writing", "English", "Advanced", 10, 500, true, 5),
		createCourse("7", "ENG-110", "English Idioms", "English", "Beginner", 6, 200, false, 6),
		createCourse("8", "SPA-201", "Spanish Travel Phrases", "Spanish", "Elementary", 4, 150, true, 7),
		createCourse("9", "ITA-101", "Italian Cooking Vocabulary", "Italian", "Beginner", 8, 300, true, 8),
		createCourse("10", "ENG-102", "English Pronunciation", "English", "Beginner", 6, 220, true, 9),
	}
}

func ids(courses []model.Course) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.ID
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

func TestSearchMatchesNameAndCode(t *testing.T) {
	courses := []model.Course{
		createCourse("a", "LIT-100", "English for Beginners", "English", "Beginner", 8, 0, true, 0),
		createCourse("b", "ENG-101", "Grammar Workshop", "English", "Beginner", 8, 0, true, 0),
		createCourse("c", "SPA-101", "Spanish Basics", "Spanish", "Beginner", 8, 0, true, 0),
	}
	f := DefaultFilters()
	f.Search = "eng"

	got := ids(Filter(courses, f))
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected search to match %v, got %v", want, got)
	}
}

func TestFilterReturnsSubsetMatchingAllPredicates(t *testing.T) {
	courses := createCourses()
	filterSets := []Filters{
		DefaultFilters(),
		{Search: "span", Language: AllLanguages, Level: AllLevels},
		{Language: "English", Level: AllLevels},
		{Language: AllLanguages, Level: "Beginner", IsActive: boolPtr(true)},
		{Language: "English", Level: "Advanced", IsActive: boolPtr(false)},
		{Search: "ENG", Language: "English", Level: "Beginner"},
		{Language: "Klingon", Level: AllLevels},
	}

	for i, f := range filterSets {
		t.Run(fmt.Sprintf("filters_%d", i), func(t *testing.T) {
			got := Filter(courses, f)
			if len(got) > len(courses) {
				t.Fatalf("expected a subset, got %d of %d", len(got), len(courses))
			}
			for _, c := range got {
				if !f.Match(c) {
					t.Errorf("course %s does not satisfy %+v", c.ID, f)
				}
			}
			// every excluded course must fail at least one clause
			kept := map[string]bool{}
			for _, c := range got {
				kept[c.ID] = true
			}
			for _, c := range courses {
				if !kept[c.ID] && f.Match(c) {
					t.Errorf("course %s matches %+v but was dropped", c.ID, f)
				}
			}
		})
	}
}

func TestUnknownLanguageYieldsEmptyPage(t *testing.T) {
	spec := Spec{
		Filters:  Filters{Language: "Klingon", Level: AllLevels},
		Sort:     DefaultSort(),
		Page:     1,
		PageSize: 4,
	}
	page := Query(createCourses(), spec)
	if !page.Empty() || page.TotalPages != 0 || len(page.Items) != 0 {
		t.Errorf("expected an empty result, got %+v", page)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	courses := createCourses()
	before := ids(courses)
	Query(courses, Spec{Filters: DefaultFilters(), Sort: Sort{Field: SortByFeeFull, Direction: Descending}, Page: 1, PageSize: 3})
	if !reflect.DeepEqual(ids(courses), before) {
		t.Errorf("expected input order %v to be preserved, got %v", before, ids(courses))
	}
}

func TestSortIsIdempotent(t *testing.T) {
	courses := createCourses()
	for _, field := range SortFields {
		for _, dir := range []Direction{Ascending, Descending} {
			s := Sort{Field: field, Direction: dir}
			once := SortCourses(courses, s)
			twice := SortCourses(once, s)
			if !reflect.DeepEqual(ids(once), ids(twice)) {
				t.Errorf("sorting by %s %s twice changed the order: %v vs %v", field, dir, ids(once), ids(twice))
			}
		}
	}
}

func TestSortIsStableForTies(t *testing.T) {
	courses := createCourses()
	// 1, 4 and 9 all last 8 weeks
	for _, dir := range []Direction{Ascending, Descending} {
		sorted := SortCourses(courses, Sort{Field: SortByDurationWeeks, Direction: dir})
		var tied []string
		for _, c := range sorted {
			if c.DurationWeeks == 8 {
				tied = append(tied, c.ID)
			}
		}
		want := []string{"1", "4", "9"}
		if !reflect.DeepEqual(tied, want) {
			t.Errorf("expected ties in %s order to keep %v, got %v", dir, want, tied)
		}
	}
}

func TestDescendingReversesNonTiedElements(t *testing.T) {
	courses := createCourses()
	for _, field := range SortFields {
		asc := SortCourses(courses, Sort{Field: field, Direction: Ascending})
		desc := SortCourses(courses, Sort{Field: field, Direction: Descending})
		compare := comparator(field)

		pos := map[string]int{}
		for i, c := range desc {
			pos[c.ID] = i
		}
		for i := 0; i < len(asc); i++ {
			for j := i + 1; j < len(asc); j++ {
				if compare(asc[i], asc[j]) == 0 {
					continue
				}
				if pos[asc[i].ID] < pos[asc[j].ID] {
					t.Errorf("field %s: expected %s after %s in descending order", field, asc[i].ID, asc[j].ID)
				}
			}
		}
	}
}

func TestStringSortIgnoresCase(t *testing.T) {
	courses := []model.Course{
		createCourse("1", "AAA-001", "banana", "English", "Beginner", 1, 0, true, 0),
		createCourse("2", "AAA-002", "Apple", "English", "Beginner", 1, 0, true, 0),
		createCourse("3", "AAA-003", "cherry", "English", "Beginner", 1, 0, true, 0),
	}
	got := ids(SortCourses(courses, Sort{Field: SortByName, Direction: Ascending}))
	want := []string{"2", "1", "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSortByCreatedAt(t *testing.T) {
	got := ids(SortCourses(createCourses(), Sort{Field: SortByCreatedAt, Direction: Descending}))
	want := []string{"10", "9", "8", "7", "6", "5", "4", "3", "2", "1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestUnknownSortFieldKeepsOrder(t *testing.T) {
	courses := createCourses()
	got := ids(SortCourses(courses, Sort{Field: "popularity", Direction: Descending}))
	if !reflect.DeepEqual(got, ids(courses)) {
		t.Errorf("expected original order, got %v", got)
	}
}

func TestPaginationScenario(t *testing.T) {
	// 10 courses, 5 of them English
	spec := Spec{
		Filters:  Filters{Language: "English", Level: AllLevels},
		Sort:     DefaultSort(),
		Page:     1,
		PageSize: 4,
	}
	courses := createCourses()

	first := Query(courses, spec)
	if first.TotalCount != 5 {
		t.Fatalf("expected 5 matches, got %d", first.TotalCount)
	}
	if first.TotalPages != 2 {
		t.Errorf("expected 2 pages, got %d", first.TotalPages)
	}
	if len(first.Items) != 4 || !first.HasNext || first.HasPrev {
		t.Errorf("unexpected first page %+v", first)
	}

	spec.Page = 2
	second := Query(courses, spec)
	if len(second.Items) != 1 || second.HasNext || !second.HasPrev {
		t.Errorf("unexpected second page %+v", second)
	}
}

func TestPagesCoverFilteredSetExactlyOnce(t *testing.T) {
	courses := createCourses()
	for _, size := range []int{1, 2, 3, 4, 7, 10, 25} {
		spec := Spec{Filters: DefaultFilters(), Sort: Sort{Field: SortByFeeFull, Direction: Ascending}, PageSize: size}
		all := SortCourses(Filter(courses, spec.Filters), spec.Sort)

		var joined []string
		spec.Page = 1
		totalPages := Query(courses, spec).TotalPages
		for p := 1; p <= totalPages; p++ {
			spec.Page = p
			joined = append(joined, ids(Query(courses, spec).Items)...)
		}
		if !reflect.DeepEqual(joined, ids(all)) {
			t.Errorf("page size %d: expected %v, got %v", size, ids(all), joined)
		}
	}
}

func TestPageOutOfRangeIsEmpty(t *testing.T) {
	courses := createCourses()
	for _, p := range []int{0, -1, 4, 100} {
		page := Paginate(courses, p, 4)
		if len(page.Items) != 0 {
			t.Errorf("expected page %d to be empty, got %d items", p, len(page.Items))
		}
		if page.TotalPages != 3 {
			t.Errorf("expected 3 total pages, got %d", page.TotalPages)
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, size, want int
	}{
		{0, 4, 0},
		{1, 4, 1},
		{4, 4, 1},
		{5, 4, 2},
		{12, 12, 1},
		{13, 12, 2},
		{3, 0, 3},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.count, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.count, tt.size, got, tt.want)
		}
	}
}

func TestQueryIsRepeatable(t *testing.T) {
	courses := createCourses()
	spec := Spec{Filters: Filters{Search: "s", Language: AllLanguages, Level: AllLevels}, Sort: Sort{Field: SortByLevel, Direction: Descending}, Page: 2, PageSize: 3}
	a := Query(courses, spec)
	b := Query(courses, spec)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected identical pages, got %+v and %+v", a, b)
	}
}

func TestCatalogViewHidesInactiveCourses(t *testing.T) {
	view := CatalogView(12)
	spec := view.Apply(Spec{Filters: Filters{Language: AllLanguages, Level: AllLevels, IsActive: boolPtr(false)}, Sort: DefaultSort(), Page: 1})
	page := Query(createCourses(), spec)
	if page.PageSize != 12 {
		t.Errorf("expected page size 12, got %d", page.PageSize)
	}
	for _, c := range page.Items {
		if !c.IsActive {
			t.Errorf("expected only active courses, got %s", c.ID)
		}
	}
	if page.TotalCount != 8 {
		t.Errorf("expected 8 active courses, got %d", page.TotalCount)
	}
}
