package catalog

// State is the browse state of one screen. Transitions return a new State;
// any filter change sends the user back to page 1 while sort and page
// changes keep the rest of the state.
type State struct {
	Filters  Filters
	Sort     Sort
	Page     int
	PageSize int
}

// NewState starts browsing from the first page with default filters.
func NewState(pageSize int) State {
	return State{
		Filters:  DefaultFilters(),
		Sort:     DefaultSort(),
		Page:     1,
		PageSize: pageSize,
	}
}

func (s State) WithFilters(f Filters) State {
	active := f.IsActive
	f.IsActive = nil
	s.Filters = f
	return s.WithActive(active)
}

func (s State) WithSearch(search string) State {
	s.Filters.Search = search
	s.Page = 1
	return s
}

func (s State) WithLanguage(language string) State {
	s.Filters.Language = language
	s.Page = 1
	return s
}

func (s State) WithLevel(level string) State {
	s.Filters.Level = level
	s.Page = 1
	return s
}

// WithActive sets the published filter; nil shows both.
func (s State) WithActive(active *bool) State {
	if active != nil {
		v := *active
		active = &v
	}
	s.Filters.IsActive = active
	s.Page = 1
	return s
}

// ResetFilters clears every filter.
func (s State) ResetFilters() State {
	return s.WithFilters(DefaultFilters())
}

// WithSort behaves like a column header click: the current column flips
// direction, a new column starts ascending.
func (s State) WithSort(field SortField) State {
	if s.Sort.Field == field {
		s.Sort.Direction = s.Sort.Direction.Reverse()
		return s
	}
	s.Sort = Sort{Field: field, Direction: Ascending}
	return s
}

func (s State) WithDirection(d Direction) State {
	s.Sort.Direction = d
	return s
}

func (s State) WithPage(page int) State {
	s.Page = page
	return s
}

// Spec returns the query for the current state.
func (s State) Spec() Spec {
	return Spec{Filters: s.Filters, Sort: s.Sort, Page: s.Page, PageSize: s.PageSize}
}
