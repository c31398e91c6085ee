package catalog

import "coursedesk/internal/model"

// Page is one page of a filtered and sorted course sequence.
type Page struct {
	Items      []model.Course `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalCount int            `json:"totalCount"`
	TotalPages int            `json:"totalPages"`
	HasNext    bool           `json:"hasNext"`
	HasPrev    bool           `json:"hasPrev"`
}

// Empty reports whether nothing matched the query at all.
func (p Page) Empty() bool { return p.TotalCount == 0 }

// TotalPages is ceil(count/pageSize), and 0 for an empty sequence.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	if count <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// Paginate returns the 1-indexed page of items holding
// items[(page-1)*pageSize : page*pageSize]. Pages outside the available range
// are empty.
func Paginate(items []model.Course, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	total := len(items)
	totalPages := TotalPages(total, pageSize)

	out := Page{
		Items:      []model.Course{},
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    totalPages > 0 && page >= 1 && page < totalPages,
	}
	if page < 1 || page > totalPages {
		return out
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	out.Items = make([]model.Course, end-start)
	copy(out.Items, items[start:end])
	return out
}
