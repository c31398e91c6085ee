package catalog

import "coursedesk/internal/model"

// Spec is a complete browse query.
type Spec struct {
	Filters  Filters `json:"filters"`
	Sort     Sort    `json:"sort"`
	Page     int     `json:"page"`
	PageSize int     `json:"pageSize"`
}

// Query filters, sorts and paginates courses according to spec.
func Query(courses []model.Course, spec Spec) Page {
	filtered := Filter(courses, spec.Filters)
	sorted := SortCourses(filtered, spec.Sort)
	return Paginate(sorted, spec.Page, spec.PageSize)
}

// View is a screen that browses the catalog with its own page size.
type View struct {
	Name     string
	PageSize int
	// ActiveOnly hides unpublished courses regardless of the requested filters.
	ActiveOnly bool
}

// AdminView is the management grid. It shows every course.
func AdminView(pageSize int) View {
	return View{Name: "admin", PageSize: pageSize}
}

// CatalogView is the public catalog. It only shows published courses.
func CatalogView(pageSize int) View {
	return View{Name: "catalog", PageSize: pageSize, ActiveOnly: true}
}

// Apply pins the view's page size and visibility rules onto spec.
func (v View) Apply(spec Spec) Spec {
	spec.PageSize = v.PageSize
	if v.ActiveOnly {
		active := true
		spec.Filters.IsActive = &active
	}
	return spec
}
