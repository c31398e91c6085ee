package dto

import (
	"fmt"
	"net/url"
	"strings"

	"coursedesk/internal/catalog"
	"coursedesk/internal/model"

	"github.com/mitchellh/mapstructure"
)

// CatalogQueryDTO is the query string of the admin grid and the public catalog
type CatalogQueryDTO struct {
	Search   string `mapstructure:"search" validate:"max=100"`
	Language string `mapstructure:"language"`
	Level    string `mapstructure:"level"`
	Active   *bool  `mapstructure:"active"`
	Sort     string `mapstructure:"sort" validate:"omitempty,oneof=name language level durationWeeks totalSlots feeFull createdAt"`
	Dir      string `mapstructure:"dir" validate:"omitempty,oneof=asc desc"`
	Page     *int   `mapstructure:"page"`
}

// DecodeCatalogQuery reads the browse parameters from q. Unknown parameters
// are ignored; "all" or an empty value leaves a filter unset.
func DecodeCatalogQuery(q url.Values) (CatalogQueryDTO, error) {
	raw := map[string]any{}
	for key, values := range q {
		if len(values) == 0 {
			continue
		}
		v := strings.TrimSpace(values[0])
		if key == "active" && (v == "" || strings.EqualFold(v, "all")) {
			continue
		}
		if key == "page" && v == "" {
			continue
		}
		raw[key] = v
	}

	var out CatalogQueryDTO
	if err := mapstructure.WeakDecode(raw, &out); err != nil {
		return CatalogQueryDTO{}, fmt.Errorf("invalid query: %w", err)
	}
	return out, nil
}

// Spec builds the engine query. The page size is decided by the view.
func (q CatalogQueryDTO) Spec() catalog.Spec {
	state := catalog.NewState(0).
		WithSearch(q.Search).
		WithActive(q.Active)
	if q.Language != "" {
		state = state.WithLanguage(q.Language)
	}
	if q.Level != "" {
		state = state.WithLevel(q.Level)
	}
	if q.Sort != "" {
		state.Sort = catalog.Sort{Field: catalog.SortField(q.Sort), Direction: catalog.Ascending}
	}
	if q.Dir != "" {
		state = state.WithDirection(catalog.Direction(q.Dir))
	}
	if q.Page != nil {
		state = state.WithPage(*q.Page)
	}
	return state.Spec()
}

// CoursePageDTO is returned for a browse request
type CoursePageDTO struct {
	Items      []model.Course  `json:"items"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalCount int             `json:"totalCount"`
	TotalPages int             `json:"totalPages"`
	HasNext    bool            `json:"hasNext"`
	HasPrev    bool            `json:"hasPrev"`
	Filters    catalog.Filters `json:"filters"`
	Sort       catalog.Sort    `json:"sort"`
}

func NewCoursePageDTO(p catalog.Page, spec catalog.Spec) CoursePageDTO {
	return CoursePageDTO{
		Items:      p.Items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
		Filters:    spec.Filters,
		Sort:       spec.Sort,
	}
}

// PageSizesDTO holds the page size of each browse screen
type PageSizesDTO struct {
	Admin   int `json:"admin"`
	Catalog int `json:"catalog"`
}

// WizardStepDTO describes one step of the create/edit wizard
type WizardStepDTO struct {
	Step   string   `json:"step"`
	Fields []string `json:"fields"`
}

// OptionsDTO lists the values the course screens offer in their selects
type OptionsDTO struct {
	Languages  []model.Language    `json:"languages"`
	Levels     []model.Level       `json:"levels"`
	SortFields []catalog.SortField `json:"sortFields"`
	Directions []catalog.Direction `json:"directions"`
	PageSizes  PageSizesDTO        `json:"pageSizes"`
	Steps      []WizardStepDTO     `json:"steps"`
}
