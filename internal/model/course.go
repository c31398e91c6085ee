package model

import "time"

// Course represents a catalog entry as stored by the course service
type Course struct {
	ID               string    `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Language         string    `json:"language"`
	Level            string    `json:"level"`
	DurationWeeks    int       `json:"durationWeeks"`
	TotalSlots       int       `json:"totalSlots"`
	FeeFull          float64   `json:"feeFull"`
	FeeInstallment   float64   `json:"feeInstallment"`
	CreatedBy        string    `json:"createdBy"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	IsActive         bool      `json:"isActive"`
	AudioPracticeURL string    `json:"audioPracticeUrl,omitempty"`
	Topics           []string  `json:"topics"`
}

// CourseFormData is the editable part of a course. It is what the create and
// edit flows submit to the course service.
type CourseFormData struct {
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Language         string   `json:"language"`
	Level            string   `json:"level"`
	DurationWeeks    int      `json:"durationWeeks"`
	TotalSlots       int      `json:"totalSlots"`
	FeeFull          float64  `json:"feeFull"`
	FeeInstallment   float64  `json:"feeInstallment"`
	CreatedBy        string   `json:"createdBy"`
	IsActive         bool     `json:"isActive"`
	AudioPracticeURL string   `json:"audioPracticeUrl,omitempty"`
	Topics           []string `json:"topics"`
}

// NewCourseFormData returns the draft used by the create flow.
func NewCourseFormData() CourseFormData {
	return CourseFormData{
		DurationWeeks: 1,
		TotalSlots:    1,
		IsActive:      true,
		Topics:        []string{},
	}
}

// FormData copies the editable fields of c into a new draft.
func (c Course) FormData() CourseFormData {
	topics := make([]string, len(c.Topics))
	copy(topics, c.Topics)
	return CourseFormData{
		Code:             c.Code,
		Name:             c.Name,
		Description:      c.Description,
		Language:         c.Language,
		Level:            c.Level,
		DurationWeeks:    c.DurationWeeks,
		TotalSlots:       c.TotalSlots,
		FeeFull:          c.FeeFull,
		FeeInstallment:   c.FeeInstallment,
		CreatedBy:        c.CreatedBy,
		IsActive:         c.IsActive,
		AudioPracticeURL: c.AudioPracticeURL,
		Topics:           topics,
	}
}

// Clone returns a copy of d that shares no slices with it.
func (d CourseFormData) Clone() CourseFormData {
	out := d
	out.Topics = make([]string, len(d.Topics))
	copy(out.Topics, d.Topics)
	return out
}
