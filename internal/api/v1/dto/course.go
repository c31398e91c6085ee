package dto

import (
	"coursedesk/internal/form"
	"coursedesk/internal/model"
	"coursedesk/internal/service"
)

// FormRequestDTO carries a wizard session between the browser and the server.
// Values holds raw input, as typed.
type FormRequestDTO struct {
	Values  map[string]any `json:"values"`
	Touched []string       `json:"touched"`
	Step    string         `json:"step" validate:"omitempty,oneof=basics schedule pricing extras"`
	Action  string         `json:"action" validate:"required,oneof=edit blur next back goto submit"`
	Field   string         `json:"field" validate:"required_if=Action blur"`
	Target  string         `json:"target" validate:"required_if=Action goto"`
}

// FormStateDTO is the evaluated wizard session
type FormStateDTO struct {
	Draft       model.CourseFormData `json:"draft"`
	Step        form.Step            `json:"step"`
	Touched     []form.Field         `json:"touched"`
	Errors      form.Errors          `json:"errors"`
	Visible     form.Errors          `json:"visible"`
	StepErrors  form.Errors          `json:"stepErrors"`
	Submittable bool                 `json:"submittable"`
	// Moved is false when next, goto or submit was refused.
	Moved bool `json:"moved"`
}

func NewFormStateDTO(f form.Form, moved bool) FormStateDTO {
	touched := f.Touched.List()
	if touched == nil {
		touched = []form.Field{}
	}
	return FormStateDTO{
		Draft:       f.Draft,
		Step:        f.Step,
		Touched:     touched,
		Errors:      f.Errors(),
		Visible:     f.Visible(),
		StepErrors:  f.StepErrors(f.Step),
		Submittable: f.Submittable(),
		Moved:       moved,
	}
}

// CourseDetailDTO is a course together with an edit session seeded from it
type CourseDetailDTO struct {
	Course model.Course `json:"course"`
	Form   FormStateDTO `json:"form"`
}

// ValidationErrorDTO is returned with 422 when a draft cannot be submitted
type ValidationErrorDTO struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// BulkDeleteDTO is used for incoming bulk delete requests
type BulkDeleteDTO struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100,dive,required"`
}

// BulkDeleteResponseDTO reports which courses were deleted
type BulkDeleteResponseDTO = service.BulkDeleteResult

// AudioUploadRequestDTO is used to request an upload URL for an audio practice file
type AudioUploadRequestDTO struct {
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,startswith=audio/"`
}

// AudioUploadResponseDTO is returned with a presigned upload URL
type AudioUploadResponseDTO = service.AudioUpload
