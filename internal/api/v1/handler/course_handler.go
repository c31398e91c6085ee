package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"coursedesk/internal/api/v1/dto"
	"coursedesk/internal/catalog"
	"coursedesk/internal/courseapi"
	"coursedesk/internal/form"
	"coursedesk/internal/middleware"
	"coursedesk/internal/model"
	"coursedesk/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CourseHandler handles course-related endpoints
type CourseHandler struct {
	courseService service.CourseService
	audioService  service.AudioService
	validate      *validator.Validate
	adminView     catalog.View
	catalogView   catalog.View
	logger        zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler. audioService may be nil when
// audio uploads are not configured.
func NewCourseHandler(
	courseService service.CourseService,
	audioService service.AudioService,
	validate *validator.Validate,
	adminView catalog.View,
	catalogView catalog.View,
	logger zerolog.Logger,
) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		audioService:  audioService,
		validate:      validate,
		adminView:     adminView,
		catalogView:   catalogView,
		logger:        logger.With().Str("handler", "CourseHandler").Logger(),
	}
}

// RegisterRoutes mounts course routes. The public catalog and the select
// options are not behind authMw.
func (h *CourseHandler) RegisterRoutes(r chi.Router, authMw func(http.Handler) http.Handler) {
	r.Get("/catalog/courses", h.listCatalogCourses)
	r.Get("/courses/options", h.getOptions)

	r.Group(func(r chi.Router) {
		r.Use(authMw)
		r.Get("/admin/courses", h.listAdminCourses)
		r.Post("/courses/form", h.evaluateForm)
		r.Post("/courses/bulk-delete", h.bulkDeleteCourses)
		r.Post("/courses/audio-upload-url", h.createAudioUploadURL)

		r.Post("/courses", h.createCourse)
		r.Get("/courses/{courseID}", h.getCourse)
		r.Put("/courses/{courseID}", h.updateCourse)
		r.Delete("/courses/{courseID}", h.deleteCourse)
	})
}

// listAdminCourses godoc
// @Summary Browse the management grid
// @Description Returns one page of courses, including unpublished ones.
// @Tags catalog
// @Produce json
// @Param search query string false "Substring of the course name or code"
// @Param language query string false "Language, or all"
// @Param level query string false "Level, or all"
// @Param active query string false "true, false or all"
// @Param sort query string false "Sort field"
// @Param dir query string false "asc or desc"
// @Param page query int false "1-based page number"
// @Success 200 {object} dto.CoursePageDTO
// @Failure 400 {string} string "Invalid query"
// @Failure 502 {string} string "Failed to list courses"
// @Router /admin/courses [get]
func (h *CourseHandler) listAdminCourses(w http.ResponseWriter, r *http.Request) {
	h.listCourses(w, r, h.adminView)
}

// listCatalogCourses godoc
// @Summary Browse the public catalog
// @Description Returns one page of published courses. The active filter is ignored.
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.CoursePageDTO
// @Failure 400 {string} string "Invalid query"
// @Failure 502 {string} string "Failed to list courses"
// @Router /catalog/courses [get]
func (h *CourseHandler) listCatalogCourses(w http.ResponseWriter, r *http.Request) {
	h.listCourses(w, r, h.catalogView)
}

func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request, view catalog.View) {
	q, err := dto.DecodeCatalogQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&q); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	spec := view.Apply(q.Spec())
	page, err := h.courseService.Browse(r.Context(), view, spec)
	if err != nil {
		h.logger.Error().Err(err).Str("view", view.Name).Msg("Failed to browse courses")
		http.Error(w, "Failed to list courses", http.StatusBadGateway)
		return
	}
	render.JSON(w, r, dto.NewCoursePageDTO(page, spec))
}

// getOptions godoc
// @Summary List course form and filter options
// @Tags courses
// @Produce json
// @Success 200 {object} dto.OptionsDTO
// @Router /courses/options [get]
func (h *CourseHandler) getOptions(w http.ResponseWriter, r *http.Request) {
	steps := make([]dto.WizardStepDTO, 0, len(form.Steps()))
	for _, s := range form.Steps() {
		fields := []string{}
		for _, f := range form.StepFields(s) {
			fields = append(fields, f.String())
		}
		steps = append(steps, dto.WizardStepDTO{Step: s.String(), Fields: fields})
	}
	render.JSON(w, r, dto.OptionsDTO{
		Languages:  model.Languages,
		Levels:     model.Levels,
		SortFields: catalog.SortFields,
		Directions: []catalog.Direction{catalog.Ascending, catalog.Descending},
		PageSizes:  dto.PageSizesDTO{Admin: h.adminView.PageSize, Catalog: h.catalogView.PageSize},
		Steps:      steps,
	})
}

// evaluateForm godoc
// @Summary Evaluate a create/edit wizard session
// @Description Applies one user action to the submitted values and returns the errors to show.
// @Tags courses
// @Accept json
// @Produce json
// @Param form body dto.FormRequestDTO true "Wizard session"
// @Success 200 {object} dto.FormStateDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Router /courses/form [post]
func (h *CourseHandler) evaluateForm(w http.ResponseWriter, r *http.Request) {
	var req dto.FormRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	f := form.New()
	f.Touched = form.TouchedFields(req.Touched...)
	if req.Step != "" {
		if err := f.Step.UnmarshalText([]byte(req.Step)); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	f = f.Load(req.Values)

	moved := true
	switch req.Action {
	case "blur":
		field, ok := form.ParseField(req.Field)
		if !ok {
			http.Error(w, "Unknown field: "+req.Field, http.StatusBadRequest)
			return
		}
		f = f.Blur(field)
	case "next":
		f, moved = f.Next()
	case "back":
		f = f.Back()
	case "goto":
		var target form.Step
		if err := target.UnmarshalText([]byte(req.Target)); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f, moved = f.Goto(target)
	case "submit":
		f, moved = f.AttemptSubmit()
	}

	render.JSON(w, r, dto.NewFormStateDTO(f, moved))
}

// createCourse godoc
// @Summary Create a new course
// @Description Validates the raw form values and forwards the draft to the course service.
// @Tags courses
// @Accept json
// @Produce json
// @Param course body object true "Raw form values keyed by field name"
// @Success 201 {object} model.Course
// @Failure 400 {string} string "Invalid JSON payload"
// @Failure 422 {object} dto.ValidationErrorDTO
// @Failure 502 {string} string "Failed to create course"
// @Router /courses [post]
func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	f := form.New().Load(raw)
	if errs := f.Errors(); !errs.Empty() {
		writeValidationErrors(w, r, errs)
		return
	}
	if f.Draft.CreatedBy == "" {
		f.Draft.CreatedBy = middleware.UserID(r.Context())
	}

	created, err := h.courseService.CreateCourse(r.Context(), f.Draft)
	if err != nil {
		h.writeServiceError(w, r, err, "create course")
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// getCourse godoc
// @Summary Get a course
// @Description Retrieves a course by its ID along with an edit session seeded from it.
// @Tags courses
// @Produce json
// @Param courseID path string true "Course ID"
// @Success 200 {object} dto.CourseDetailDTO
// @Failure 404 {string} string "Course not found"
// @Failure 502 {string} string "Failed to retrieve course"
// @Router /courses/{courseID} [get]
func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.courseService.GetCourse(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		h.writeServiceError(w, r, err, "retrieve course")
		return
	}
	render.JSON(w, r, dto.CourseDetailDTO{
		Course: *course,
		Form:   dto.NewFormStateDTO(form.FromCourse(*course), true),
	})
}

// updateCourse godoc
// @Summary Update a course
// @Description Applies the raw form values to the stored course and saves the result.
// @Tags courses
// @Accept json
// @Produce json
// @Param courseID path string true "Course ID"
// @Param course body object true "Raw form values keyed by field name"
// @Success 200 {object} model.Course
// @Failure 400 {string} string "Invalid JSON payload"
// @Failure 404 {string} string "Course not found"
// @Failure 422 {object} dto.ValidationErrorDTO
// @Failure 502 {string} string "Failed to update course"
// @Router /courses/{courseID} [put]
func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	existing, err := h.courseService.GetCourse(r.Context(), courseID)
	if err != nil {
		h.writeServiceError(w, r, err, "retrieve course")
		return
	}
	f := form.FromCourse(*existing).Load(raw)
	if errs := f.Errors(); !errs.Empty() {
		writeValidationErrors(w, r, errs)
		return
	}

	updated, err := h.courseService.UpdateCourse(r.Context(), courseID, f.Draft)
	if err != nil {
		h.writeServiceError(w, r, err, "update course")
		return
	}
	render.JSON(w, r, updated)
}

// deleteCourse godoc
// @Summary Delete a course
// @Tags courses
// @Param courseID path string true "Course ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Course not found"
// @Failure 502 {string} string "Failed to delete course"
// @Router /courses/{courseID} [delete]
func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.courseService.DeleteCourse(r.Context(), chi.URLParam(r, "courseID")); err != nil {
		h.writeServiceError(w, r, err, "delete course")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// bulkDeleteCourses godoc
// @Summary Delete several courses
// @Description Deletes each listed course. Failures are reported per course.
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteDTO true "Course IDs"
// @Success 200 {object} dto.BulkDeleteResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 503 {object} dto.BulkDeleteResponseDTO "Interrupted; lists the courses handled so far"
// @Router /courses/bulk-delete [post]
func (h *CourseHandler) bulkDeleteCourses(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkDeleteDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.courseService.DeleteCourses(r.Context(), req.IDs)
	if err != nil {
		h.logger.Warn().Err(err).Int("count", len(req.IDs)).Msg("Bulk delete interrupted")
		if result == nil {
			http.Error(w, "Bulk delete interrupted", http.StatusServiceUnavailable)
			return
		}
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, result)
}

// createAudioUploadURL godoc
// @Summary Get an upload URL for an audio practice file
// @Description Returns a presigned PUT URL and the object URL to store in audioPracticeUrl.
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.AudioUploadRequestDTO true "File to upload"
// @Success 200 {object} dto.AudioUploadResponseDTO
// @Failure 400 {string} string "Invalid JSON payload, validation failed or unusable filename"
// @Failure 502 {string} string "Failed to create upload URL"
// @Failure 503 {string} string "Audio uploads are not configured"
// @Router /courses/audio-upload-url [post]
func (h *CourseHandler) createAudioUploadURL(w http.ResponseWriter, r *http.Request) {
	if h.audioService == nil {
		http.Error(w, "Audio uploads are not configured", http.StatusServiceUnavailable)
		return
	}
	var req dto.AudioUploadRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	upload, err := h.audioService.RequestUpload(r.Context(), req.Filename, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFilename) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error().Err(err).Str("filename", req.Filename).Msg("Failed to create upload URL")
		http.Error(w, "Failed to create upload URL", http.StatusBadGateway)
		return
	}
	render.JSON(w, r, upload)
}

func writeValidationErrors(w http.ResponseWriter, r *http.Request, errs form.Errors) {
	fields := make(map[string]string, len(errs))
	for f, msg := range errs {
		fields[f.String()] = msg
	}
	render.Status(r, http.StatusUnprocessableEntity)
	render.JSON(w, r, dto.ValidationErrorDTO{Message: "Course draft is invalid", Errors: fields})
}

// writeServiceError maps service and course service errors to a response.
func (h *CourseHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var blocked *service.SubmitBlockedError
	var apiErr *courseapi.APIError
	switch {
	case errors.As(err, &blocked):
		writeValidationErrors(w, r, blocked.Errors)
	case errors.Is(err, courseapi.ErrNotFound):
		http.Error(w, "Course not found", http.StatusNotFound)
	case errors.As(err, &apiErr) && isClientError(apiErr.StatusCode):
		fields := apiErr.FieldErrors
		if fields == nil {
			fields = map[string]string{}
		}
		render.Status(r, apiErr.StatusCode)
		render.JSON(w, r, dto.ValidationErrorDTO{Message: apiErr.Message, Errors: fields})
	default:
		h.logger.Error().Err(err).Str("action", action).Msg("Course service call failed")
		http.Error(w, "Failed to "+action, http.StatusBadGateway)
	}
}

func isClientError(status int) bool {
	return status == http.StatusBadRequest || status == http.StatusConflict || status == http.StatusUnprocessableEntity
}
