package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"coursedesk/internal/catalog"
	"coursedesk/internal/courseapi"
	"coursedesk/internal/form"
	"coursedesk/internal/model"
	"coursedesk/internal/pubsub"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// SubmitBlockedError is returned when a draft fails validation. The course
// service is not called in that case.
type SubmitBlockedError struct {
	Errors form.Errors
}

func (e *SubmitBlockedError) Error() string {
	return fmt.Sprintf("course draft has %d invalid field(s)", len(e.Errors))
}

// BulkDeleteResult reports the outcome of DeleteCourses per course.
type BulkDeleteResult struct {
	Deleted []string          `json:"deleted"`
	Failed  map[string]string `json:"failed"`
}

// CourseService defines the interface for course operations
type CourseService interface {
	// Browse fetches the whole collection and returns the page for spec as seen by view.
	Browse(ctx context.Context, view catalog.View, spec catalog.Spec) (catalog.Page, error)
	GetCourse(ctx context.Context, courseID string) (*model.Course, error)
	CreateCourse(ctx context.Context, draft model.CourseFormData) (*model.Course, error)
	UpdateCourse(ctx context.Context, courseID string, draft model.CourseFormData) (*model.Course, error)
	DeleteCourse(ctx context.Context, courseID string) error
	DeleteCourses(ctx context.Context, courseIDs []string) (*BulkDeleteResult, error)
}

// courseService is the implementation of CourseService
type courseService struct {
	api         courseapi.Client
	publisher   pubsub.Publisher
	eventsTopic string
	workers     int
	now         func() time.Time
	logger      zerolog.Logger
}

// NewCourseService creates a new CourseService. Events are skipped when
// eventsTopic is empty.
func NewCourseService(api courseapi.Client, publisher pubsub.Publisher, eventsTopic string, workers int, logger zerolog.Logger) CourseService {
	if publisher == nil {
		publisher = pubsub.NoopPublisher{}
	}
	if workers < 1 {
		workers = 1
	}
	return &courseService{
		api:         api,
		publisher:   publisher,
		eventsTopic: eventsTopic,
		workers:     workers,
		now:         time.Now,
		logger:      logger.With().Str("service", "CourseService").Logger(),
	}
}

func (s *courseService) Browse(ctx context.Context, view catalog.View, spec catalog.Spec) (catalog.Page, error) {
	courses, err := s.api.ListCourses(ctx)
	if err != nil {
		return catalog.Page{}, fmt.Errorf("listing courses: %w", err)
	}
	return catalog.Query(courses, view.Apply(spec)), nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID string) (*model.Course, error) {
	return s.api.GetCourse(ctx, courseID)
}

func (s *courseService) CreateCourse(ctx context.Context, draft model.CourseFormData) (*model.Course, error) {
	draft = form.Normalize(draft)
	if errs := form.Evaluate(draft); !errs.Empty() {
		return nil, &SubmitBlockedError{Errors: errs}
	}
	created, err := s.api.CreateCourse(ctx, draft)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, pubsub.CourseCreated, created.ID, created.Code)
	return created, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, courseID string, draft model.CourseFormData) (*model.Course, error) {
	draft = form.Normalize(draft)
	if errs := form.Evaluate(draft); !errs.Empty() {
		return nil, &SubmitBlockedError{Errors: errs}
	}
	updated, err := s.api.UpdateCourse(ctx, courseID, draft)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, pubsub.CourseUpdated, updated.ID, updated.Code)
	return updated, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, courseID string) error {
	if err := s.api.DeleteCourse(ctx, courseID); err != nil {
		return err
	}
	s.publish(ctx, pubsub.CourseDeleted, courseID, "")
	return nil
}

// DeleteCourses deletes every course it can. A failing course, including one
// that times out, is recorded in Failed and does not stop the others. When
// ctx ends first the courses not yet attempted are skipped and the partial
// result is returned with the context error.
func (s *courseService) DeleteCourses(ctx context.Context, courseIDs []string) (*BulkDeleteResult, error) {
	done := make([]bool, len(courseIDs))
	failed := map[string]string{}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, id := range courseIDs {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if err := s.DeleteCourse(ctx, id); err != nil {
				mu.Lock()
				failed[id] = err.Error()
				mu.Unlock()
				return nil
			}
			done[i] = true
			return nil
		})
	}
	_ = g.Wait()

	result := &BulkDeleteResult{Deleted: []string{}, Failed: failed}
	for i, id := range courseIDs {
		if done[i] {
			result.Deleted = append(result.Deleted, id)
		}
	}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("bulk delete interrupted: %w", err)
	}
	return result, nil
}

func (s *courseService) publish(ctx context.Context, typ pubsub.EventType, courseID, code string) {
	if s.eventsTopic == "" {
		return
	}
	payload, err := pubsub.CourseEvent{Type: typ, CourseID: courseID, CourseCode: code, OccurredAt: s.now()}.Encode()
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to encode course event")
		return
	}
	if _, err := s.publisher.Publish(ctx, s.eventsTopic, payload); err != nil {
		s.logger.Warn().Err(err).Str("course_id", courseID).Str("event", string(typ)).Msg("Failed to publish course event")
	}
}
