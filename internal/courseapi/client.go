package courseapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coursedesk/internal/model"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned when the course service has no course with the given ID.
var ErrNotFound = errors.New("course not found")

// APIError is a non-2xx answer from the course service.
type APIError struct {
	StatusCode  int               `json:"-"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("course service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("course service returned status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the remote course storage service.
type Client interface {
	ListCourses(ctx context.Context) ([]model.Course, error)
	GetCourse(ctx context.Context, courseID string) (*model.Course, error)
	CreateCourse(ctx context.Context, data model.CourseFormData) (*model.Course, error)
	UpdateCourse(ctx context.Context, courseID string, data model.CourseFormData) (*model.Course, error)
	DeleteCourse(ctx context.Context, courseID string) error
}

type httpClient struct {
	baseURL string
	token   string
	client  *http.Client
	logger  zerolog.Logger
}

// NewClient creates a Client for the service at baseURL. token is sent as a
// bearer token when non-empty.
func NewClient(baseURL, token string, timeout time.Duration, logger zerolog.Logger) Client {
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("service", "CourseAPIClient").Logger(),
	}
}

func (c *httpClient) ListCourses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if err := c.do(ctx, http.MethodGet, "/courses", nil, &courses); err != nil {
		return nil, err
	}
	if courses == nil {
		return []model.Course{}, nil
	}
	return courses, nil
}

func (c *httpClient) GetCourse(ctx context.Context, courseID string) (*model.Course, error) {
	var course model.Course
	if err := c.do(ctx, http.MethodGet, coursePath(courseID), nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *httpClient) CreateCourse(ctx context.Context, data model.CourseFormData) (*model.Course, error) {
	var course model.Course
	if err := c.do(ctx, http.MethodPost, "/courses", data, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *httpClient) UpdateCourse(ctx context.Context, courseID string, data model.CourseFormData) (*model.Course, error) {
	var course model.Course
	if err := c.do(ctx, http.MethodPut, coursePath(courseID), data, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *httpClient) DeleteCourse(ctx context.Context, courseID string) error {
	return c.do(ctx, http.MethodDelete, coursePath(courseID), nil, nil)
}

func coursePath(courseID string) string {
	return "/courses/" + url.PathEscape(courseID)
}

func (c *httpClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("making request to course service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		bodyBytes, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if readErr != nil {
			c.logger.Warn().Err(readErr).Int("status_code", resp.StatusCode).Msg("Failed to read error body from course service")
			return apiErr
		}
		if json.Unmarshal(bodyBytes, apiErr) != nil {
			apiErr.Message = strings.TrimSpace(string(bodyBytes))
		}
		c.logger.Error().
			Int("status_code", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Str("error_body", apiErr.Message).
			Msg("Course service returned error")
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding course service response: %w", err)
	}
	return nil
}
