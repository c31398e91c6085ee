package courseapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coursedesk/internal/model"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, h http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "secret-token", 5*time.Second, zerolog.Nop())
}

func TestListCourses(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/courses" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer secret-token" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode([]model.Course{{ID: "1", Code: "ENG-101"}, {ID: "2", Code: "SPA-101"}})
	})

	courses, err := c.ListCourses(context.Background())
	if err != nil {
		t.Fatalf("ListCourses returned error: %v", err)
	}
	if len(courses) != 2 || courses[1].Code != "SPA-101" {
		t.Errorf("unexpected courses %+v", courses)
	}
}

func TestListCoursesNullBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	})
	courses, err := c.ListCourses(context.Background())
	if err != nil || courses == nil || len(courses) != 0 {
		t.Errorf("expected empty slice, got %v (%v)", courses, err)
	}
}

func TestGetCourseNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/courses/abc" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		http.NotFound(w, r)
	})
	if _, err := c.GetCourse(context.Background(), "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateCourseSendsDraft(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var data model.CourseFormData
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			t.Errorf("decoding body: %v", err)
			return
		}
		if r.Method != http.MethodPost || data.Code != "ENG-101" || data.DurationWeeks != 8 {
			t.Errorf("unexpected request %s %+v", r.Method, data)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Course{ID: "new-id", Code: data.Code, CreatedAt: time.Now()})
	})

	created, err := c.CreateCourse(context.Background(), model.CourseFormData{Code: "ENG-101", DurationWeeks: 8})
	if err != nil {
		t.Fatalf("CreateCourse returned error: %v", err)
	}
	if created.ID != "new-id" {
		t.Errorf("expected assigned ID, got %q", created.ID)
	}
}

func TestUpdateCourseValidationError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid course","errors":{"code":"already taken"}}`))
	})

	_, err := c.UpdateCourse(context.Background(), "1", model.CourseFormData{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity || apiErr.FieldErrors["code"] != "already taken" {
		t.Errorf("unexpected error %+v", apiErr)
	}
}

func TestDeleteCourse(t *testing.T) {
	var called bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = r.Method == http.MethodDelete && r.URL.Path == "/courses/42"
		w.WriteHeader(http.StatusNoContent)
	})
	if err := c.DeleteCourse(context.Background(), "42"); err != nil {
		t.Fatalf("DeleteCourse returned error: %v", err)
	}
	if !called {
		t.Error("expected DELETE /courses/42")
	}
}

func TestPlainTextServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	err := c.DeleteCourse(context.Background(), "1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "boom" {
		t.Fatalf("expected plain text message, got %v", err)
	}
}
