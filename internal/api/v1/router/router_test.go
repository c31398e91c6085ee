package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"coursedesk/internal/catalog"
	"coursedesk/internal/config"
	"coursedesk/internal/service"

	"github.com/rs/zerolog"
)

func TestHealthzAndCORS(t *testing.T) {
	cfg := &config.Config{AdminPageSize: 6, CatalogPageSize: 12, AllowedOrigins: []string{"http://localhost:3000"}}
	h := NewHandler(cfg, Services{}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected CORS header for allowed origin, got %q", got)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected request ID header")
	}
}

func TestUnknownRoute(t *testing.T) {
	h := NewHandler(&config.Config{}, Services{}, zerolog.Nop())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/unknown", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestManagementRoutesRequireToken(t *testing.T) {
	cfg := &config.Config{AdminPageSize: 6, CatalogPageSize: 12, JWTSecret: "top-secret"}
	h := NewHandler(cfg, Services{}, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/courses", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/courses/options", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected options to stay public, got %d", rec.Code)
	}
}

type panickingCourses struct {
	service.CourseService
}

func (panickingCourses) Browse(context.Context, catalog.View, catalog.Spec) (catalog.Page, error) {
	panic("boom")
}

func TestPanicIsRecovered(t *testing.T) {
	cfg := &config.Config{AdminPageSize: 6, CatalogPageSize: 12}
	h := NewHandler(cfg, Services{Courses: panickingCourses{}}, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/catalog/courses", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 after panic, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected request ID header on recovered response")
	}
}
