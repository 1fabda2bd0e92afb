package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/portfolio/backend/internal/legal"
	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/model"
)

func newTestRouter(svc *mockContactService) (http.Handler, *metrics.Metrics) {
	m := metrics.New()
	return NewRouter(RouterConfig{
		Base:    New(&mockDB{}, "*"),
		Contact: NewContactHandler(svc, m),
		Legal:   NewLegalHandler(LegalConfig{Fallback: legal.Docs()}),
		Metrics: m,
	}), m
}

func TestRouter_Routes(t *testing.T) {
	router, _ := newTestRouter(&mockContactService{})

	tests := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/api/health", "", http.StatusOK},
		{http.MethodPost, "/api/contact", validContactBody, http.StatusOK},
		{http.MethodGet, "/api/legal/privacy", "", http.StatusOK},
		{http.MethodGet, "/api/legal/terms", "", http.StatusOK},
		{http.MethodGet, "/api/legal/cookies", "", http.StatusNotFound},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodOptions, "/api/contact", "", http.StatusNoContent},
		{http.MethodGet, "/api/contact", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/messages", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d, body: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	router, _ := newTestRouter(&mockContactService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	for _, name := range []string{"X-Content-Type-Options", "Access-Control-Allow-Origin", "X-Request-ID"} {
		if rec.Header().Get(name) == "" {
			t.Errorf("expected header %s to be set", name)
		}
	}
}

func TestRouter_ContactRequestIDReachesService(t *testing.T) {
	var seen string
	router, _ := newTestRouter(&mockContactService{
		submitFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			seen = RequestIDFromContext(ctx)
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(validContactBody))
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if seen != "req-42" {
		t.Errorf("expected request id req-42 in service context, got %q", seen)
	}
}

func TestRouter_MetricsLabelledByPattern(t *testing.T) {
	router, m := newTestRouter(&mockContactService{})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/legal/terms", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	want := `http_requests_total{method="GET",route="GET /api/legal/{type}",status="200"} 1`
	if !strings.Contains(rec.Body.String(), want) {
		t.Errorf("expected %q in exposition", want)
	}
}
