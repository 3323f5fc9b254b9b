package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gradtracker/internal/app/controllers"
	"github.com/yigit/gradtracker/internal/app/models"
	"github.com/yigit/gradtracker/internal/app/services"
	"github.com/yigit/gradtracker/internal/middleware"
)

type stubService struct{}

func (stubService) Register(context.Context, models.GraduateSubmission) (int64, error) {
	return 1, nil
}

func (stubService) Search(context.Context, models.GraduateFilter) ([]models.GraduateSummary, error) {
	return []models.GraduateSummary{}, nil
}

func (stubService) Verify(context.Context, int64, string) (*services.VerifyResult, error) {
	return &services.VerifyResult{}, nil
}

func newRouter(verifyLimiter gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(middleware.MethodNotAllowed())
	router.NoRoute(middleware.NoRoute())
	SetupRouter(router,
		controllers.NewGraduateController(stubService{}),
		controllers.NewHealthController(nil),
		verifyLimiter,
	)
	return router
}

func TestSetupRouter_Paths(t *testing.T) {
	router := newRouter(middleware.RateLimit(0))

	tests := []struct {
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{http.MethodPost, "/api/register", `{}`, http.StatusOK},
		{http.MethodPost, "/api/search", `{"name":"li"}`, http.StatusOK},
		{http.MethodGet, "/api/search?name=li", "", http.StatusOK},
		{http.MethodPost, "/api/verify", `{"id":1,"answer":"a"}`, http.StatusOK},
		{http.MethodPost, "/.netlify/functions/save-graduate", `{}`, http.StatusOK},
		{http.MethodPost, "/.netlify/functions/search-graduate", `{}`, http.StatusOK},
		{http.MethodPost, "/.netlify/functions/verify-answer", `{"id":"1","answer":"a"}`, http.StatusOK},
		{http.MethodGet, "/.netlify/functions/save-graduate", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/verify", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/ping", "", http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestSetupRouter_VerifyIsRateLimited(t *testing.T) {
	router := newRouter(middleware.RateLimit(1))

	send := func(path string) int {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"id":1,"answer":"a"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	if got := send("/api/verify"); got != http.StatusOK {
		t.Fatalf("first verify = %d", got)
	}
	// Both verify paths share one limiter
	if got := send("/.netlify/functions/verify-answer"); got != http.StatusTooManyRequests {
		t.Fatalf("second verify = %d, want 429", got)
	}
	if got := send("/api/search"); got != http.StatusOK {
		t.Errorf("search must not be limited, got %d", got)
	}
}
