package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gradtracker/internal/app/models/dto"
	"github.com/yigit/gradtracker/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	if resp.Success || resp.Error == nil {
		t.Fatalf("not an error response: %s", w.Body.String())
	}
	return resp
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
		wantField  string
	}{
		{"field error", apperrors.NewFieldError("graduation_year", "bad year"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "graduation_year"},
		{"wrapped field error", fmt.Errorf("register: %w", apperrors.NewFieldError("name", "name is required")), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "name"},
		{"not found", apperrors.ErrGraduateNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, ""},
		{"duplicate name", apperrors.ErrGraduateNameExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "name"},
		{"rate limited", apperrors.ErrRateLimited, http.StatusTooManyRequests, dto.ErrorCodeRateLimited, ""},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, dto.ErrorCodePayloadTooLarge, ""},
		{"bad request", apperrors.NewBadRequestError("nope"), http.StatusBadRequest, dto.ErrorCodeInvalidRequest, ""},
		{"generic not found", apperrors.NewResourceNotFoundError("no such page"), http.StatusNotFound, dto.ErrorCodeResourceNotFound, ""},
		{"generic conflict", apperrors.NewConflictError("already there"), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, ""},
		{"undecryptable", fmt.Errorf("%w: destination", apperrors.ErrUndecryptable), http.StatusInternalServerError, dto.ErrorCodeInternalServer, ""},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", got.Status, tt.wantStatus)
			}
			if got.Detail.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", got.Detail.Code, tt.wantCode)
			}
			if got.Detail.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", got.Detail.Field, tt.wantField)
			}
		})
	}
}

func TestMapError_CustomMessages(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"not found message": {apperrors.NewResourceNotFoundError("no such page"), "no such page"},
		"conflict message":  {apperrors.NewConflictError("already there"), "already there"},
		"graduate default":  {apperrors.ErrGraduateNotFound, "Graduate record not found"},
		"conflict default":  {apperrors.ErrConflict, "Resource already exists"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := MapError(tt.err).Detail.Message; got != tt.want {
				t.Errorf("Message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandleAPIError_HidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, errors.New("pq: password authentication failed for user admin"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("internal error leaked: %s", w.Body.String())
	}
	if len(c.Errors) != 1 {
		t.Errorf("error not recorded on context: %v", c.Errors)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	if generated == "" || w.Body.String() != generated {
		t.Errorf("generated id %q, body %q", generated, w.Body.String())
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("incoming id not propagated: %q", got)
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(32))
	r.POST("/", func(c *gin.Context) {
		var body map[string]string
		if !BindJSON(c, &body) {
			return
		}
		c.JSON(http.StatusOK, body)
	})

	small := `{"a":"b"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(small)))
	if w.Code != http.StatusOK {
		t.Fatalf("small body status = %d: %s", w.Code, w.Body.String())
	}

	large := `{"a":"` + strings.Repeat("x", 100) + `"}`
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(large)))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("large body status = %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Error.Code != dto.ErrorCodePayloadTooLarge {
		t.Errorf("code = %s", resp.Error.Code)
	}

	// Unknown length: the limit is enforced while reading
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(large))
	req.ContentLength = -1
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("streamed large body status = %d", w.Code)
	}
}

func TestBindJSON_EmptyAndMalformed(t *testing.T) {
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var body struct {
			Name string `json:"name"`
		}
		if !BindJSON(c, &body) {
			return
		}
		c.String(http.StatusOK, "name=%s", body.Name)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")))
	if w.Code != http.StatusOK || w.Body.String() != "name=" {
		t.Errorf("empty body: %d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{broken")))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body status = %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Error.Code != dto.ErrorCodeInvalidRequest {
		t.Errorf("code = %s", resp.Error.Code)
	}
}

func TestMethodNotAllowedAndNoRoute(t *testing.T) {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(MethodNotAllowed())
	r.NoRoute(NoRoute())
	r.POST("/api/register", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/register", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
	if resp := decodeError(t, w); resp.Error.Code != dto.ErrorCodeMethodNotAllowed {
		t.Errorf("code = %s", resp.Error.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(3)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	l.lastSweep = now

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("fourth request within the burst should be rejected")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatal("other clients have their own bucket")
	}

	// One token refills every 20s
	now = now.Add(21 * time.Second)
	if !l.Allow("10.0.0.1") {
		t.Fatal("token should have refilled")
	}

	// Idle visitors are swept
	now = now.Add(visitorTTL + time.Minute)
	l.Allow("10.0.0.3")
	l.mu.Lock()
	_, stale := l.visitors["10.0.0.2"]
	l.mu.Unlock()
	if stale {
		t.Error("idle visitor was not swept")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.POST("/verify", RateLimit(1), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/verify", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/verify", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", w.Header().Get("Retry-After"))
	}
}

func TestRateLimitDisabled(t *testing.T) {
	r := gin.New()
	r.POST("/verify", RateLimit(0), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/verify", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, w.Code)
		}
	}
}
