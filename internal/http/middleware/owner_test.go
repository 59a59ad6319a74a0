package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tasktrack/internal/auth"

	"github.com/gin-gonic/gin"
)

func guardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/tasks/:username", OwnerGuard(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestOwnerGuardStatuses(t *testing.T) {
	auth.InitJWT("guard-test-secret")
	r := guardedRouter()

	token, err := auth.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{name: "no header passes", path: "/tasks/alice", header: "", want: http.StatusOK},
		{name: "matching token", path: "/tasks/alice", header: "Bearer " + token, want: http.StatusOK},
		{name: "token for another owner", path: "/tasks/bob", header: "Bearer " + token, want: http.StatusUnauthorized},
		{name: "invalid token", path: "/tasks/alice", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "non-bearer scheme", path: "/tasks/alice", header: "Basic Zm9v", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	// generated when absent
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("no request id generated")
	}

	// caller-supplied id is kept
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "fixed-id" {
		t.Errorf("request id = %q, want fixed-id", got)
	}
}
