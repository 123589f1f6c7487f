package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/middleware"
	"github.com/SscSPs/general_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/whoami", func(c *gin.Context) {
		userID, _ := middleware.GetUserIDFromContext(c)
		c.String(http.StatusOK, userID)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(middleware.AuthMiddleware(testSecret))
	valid, _, err := utils.GenerateJWT("user-1", testSecret, time.Hour, "test")
	require.NoError(t, err)
	expired, _, err := utils.GenerateJWT("user-1", testSecret, -time.Hour, "test")
	require.NoError(t, err)
	foreign, _, err := utils.GenerateJWT("user-1", "other-secret", time.Hour, "test")
	require.NoError(t, err)
	early, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		NotBefore: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantBody: "Access token required"},
		{name: "bad format", header: "Token " + valid, wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusForbidden, wantBody: "Invalid or expired token"},
		{name: "not yet valid", header: "Bearer " + early, wantStatus: http.StatusForbidden, wantBody: "Invalid or expired token"},
		{name: "wrong secret", header: "Bearer " + foreign, wantStatus: http.StatusForbidden, wantBody: "Invalid or expired token"},
		{name: "valid", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "user-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestStructuredLoggingMiddleware_SetsRequestID(t *testing.T) {
	r := newRouter(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
}

func TestGetLoggerFromCtx_Fallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.NotNil(t, middleware.GetLoggerFromCtx(req.Context()))
}

func TestRateLimit(t *testing.T) {
	r := newRouter(middleware.RateLimit(middleware.NewLimiter("test", 2, time.Minute)))
	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestMetrics(t *testing.T) {
	m := middleware.NewMetrics()
	r := newRouter(m.Middleware())
	r.GET("/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/whoami", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `ledger_http_requests_total{method="GET",route="/whoami",status="200"} 1`))
}

func TestEventName(t *testing.T) {
	assert.Equal(t, "journal_entries_created", middleware.EventName(http.MethodPost, "/api/journal-entries"))
	assert.Equal(t, "accounts_deleted", middleware.EventName(http.MethodDelete, "/api/accounts/:id"))
	assert.Equal(t, "ledger_demo_created", middleware.EventName(http.MethodPost, "/api/ledger/demo"))
	assert.Equal(t, "", middleware.EventName(http.MethodGet, "/api/accounts"))
	assert.Equal(t, "", middleware.EventName(http.MethodPost, ""))
}
