package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"task-api/internal/config"
	"task-api/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthenticator map[string]*utils.JWTClaims

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*utils.JWTClaims, error) {
	if claims, ok := f[token]; ok {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

type fakeLimiter struct {
	allowed  bool
	err      error
	resetErr error
	keys     []string
	resets   []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allowed, f.err
}

func (f *fakeLimiter) Reset(_ context.Context, key string) error {
	f.resets = append(f.resets, key)
	return f.resetErr
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "admin": IsAdmin(c)})
	})
	r.GET("/", handlers...)
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	auth := fakeAuthenticator{
		"user":  {UserID: 1},
		"admin": {UserID: 2, IsAdmin: true},
	}
	r := newEngine(AuthMiddleware(auth))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic user", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer user", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, do(r, tt.header).Code)
		})
	}

	w := do(r, "Bearer user")
	assert.JSONEq(t, `{"user_id":1,"admin":false}`, w.Body.String())
}

func TestAdminMiddleware(t *testing.T) {
	auth := fakeAuthenticator{
		"user":  {UserID: 1},
		"admin": {UserID: 2, IsAdmin: true},
	}
	r := newEngine(AuthMiddleware(auth), AdminMiddleware())

	assert.Equal(t, http.StatusForbidden, do(r, "Bearer user").Code)
	assert.Equal(t, http.StatusOK, do(r, "Bearer admin").Code)
}

func TestRateLimit(t *testing.T) {
	limiter := &fakeLimiter{allowed: true}
	r := newEngine(RateLimit(limiter, "login", quietLogger()))
	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, []string{"login:192.0.2.1"}, limiter.keys)

	limiter.allowed = false
	assert.Equal(t, http.StatusTooManyRequests, do(r, "").Code)

	limiter.err = errors.New("redis down")
	assert.Equal(t, http.StatusOK, do(r, "").Code)
}

func TestResetLimitOnSuccess(t *testing.T) {
	limiter := &fakeLimiter{}
	status := http.StatusUnauthorized
	r := gin.New()
	r.POST("/login", ResetLimitOnSuccess(limiter, "auth", quietLogger()), func(c *gin.Context) {
		c.Status(status)
	})

	send := func() int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, send())
	assert.Empty(t, limiter.resets)

	status = http.StatusOK
	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, []string{"auth:192.0.2.1"}, limiter.resets)

	// a failing reset does not change the response
	limiter.resetErr = errors.New("redis down")
	assert.Equal(t, http.StatusOK, send())
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{CORS: config.CORSConfig{
		Origins:      []string{"http://app.local"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Authorization"},
	}}
	r := gin.New()
	r.Use(CORS(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://app.local")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://app.local", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.local")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
