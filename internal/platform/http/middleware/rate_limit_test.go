package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"health_backend/internal/platform/apperror"
)

// fakeStore counts hits per key without expiry.
type fakeStore struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
}

func (s *fakeStore) Incr(_ context.Context, key string, window time.Duration) (int, time.Duration, error) {
	if s.err != nil {
		return 0, 0, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = map[string]int{}
	}
	s.counts[key]++
	return s.counts[key], window, nil
}

func newLimitedRouter(store Store, max int) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(quietLogger(), false), RateLimit(store, max, time.Minute, KeyByIP(), quietLogger()))
	r.GET("/users", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestRateLimit sets the quota headers and answers 429 past the limit.
func TestRateLimit(t *testing.T) {
	r := newLimitedRouter(&fakeStore{}, 2)

	first := hit(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", first.Header().Get("X-RateLimit-Reset"))

	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.1:1234").Code)

	blocked := hit(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "0", blocked.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))
	body := decodeError(t, blocked)
	assert.Equal(t, apperror.TitleTooManyRequests, body.Title)
	assert.Equal(t, RateLimitMessage, body.Details)

	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.2:1234").Code, "other clients are counted separately")
}

// TestRateLimit_FailsOpen lets requests through when the store errors.
func TestRateLimit_FailsOpen(t *testing.T) {
	r := newLimitedRouter(&fakeStore{err: errors.New("redis: connection refused")}, 1)

	for i := 0; i < 3; i++ {
		w := hit(r, "10.0.0.1:1234")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

// TestRateLimit_DisabledWithoutStore is a no-op without a store.
func TestRateLimit_DisabledWithoutStore(t *testing.T) {
	r := newLimitedRouter(nil, 1)

	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.1:1234").Code)
}
