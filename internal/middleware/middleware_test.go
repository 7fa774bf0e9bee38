package api_middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	api_middleware "github.com/Lutefd/crypto-api/internal/middleware"
	"github.com/stretchr/testify/assert"
)

func serveFrom(handler http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/currencies", nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr.Code
}

func TestRateLimitMiddleware(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		burst    int
		requests []string
		expected []int
	}{
		{
			name:     "Under rate limit",
			burst:    3,
			requests: []string{"192.168.0.1:1000", "192.168.0.1:1001", "192.168.0.1:1002"},
			expected: []int{http.StatusOK, http.StatusOK, http.StatusOK},
		},
		{
			name:     "Exceeds rate limit",
			burst:    1,
			requests: []string{"192.168.0.1:1000", "192.168.0.1:1001"},
			expected: []int{http.StatusOK, http.StatusTooManyRequests},
		},
		{
			name:     "Clients are limited separately",
			burst:    1,
			requests: []string{"192.168.0.1:1000", "192.168.0.2:1000", "192.168.0.1:1001"},
			expected: []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := api_middleware.NewRateLimiter(0.001, tt.burst)
			handler := limiter.RateLimitMiddleware(nextHandler)

			for i, addr := range tt.requests {
				assert.Equal(t, tt.expected[i], serveFrom(handler, addr), "request %d from %s", i, addr)
			}
		})
	}
}

func TestNewRateLimiter_Defaults(t *testing.T) {
	limiter := api_middleware.NewRateLimiter(0, 0)
	handler := limiter.RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	assert.Equal(t, http.StatusOK, serveFrom(handler, "10.0.0.1:5000"))
}
