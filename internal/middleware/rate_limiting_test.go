package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/fitxp/internal/middleware"
	"github.com/2beens/fitxp/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := NewMockRequestRateLimiter(ctrl)
	metricsManager := metrics.NewTestManager()

	called := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called++
	})
	handler := middleware.RateLimit(limiter, "login", 15, metricsManager)(next)

	limit := redis_rate.PerMinute(15)
	gomock.InOrder(
		limiter.EXPECT().Allow(gomock.Any(), "login:192.0.2.1", limit).Return(&redis_rate.Result{Allowed: 1}, nil),
		limiter.EXPECT().Allow(gomock.Any(), "login:192.0.2.1", limit).Return(&redis_rate.Result{Allowed: 0, RetryAfter: 3 * time.Second}, nil),
		limiter.EXPECT().Allow(gomock.Any(), "login:192.0.2.1", limit).Return(nil, errors.New("redis down")),
	)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/a/login", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/a/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "retry after 3 seconds")

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/a/login", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	assert.Equal(t, 1, called)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterRateLimitedRequests))
}
