package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BeautyService/pkg/logger"
	"github.com/m04kA/SMC-BeautyService/pkg/metrics"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuth(t *testing.T) {
	var gotID int64
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserID(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		status int
		userID int64
	}{
		{"valid", "42", http.StatusOK, 42},
		{"missing", "", http.StatusUnauthorized, 0},
		{"not a number", "abc", http.StatusUnauthorized, 0},
		{"negative", "-5", http.StatusUnauthorized, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.userID, gotID)
		})
	}
}

func TestGetUserID_Missing(t *testing.T) {
	_, ok := GetUserID(context.Background())
	assert.False(t, ok)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/orders/{orderId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/2", nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/orders/{orderId}", "404")))
}

func TestMetricsMiddleware_Disabled(t *testing.T) {
	rec := httptest.NewRecorder()
	MetricsMiddleware(nil)(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

type fakeCounter struct {
	counts map[string]int64
	err    error
}

func (c *fakeCounter) Incr(_ context.Context, key string) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.counts[key]++
	return c.counts[key], nil
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int64{}}
	h := NewRateLimiter(counter, 2, "orders", false, logger.NewNop()).Middleware(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req = req.WithContext(WithUserID(req.Context(), 7))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{200, 200, 429}, codes)
	assert.Equal(t, int64(3), counter.counts["orders:user:7"])
}

func TestRateLimiter_CounterFailure(t *testing.T) {
	counter := &fakeCounter{err: errors.New("redis down")}

	rec := httptest.NewRecorder()
	NewRateLimiter(counter, 2, "", true, logger.NewNop()).Middleware(http.HandlerFunc(okHandler)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	NewRateLimiter(counter, 2, "", false, logger.NewNop()).Middleware(http.HandlerFunc(okHandler)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestByUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	req.Header.Set(UserIDHeader, "12")
	assert.Equal(t, "ip:10.0.0.1", ByUser(req))

	req = req.WithContext(WithUserID(req.Context(), 12))
	assert.Equal(t, "user:12", ByUser(req))
}

func TestByClientIP_IgnoresClientHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders/1/approve", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	req.Header.Set(UserIDHeader, "12")
	req.Header.Set("X-Forwarded-For", "203.0.113.9")

	assert.Equal(t, "ip:10.0.0.1", ByClientIP("")(req))
}

func TestByClientIP_TrustedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders/1/approve", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	key := ByClientIP("X-Forwarded-For")
	assert.Equal(t, "ip:10.0.0.1", key(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.1, 203.0.113.9")
	assert.Equal(t, "ip:203.0.113.9", key(req))
}

func TestRateLimiter_RotatingHeadersShareWindow(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int64{}}
	h := NewRateLimiter(counter, 2, "links", false, logger.NewNop()).
		KeyedBy(ByClientIP("")).
		Middleware(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/orders/1/approve", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set(UserIDHeader, strconv.Itoa(i+1))
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{200, 200, 429}, codes)
	assert.Equal(t, int64(3), counter.counts["links:ip:10.0.0.1"])
}
