package webapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/zurustar/tasklogger/internal/logging"
	"github.com/zurustar/tasklogger/internal/metrics"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the request id stored by the middleware, or ""
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestIDMiddleware keeps a caller supplied id or generates one
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// rateLimitMiddleware answers 429 once the token bucket is empty. A zero limit disables it.
func rateLimitMiddleware(limit, burst int, next http.Handler) http.Handler {
	if limit <= 0 {
		return next
	}
	limiter := rate.NewLimiter(rate.Limit(limit), burst)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// metricsMiddleware records prometheus request metrics and a debug access line
func metricsMiddleware(logger logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		metrics.HttpRequestsTotal.WithLabelValues(strconv.Itoa(rec.status), r.Method).Inc()
		metrics.HttpRequestDuration.WithLabelValues(r.Method).Observe(elapsed.Seconds())

		logger.Debug("HTTP request served",
			logging.MethodField(r.Method),
			logging.StringField("path", r.URL.Path),
			logging.IntField("status", rec.status),
			logging.AnyField("duration", elapsed),
			logging.RequestIDField(RequestIDFromContext(r.Context())))
	})
}
