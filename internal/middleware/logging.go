package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mtilda/chipin/internal/metrics"
)

// RequestLogger logs every request at completion and records the request
// counter and latency histogram.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		// Label metrics with the chi route pattern rather than the raw
		// path to keep cardinality bounded.
		pattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}

		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", elapsed.Milliseconds(),
			"remote_addr", r.RemoteAddr,
			"user_id", GetUserID(r.Context()),
		)

		metrics.HTTPRequests.WithLabelValues(r.Method, pattern, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, pattern).Observe(elapsed.Seconds())
	})
}
