package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Jeffreasy/LaventeCareTestAccount/internal/api/helpers"
	"github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs one line per completed request. Slow responses are
// expected here since the account service simulates latency.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			level := slog.LevelInfo
			if ww.Status() >= 500 {
				level = slog.LevelError
			} else if ww.Status() >= 400 {
				level = slog.LevelWarn
			}

			logger.Log(r.Context(), level, "http_request_completed",
				"status", ww.Status(),
				"method", r.Method,
				"path", r.URL.Path,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"req_id", middleware.GetReqID(r.Context()),
				"ip", helpers.GetRealIP(r).String(),
			)
		})
	}
}
