package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/Jeffreasy/LaventeCareTestAccount/internal/api/helpers"
	"github.com/getsentry/sentry-go"
)

// PanicRecovery logs a panic with its stack, reports it to Sentry when a hub
// is attached, and answers 500.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}

				slog.Error("panic_recovered",
					"error", err,
					"path", r.URL.Path,
					"method", r.Method,
					"stack", string(debug.Stack()),
				)

				if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
					hub.Recover(err)
				}

				helpers.RespondError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
