package api

import (
	"net/http"

	"github.com/Jeffreasy/LaventeCareTestAccount/internal/api/helpers"
)

// HealthHandler reports liveness together with the fixture's sign-in state,
// which UI drivers use to wait for Configure to finish.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		helpers.RespondJSON(w, http.StatusOK, map[string]any{
			"status":    "healthy",
			"signed_in": s.Account.SignedIn(),
			"alert":     s.Alerts.Presenting(),
		})
	}
}
