package middleware

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// SetSentryAccount tags the request's Sentry scope with the signed-in
// account. It is a no-op when Sentry is not attached.
func SetSentryAccount(ctx context.Context, accountID, userID string) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		return
	}
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetUser(sentry.User{ID: accountID, Username: userID})
		scope.SetTag("account_id", accountID)
	})
}
