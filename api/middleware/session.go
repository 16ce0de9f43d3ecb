package middleware

import (
	"net/http"
	"strings"

	"github.com/emprendia/emprendia-backend/pkg/auth/session"
	"github.com/emprendia/emprendia-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

// BrowsingSession assigns every request an anonymous session identifier.
// Visitors send it back on subsequent requests; it scopes session-only
// favorites, view dedupe and the active-users counter. The header is echoed
// so clients can pick up a generated id.
func BrowsingSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(sessionIDHeader))
			if sessionID == "" {
				sessionID = session.NewSessionID()
			}
			w.Header().Set(sessionIDHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
