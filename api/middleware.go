/*
middleware.go - Session authentication middleware

PURPOSE:
  Resolves the Bearer token on incoming requests to a user profile and
  stashes it on the request context. Everything under /api except the login
  endpoint runs behind this.

TOKEN FORMAT:
  Authorization: Bearer <token>
  Tokens are opaque session IDs issued by auth.Service.Login. There is no
  signing or expiry; sessions live until logout or a server restart with an
  in-memory store.

SEE ALSO:
  - auth/service.go: Session issue and lookup
  - handlers.go: userFrom to read the resolved user
*/
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/traveldesk/sales-engine/booking"
)

type contextKey string

const userContextKey contextKey = "user"

// Authenticate resolves the Bearer token and attaches the user to the
// request context. Requests without a valid session get 401.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Missing bearer token", nil)
			return
		}

		user, err := h.Auth.CurrentUser(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired session", err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		ctx = context.WithValue(ctx, tokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

const tokenContextKey contextKey = "token"

// userFrom returns the authenticated user stashed by Authenticate, or nil.
func userFrom(ctx context.Context) *booking.User {
	u, _ := ctx.Value(userContextKey).(*booking.User)
	return u
}

// tokenFrom returns the raw session token, for logout.
func tokenFrom(ctx context.Context) string {
	t, _ := ctx.Value(tokenContextKey).(string)
	return t
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
