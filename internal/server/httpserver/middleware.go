package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/common"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// RequireAuth verifies the bearer token and stores the user id in the
// request context. Every failure answers the same 401 body.
func (s *HTTPServer) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get(common.AuthorizationHeaderName))
		if !ok {
			respondUnauthorized(w)
			return
		}

		userID, err := s.deps.Tokens.Verify(token)
		if err != nil {
			respondUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// userIDFromContext returns the id set by RequireAuth.
func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}
