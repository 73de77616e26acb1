package middleware

import (
	"context"
	"errors"
	"net/http"

	"scamdb/internal/common"
	"scamdb/internal/common/security"
	"scamdb/internal/domain/repository"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey   contextKey = "userID"
	UsernameCtxKey contextKey = "username"
)

// Authenticator gates protected routes. A request with no Authorization
// header at all gets 403; a request whose token is malformed, expired, or
// names an unknown user gets 401. The subject claim is resolved against the
// user directory on every request.
func Authenticator(userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context()) // Populated by jwtauth.Verifier

			if errors.Is(err, jwtauth.ErrNoTokenFound) {
				common.RespondWithError(w, http.StatusForbidden, "Not authenticated")
				return
			}
			if err != nil || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Could not validate credentials")
				return
			}

			username, err := security.GetSubjectFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Could not validate credentials")
				return
			}

			user, err := userRepo.FindByUsername(r.Context(), username)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Could not validate credentials")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, user.ID)
			ctx = context.WithValue(ctx, UsernameCtxKey, user.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper to get the authenticated username from context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}

// Helper to get the authenticated user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}
