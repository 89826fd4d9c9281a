package chi

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/aadb-project/aadb/internal/domain"
	"github.com/aadb-project/aadb/internal/logger"
)

// LocalUser is the actor every caller becomes when no keys are configured.
const LocalUser = "local"

// Key maps one bearer token to the actor using it.
type Key struct {
	Token string
	User  string
	Role  string
}

type actorKey struct{}

// ActorFromContext returns the identified caller, or the zero (anonymous) actor.
func ActorFromContext(ctx context.Context) domain.Actor {
	a, _ := ctx.Value(actorKey{}).(domain.Actor)
	return a
}

func withActor(ctx context.Context, a domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorMiddleware identifies the caller from the Authorization header.
// With no keys configured every request runs as the local admin.
// A missing header leaves the caller anonymous; an unknown token is rejected.
func ActorMiddleware(keys []Key) func(http.Handler) http.Handler {
	actors := make(map[string]domain.Actor, len(keys))
	for _, k := range keys {
		if k.Token != "" {
			actors[k.Token] = domain.Actor{User: k.User, Role: k.Role}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(actors) == 0 {
			local := domain.Actor{User: LocalUser, Role: domain.RoleAdmin}
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(withActor(r.Context(), local)))
			})
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r)
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			actor, ok := actors[auth[len(bearerPrefix):]]
			if !ok {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "invalid api key")
				return
			}

			ctx := withActor(r.Context(), actor)
			ctx = logger.With(ctx, zap.String("user", actor.User))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects anonymous callers.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ActorFromContext(r.Context()).Anonymous() {
			writeError(w, http.StatusUnauthorized, CodeUnauthorized, "missing authorization header")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects callers without the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ActorFromContext(r.Context()).IsAdmin() {
			writeError(w, http.StatusForbidden, CodeForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}
