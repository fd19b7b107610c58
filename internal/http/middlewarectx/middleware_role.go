package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bloodaid/bloodaid/internal/http/response"
	"github.com/bloodaid/bloodaid/internal/lib/sl"
	"github.com/bloodaid/bloodaid/internal/models"
)

// RoleResolver определяет актуальные роль и статус пользователя по хранилищу.
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (role string, status string, err error)
}

// RoleMiddleware кладёт в контекст роль пользователя из хранилища, а не из
// токена: смена роли или блокировка вступают в силу без перевыпуска токена.
// Ошибка определения роли закрывает доступ, а не открывает его.
func RoleMiddleware(resolver RoleResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RoleMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			email, ok := r.Context().Value(User).(string)
			if !ok || email == "" {
				log.Error("email not found in context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			role, _, err := resolver.ResolveRole(r.Context(), email)
			if err != nil {
				log.Error("failed to resolve role", sl.Err(err))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("could not resolve user role"))
				return
			}

			ctx := context.WithValue(r.Context(), Role, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole пропускает запрос только если роль в контексте входит в allowed.
func RequireRole(log *slog.Logger, allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireRole"
			role, ok := r.Context().Value(Role).(string)
			if !ok || role == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}
			for _, a := range allowed {
				if role == a {
					next.ServeHTTP(w, r)
					return
				}
			}
			log.With(slog.String("op", op)).Warn("forbidden",
				slog.String("role", role),
				slog.String("request_id", middleware.GetReqID(r.Context())))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("permission denied"))
		})
	}
}

// ActorFromContext собирает данные вызывающего из контекста запроса.
func ActorFromContext(ctx context.Context) (email, name, role string, ok bool) {
	email, ok = ctx.Value(User).(string)
	if !ok || email == "" {
		return "", "", "", false
	}
	name, _ = ctx.Value(UserName).(string)
	role, _ = ctx.Value(Role).(string)
	if role == "" {
		role = models.RoleDonor
	}
	return email, name, role, true
}
