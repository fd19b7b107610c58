// Package role реализует HTTP-обработчик определения роли пользователя.
// Клиенты запрашивают роль у сервера вместо того, чтобы доверять токену.
package role

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bloodaid/bloodaid/internal/http/response"
	"github.com/bloodaid/bloodaid/internal/lib/sl"
)

// Handler управляет HTTP-запросами определения роли.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс определения роли.
type Service interface {
	ResolveRole(ctx context.Context, email string) (role string, status string, err error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить роль пользователя
// @Tags Users
// @Produce  json
// @Param id path string true "Email пользователя"
// @Success 200 {object} map[string]any "Роль и статус"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /users/{id}/role [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.role"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := chi.URLParam(r, "id")
	if email == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing email"))
		return
	}

	role, status, err := h.service.ResolveRole(r.Context(), email)
	if err != nil {
		log.Error("failed to resolve role", sl.Err(err))
		w.WriteHeader(response.CodeFor(err))
		render.JSON(w, r, response.Error(response.Message(err, "could not resolve role")))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"role":   role,
		"status": status,
	}))
}
