// Package claim реализует HTTP-обработчик подтверждения запроса донором.
// Подтверждение атомарно переводит запрос из pending в inprogress и
// записывает вызывающего как донора. Проигравший гонку получает 409.
package claim

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bloodaid/bloodaid/internal/http/middlewarectx"
	"github.com/bloodaid/bloodaid/internal/http/response"
	"github.com/bloodaid/bloodaid/internal/lib/sl"
	"github.com/bloodaid/bloodaid/internal/models"
	"github.com/bloodaid/bloodaid/internal/services/request"
)

// Handler управляет HTTP-запросами подтверждения донации.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подтверждения.
type Service interface {
	Claim(ctx context.Context, id string, actor request.Actor) (*models.DonationRequest, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подтвердить готовность донора
// @Description Переводит запрос из pending в inprogress и назначает вызывающего донором.
// @Tags DonationRequests
// @Produce  json
// @Param id path string true "ID запроса"
// @Success 200 {object} map[string]any "Обновлённый запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Учётная запись заблокирована"
// @Failure 404 {object} response.ErrorResponse "Запрос не найден"
// @Failure 409 {object} response.ErrorResponse "Запрос уже подтверждён"
// @Router /donation-requests/{id}/confirm [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.request.claim"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing request id"))
		return
	}

	email, name, role, ok := middlewarectx.ActorFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	entry, err := h.service.Claim(r.Context(), id, request.Actor{Email: email, Name: name, Role: role})
	if err != nil {
		log.Error("failed to claim donation request", sl.Err(err))
		w.WriteHeader(response.CodeFor(err))
		render.JSON(w, r, response.Error(response.Message(err, "could not claim donation request")))
		return
	}

	log.Info("donation request claimed", slog.String("id", id), slog.String("donor", email))
	render.JSON(w, r, response.OKWithData(entry))
}
