// Package resolvedonor реализует HTTP-обработчик завершения донации
// подобранным донором. Донор закрывает только свой запрос и только из
// статуса inprogress.
package resolvedonor

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/bloodaid/bloodaid/internal/http/middlewarectx"
	"github.com/bloodaid/bloodaid/internal/http/response"
	"github.com/bloodaid/bloodaid/internal/lib/sl"
	"github.com/bloodaid/bloodaid/internal/models"
	"github.com/bloodaid/bloodaid/internal/services/request"
)

// Handler управляет HTTP-запросами донорского завершения.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики донорского завершения.
type Service interface {
	ResolveByDonor(ctx context.Context, id, outcome string, actor request.Actor) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Завершить донацию (донор)
// @Description Переводит запрос из inprogress в done или canceled от имени подобранного донора.
// @Tags DonationRequests
// @Accept  json
// @Produce  json
// @Param id path string true "ID запроса"
// @Param request body models.DummyResolve true "Целевой статус"
// @Success 200 {object} map[string]any "Статус обновлён"
// @Failure 403 {object} response.ErrorResponse "Вызывающий не является донором запроса"
// @Failure 404 {object} response.ErrorResponse "Запрос не найден"
// @Failure 409 {object} response.ErrorResponse "Запрос не в статусе inprogress"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /donation-requests/{id}/status/donor [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.request.resolvedonor"
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

	var req models.DummyResolve
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	email, name, role, ok := middlewarectx.ActorFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.ResolveByDonor(r.Context(), id, req.Status, request.Actor{Email: email, Name: name, Role: role}); err != nil {
		log.Error("failed to resolve donation request", sl.Err(err))
		w.WriteHeader(response.CodeFor(err))
		render.JSON(w, r, response.Error(response.Message(err, "could not resolve donation request")))
		return
	}

	log.Info("donation request resolved by donor", slog.String("id", id), slog.String("status", req.Status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":     id,
		"status": req.Status,
	}))
}
