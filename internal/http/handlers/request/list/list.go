// Package list реализует HTTP-обработчик списка запросов на донацию для
// личного кабинета. Донор видит только собственные запросы, волонтёр и
// администратор — все.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bloodaid/bloodaid/internal/http/middlewarectx"
	"github.com/bloodaid/bloodaid/internal/http/response"
	"github.com/bloodaid/bloodaid/internal/lib/sl"
	"github.com/bloodaid/bloodaid/internal/models"
	"github.com/bloodaid/bloodaid/internal/services/request"
)

// Handler управляет HTTP-запросами списка личного кабинета.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка запросов.
type Service interface {
	List(ctx context.Context, actor request.Actor, filter models.RequestFilter, limit, offset int) ([]*models.DonationRequest, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список запросов личного кабинета
// @Description Донор получает свои запросы, волонтёр и администратор — все.
// @Tags DonationRequests
// @Produce  json
// @Param status query string false "Фильтр по статусу"
// @Param donor query string false "Фильтр по email донора"
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список запросов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /dashboard/donation-requests [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.request.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, name, role, ok := middlewarectx.ActorFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && !models.ValidRequestStatus(status) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("unknown status filter"))
		return
	}
	filter := models.RequestFilter{
		Status:     status,
		DonorEmail: r.URL.Query().Get("donor"),
	}

	limit, offset := pagination(r)
	entries, err := h.service.List(r.Context(), request.Actor{Email: email, Name: name, Role: role}, filter, limit, offset)
	if err != nil {
		log.Error("failed to list donation requests", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list donation requests"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"items": entries,
		"count": len(entries),
	}))
}

func pagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
