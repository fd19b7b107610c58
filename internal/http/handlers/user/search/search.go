// Package search реализует HTTP-обработчик поиска доноров по группе крови
// и месту. Заблокированные пользователи в выдачу не попадают.
package search

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

// Handler управляет HTTP-запросами поиска доноров.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска доноров.
type Service interface {
	SearchDonors(ctx context.Context, filter models.DonorFilter) ([]*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Найти доноров
// @Description Возвращает активных доноров по группе крови, району и упазиле.
// @Tags Users
// @Produce  json
// @Param bloodGroup query string true "Группа крови"
// @Param district query string false "Район"
// @Param upazila query string false "Упазила"
// @Success 200 {object} map[string]any "Список доноров"
// @Failure 422 {object} response.ErrorResponse "Не указана группа крови"
// @Router /users/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.search"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.DonorFilter{
		BloodGroup: r.URL.Query().Get("bloodGroup"),
		District:   r.URL.Query().Get("district"),
		Upazila:    r.URL.Query().Get("upazila"),
	}
	if filter.BloodGroup == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("bloodGroup is a required query parameter"))
		return
	}

	donors, err := h.service.SearchDonors(r.Context(), filter)
	if err != nil {
		log.Error("failed to search donors", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not search donors"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"items": donors,
		"count": len(donors),
	}))
}
