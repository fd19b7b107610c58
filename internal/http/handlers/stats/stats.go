// Package stats реализует административный HTTP-обработчик сводки платформы.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bloodaid/bloodaid/internal/http/response"
	"github.com/bloodaid/bloodaid/internal/lib/sl"
	"github.com/bloodaid/bloodaid/internal/services/stats"
)

// Handler управляет HTTP-запросами сводки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс сбора сводки.
type Service interface {
	Collect(ctx context.Context) (*stats.Summary, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сводка платформы
// @Description Возвращает число пользователей, запросы по статусам и сумму фонда.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Сводные показатели"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /admin/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	summary, err := h.service.Collect(r.Context())
	if err != nil {
		log.Error("failed to collect stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not collect stats"))
		return
	}

	render.JSON(w, r, response.OKWithData(summary))
}
