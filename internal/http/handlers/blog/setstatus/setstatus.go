// Package setstatus реализует административный HTTP-обработчик публикации
// и снятия с публикации записи блога. Целевой статус задаётся при
// конструировании обработчика, поэтому один тип обслуживает оба маршрута.
package setstatus

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

// Handler управляет HTTP-запросами смены статуса публикации.
type Handler struct {
	log     *slog.Logger
	service Service
	status  string
}

// Service описывает интерфейс бизнес-логики смены статуса публикации.
type Service interface {
	SetStatus(ctx context.Context, id, status string) error
}

// New создает новый Handler, переводящий публикацию в переданный статус.
func New(log *slog.Logger, service Service, status string) *Handler {
	return &Handler{log: log, service: service, status: status}
}

// ServeHTTP godoc
// @Summary Опубликовать или снять с публикации
// @Tags Blogs
// @Produce  json
// @Param id path string true "ID публикации"
// @Success 200 {object} map[string]any "Статус обновлён"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Публикация не найдена"
// @Router /blogs/{id}/publish [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.blog.setstatus"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing blog id"))
		return
	}

	if err := h.service.SetStatus(r.Context(), id, h.status); err != nil {
		log.Error("failed to update blog status", sl.Err(err))
		w.WriteHeader(response.CodeFor(err))
		render.JSON(w, r, response.Error(response.Message(err, "could not update blog status")))
		return
	}

	log.Info("blog status updated", slog.String("id", id), slog.String("status", h.status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":     id,
		"status": h.status,
	}))
}
