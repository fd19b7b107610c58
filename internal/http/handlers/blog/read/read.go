// Package read реализует HTTP-обработчик чтения публикации блога.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bloodaid/bloodaid/internal/http/response"
	"github.com/bloodaid/bloodaid/internal/lib/sl"
	"github.com/bloodaid/bloodaid/internal/models"
)

// Handler управляет HTTP-запросами чтения публикации.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения публикации.
type Service interface {
	Read(ctx context.Context, id string) (*models.Blog, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить публикацию
// @Tags Blogs
// @Produce  json
// @Param id path string true "ID публикации"
// @Success 200 {object} map[string]any "Публикация"
// @Failure 404 {object} response.ErrorResponse "Публикация не найдена"
// @Router /blogs/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.blog.read"
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

	entry, err := h.service.Read(r.Context(), id)
	if err != nil {
		log.Error("failed to read blog", sl.Err(err))
		w.WriteHeader(response.CodeFor(err))
		render.JSON(w, r, response.Error(response.Message(err, "could not read blog")))
		return
	}

	render.JSON(w, r, response.OKWithData(entry))
}
