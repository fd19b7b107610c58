// Package read реализует HTTP-обработчик чтения запроса на донацию по ID.
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

// Handler управляет HTTP-запросами на чтение запроса на донацию.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения запроса.
type Service interface {
	Read(ctx context.Context, id string) (*models.DonationRequest, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить запрос на донацию
// @Tags DonationRequests
// @Produce  json
// @Param id path string true "ID запроса"
// @Success 200 {object} map[string]any "Запрос на донацию"
// @Failure 404 {object} response.ErrorResponse "Запрос не найден"
// @Router /donation-requests/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.request.read"
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

	entry, err := h.service.Read(r.Context(), id)
	if err != nil {
		log.Error("failed to read donation request", sl.Err(err))
		w.WriteHeader(response.CodeFor(err))
		render.JSON(w, r, response.Error(response.Message(err, "could not read donation request")))
		return
	}

	render.JSON(w, r, response.OKWithData(entry))
}
