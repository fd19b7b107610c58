// Package list реализует HTTP-обработчики списков публикаций: публичную
// ленту (только published) и список панели управления с фильтром по статусу.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bloodaid/bloodaid/internal/http/response"
	"github.com/bloodaid/bloodaid/internal/lib/sl"
	"github.com/bloodaid/bloodaid/internal/models"
)

// Service описывает интерфейс бизнес-логики списков публикаций.
type Service interface {
	List(ctx context.Context, status string, limit, offset int) ([]*models.Blog, error)
	ListPublished(ctx context.Context, limit, offset int) ([]*models.Blog, error)
}

// PublicHandler отдаёт публичную ленту опубликованных записей.
type PublicHandler struct {
	log     *slog.Logger
	service Service
}

// NewPublic создает новый PublicHandler.
func NewPublic(log *slog.Logger, service Service) *PublicHandler {
	return &PublicHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Публичная лента блога
// @Description Возвращает только опубликованные записи, новые первыми.
// @Tags Blogs
// @Produce  json
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список публикаций"
// @Router /blogs [get]
func (h *PublicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.blog.list.public"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, offset := pagination(r)
	entries, err := h.service.ListPublished(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list blogs", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list blogs"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"items": entries,
		"count": len(entries),
	}))
}

// DashboardHandler отдаёт записи панели управления с фильтром по статусу.
type DashboardHandler struct {
	log     *slog.Logger
	service Service
}

// NewDashboard создает новый DashboardHandler.
func NewDashboard(log *slog.Logger, service Service) *DashboardHandler {
	return &DashboardHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список публикаций панели управления
// @Description Возвращает записи в любом статусе, опционально по фильтру.
// @Tags Blogs
// @Produce  json
// @Param status query string false "Фильтр по статусу (draft|published)"
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список публикаций"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /dashboard/blogs [get]
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.blog.list.dashboard"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	status := r.URL.Query().Get("status")
	if status != "" && status != models.BlogStatusDraft && status != models.BlogStatusPublished {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("unknown status filter"))
		return
	}

	limit, offset := pagination(r)
	entries, err := h.service.List(r.Context(), status, limit, offset)
	if err != nil {
		log.Error("failed to list blogs", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list blogs"))
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
