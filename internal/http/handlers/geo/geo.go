// Package geo реализует открытые HTTP-обработчики справочника районов и
// упазил. Справочник встроен в бинарник и не требует хранилища.
package geo

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/bloodaid/bloodaid/internal/http/response"
	geolib "github.com/bloodaid/bloodaid/internal/lib/geo"
)

// Handler отдаёт справочные данные о районах и упазилах.
type Handler struct {
	log      *slog.Logger
	provider *geolib.Provider
}

// New создает новый Handler со справочником.
func New(log *slog.Logger, provider *geolib.Provider) *Handler {
	return &Handler{log: log, provider: provider}
}

// Districts godoc
// @Summary Список районов
// @Tags Geo
// @Produce  json
// @Success 200 {object} map[string]any "Список районов"
// @Router /districts [get]
func (h *Handler) Districts(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"items": h.provider.Districts(),
	}))
}

// Upazilas godoc
// @Summary Список упазил
// @Description Возвращает упазилы указанного района или все при пустом фильтре.
// @Tags Geo
// @Produce  json
// @Param district query string false "Название района"
// @Success 200 {object} map[string]any "Список упазил"
// @Router /upazilas [get]
func (h *Handler) Upazilas(w http.ResponseWriter, r *http.Request) {
	district := r.URL.Query().Get("district")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"items": h.provider.Upazilas(district),
	}))
}
