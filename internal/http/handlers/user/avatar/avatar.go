// Package avatar реализует HTTP-обработчик загрузки аватара. Файл
// проксируется во внешний хостинг изображений, чтобы API-ключ хостинга
// не покидал сервер; клиенту возвращается готовый URL.
package avatar

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bloodaid/bloodaid/internal/http/response"
	"github.com/bloodaid/bloodaid/internal/lib/sl"
)

// максимальный размер файла аватара
const maxUploadSize = 5 << 20

// Uploader описывает клиент внешнего хостинга изображений.
type Uploader interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

// Handler управляет HTTP-запросами загрузки аватара.
type Handler struct {
	log      *slog.Logger
	uploader Uploader
}

// New создает новый Handler с переданными логгером и клиентом хостинга.
func New(log *slog.Logger, uploader Uploader) *Handler {
	return &Handler{log: log, uploader: uploader}
}

// ServeHTTP godoc
// @Summary Загрузить аватар
// @Description Принимает multipart-файл image и возвращает URL во внешнем хостинге.
// @Tags Users
// @Accept  multipart/form-data
// @Produce  json
// @Param image formData file true "Файл изображения"
// @Success 200 {object} map[string]any "URL загруженного изображения"
// @Failure 400 {object} response.ErrorResponse "Файл отсутствует или слишком большой"
// @Router /users/avatar [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.avatar"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		log.Error("image file missing", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("image file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("failed to read image file", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("could not read image file"))
		return
	}

	url, err := h.uploader.Upload(r.Context(), header.Filename, data)
	if err != nil {
		log.Error("failed to upload image", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not upload image"))
		return
	}

	log.Info("avatar uploaded", slog.String("url", url))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"url": url,
	}))
}
