// Package createintent реализует HTTP-обработчик создания платёжного
// намерения. Клиент получает client secret и подтверждает платёж на
// стороне платёжного провайдера.
package createintent

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/bloodaid/bloodaid/internal/http/response"
	"github.com/bloodaid/bloodaid/internal/lib/sl"
	"github.com/bloodaid/bloodaid/internal/models"
)

// Handler управляет HTTP-запросами создания платёжного намерения.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания намерения.
type Service interface {
	CreateIntent(ctx context.Context, amountCents int64) (string, error)
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
// @Summary Создать платёжное намерение
// @Description Создает payment intent у провайдера и возвращает client secret.
// @Tags Funds
// @Accept  json
// @Produce  json
// @Param request body models.DummyPaymentIntent true "Сумма в центах"
// @Success 200 {object} map[string]any "Client secret"
// @Failure 422 {object} response.ErrorResponse "Некорректная сумма"
// @Router /create-payment-intent [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.fund.createintent"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPaymentIntent
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

	clientSecret, err := h.service.CreateIntent(r.Context(), req.AmountCents)
	if err != nil {
		log.Error("failed to create payment intent", sl.Err(err))
		w.WriteHeader(response.CodeFor(err))
		render.JSON(w, r, response.Error(response.Message(err, "could not create payment intent")))
		return
	}

	log.Info("payment intent created")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"clientSecret": clientSecret,
	}))
}
