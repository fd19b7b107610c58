package response

import (
	"errors"
	"net/http"

	"github.com/bloodaid/bloodaid/internal/domain"
)

// CodeFor переводит доменную ошибку в HTTP-статус. Неизвестные ошибки
// считаются внутренними.
func CodeFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPermissionDenied), errors.Is(err, domain.ErrUserBlocked):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrUnknownLocation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPaymentNotConfirmed):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// Message возвращает текст ошибки для клиента: доменные ошибки показываются
// как есть, внутренние скрываются за общим сообщением.
func Message(err error, fallback string) string {
	for _, sentinel := range []error{
		domain.ErrNotFound,
		domain.ErrPermissionDenied,
		domain.ErrUserBlocked,
		domain.ErrConflict,
		domain.ErrUserAlreadyExists,
		domain.ErrInvalidCredentials,
		domain.ErrInvalidAmount,
		domain.ErrUnknownLocation,
		domain.ErrPaymentNotConfirmed,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return fallback
}
