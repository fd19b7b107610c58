// Package domain содержит сентинельные ошибки бизнес-уровня.
// Обработчики HTTP сопоставляют их с кодами ответов на границе сервиса.
package domain

import "errors"

var (
	// ErrNotFound запрошенная сущность не найдена
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied у пользователя нет прав на действие
	ErrPermissionDenied = errors.New("permission denied")

	// ErrConflict переход статуса из недопустимого исходного состояния
	ErrConflict = errors.New("status conflict")

	// ErrUserBlocked учётная запись заблокирована администратором
	ErrUserBlocked = errors.New("user is blocked")

	// ErrUserAlreadyExists пользователь с таким email уже существует
	ErrUserAlreadyExists = errors.New("user with this email already exists")

	// ErrInvalidCredentials неверная пара email/пароль
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidAmount сумма платежа отсутствует или не больше нуля
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrPaymentNotConfirmed платёж не подтверждён процессором
	ErrPaymentNotConfirmed = errors.New("payment is not confirmed by the processor")

	// ErrUnknownLocation район или упазила отсутствуют в справочнике
	ErrUnknownLocation = errors.New("unknown district or upazila")
)
