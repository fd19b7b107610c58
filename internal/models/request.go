package models

import "time"

// Статусы запроса на донацию. Переходы: pending -> inprogress -> {done, canceled}.
// Статусы done и canceled терминальные.
const (
	RequestStatusPending    = "pending"
	RequestStatusInProgress = "inprogress"
	RequestStatusDone       = "done"
	RequestStatusCanceled   = "canceled"
)

// ValidRequestStatus проверяет, что строка является известным статусом запроса.
func ValidRequestStatus(s string) bool {
	switch s {
	case RequestStatusPending, RequestStatusInProgress, RequestStatusDone, RequestStatusCanceled:
		return true
	}
	return false
}

// DonationRequest представляет запрос на донацию крови.
//
// Поля requester денормализованы из User при создании и далее неизменяемы.
// Поля donor пусты, пока статус pending, и заполняются ровно в момент
// перехода pending -> inprogress.
type DonationRequest struct {
	ID                string    `json:"id"`
	RequesterName     string    `json:"requesterName"`
	RequesterEmail    string    `json:"requesterEmail"`
	RecipientName     string    `json:"recipientName"`
	RecipientDistrict string    `json:"recipientDistrict"`
	RecipientUpazila  string    `json:"recipientUpazila"`
	HospitalName      string    `json:"hospitalName"`
	FullAddress       string    `json:"fullAddress"`
	BloodGroup        string    `json:"bloodGroup"`
	DonationDate      string    `json:"donationDate"` // Дата донации в формате 2006-01-02
	DonationTime      string    `json:"donationTime"` // Время донации в формате 15:04
	RequestMessage    string    `json:"requestMessage"`
	Status            string    `json:"status"`
	DonorName         string    `json:"donorName,omitempty"`  // Имя донора, пусто при pending
	DonorEmail        string    `json:"donorEmail,omitempty"` // Email донора, пусто при pending
	CreatedAt         time.Time `json:"createdAt"`
}

// DummyRequest используется для приёма данных запроса на донацию из
// JSON-запроса до валидации. Все поля обязательны.
type DummyRequest struct {
	RecipientName     string `json:"recipientName" validate:"required,min=2,max=100"`
	RecipientDistrict string `json:"recipientDistrict" validate:"required"`
	RecipientUpazila  string `json:"recipientUpazila" validate:"required"`
	HospitalName      string `json:"hospitalName" validate:"required"`
	FullAddress       string `json:"fullAddress" validate:"required"`
	BloodGroup        string `json:"bloodGroup" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	DonationDate      string `json:"donationDate" validate:"required,datetime=2006-01-02"`
	DonationTime      string `json:"donationTime" validate:"required,datetime=15:04"`
	RequestMessage    string `json:"requestMessage" validate:"required"`
}

// DummyResolve используется для приёма целевого терминального статуса
// из JSON-запроса завершения донации.
type DummyResolve struct {
	Status string `json:"status" validate:"required,oneof=done canceled"`
}

// RequestFilter описывает параметры выборки запросов на донацию.
// Пустые поля означают отсутствие фильтра.
type RequestFilter struct {
	Status         string // Фильтр по статусу
	RequesterEmail string // Фильтр по создателю запроса
	DonorEmail     string // Фильтр по подобранному донору
}
