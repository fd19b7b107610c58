package models

import "time"

// Fund представляет запись о денежном пожертвовании.
//
// Сумма хранится в минорных единицах валюты (центах) и после создания
// не изменяется: реестр фонда строго append-only.
type Fund struct {
	ID               string    `json:"id"`
	ContributorName  string    `json:"contributorName"`
	ContributorEmail string    `json:"contributorEmail"`
	AmountCents      int64     `json:"amountCents"`     // Сумма в центах, всегда > 0
	PaymentIntentID  string    `json:"paymentIntentId"` // Идентификатор платежа у процессора
	CreatedAt        time.Time `json:"createdAt"`
}

// DummyFund используется для приёма данных подтверждённого платежа из
// JSON-запроса перед записью в реестр.
type DummyFund struct {
	AmountCents     int64  `json:"amount" validate:"required,gt=0"`
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
}

// DummyPaymentIntent используется для приёма суммы при создании платежа.
type DummyPaymentIntent struct {
	AmountCents int64 `json:"amount" validate:"required,gt=0"`
}
