// Package paymentprovider реализует клиент платёжного процессора.
// Сервер только создаёт платёжные намерения и проверяет их статус;
// подтверждение платежа и карточные данные остаются на стороне процессора.
package paymentprovider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client клиент REST API платёжного процессора.
type Client struct {
	http *resty.Client
}

// NewClient создаёт клиент с секретным ключом и базовым URL API.
func NewClient(secretKey, apiURL string) *Client {
	httpClient := resty.New().
		SetBaseURL(apiURL).
		SetAuthToken(secretKey).
		SetTimeout(10 * time.Second)
	return &Client{http: httpClient}
}

// CreatePaymentIntent создаёт платёжное намерение на указанную сумму
// в минорных единицах и возвращает его вместе с client_secret.
func (c *Client) CreatePaymentIntent(ctx context.Context, amountCents int64, currency string) (*PaymentIntent, error) {
	const op = "paymentprovider.CreatePaymentIntent"

	var intent PaymentIntent
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"amount":                 strconv.FormatInt(amountCents, 10),
			"currency":               currency,
			"payment_method_types[]": "card",
		}).
		SetResult(&intent).
		SetError(&apiErr).
		Post("/payment_intents")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s: %s", op, apiErr.Error.Message)
	}
	return &intent, nil
}

// GetPaymentIntent возвращает текущее состояние платёжного намерения.
// Используется для проверки статуса перед записью в реестр фонда.
func (c *Client) GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	const op = "paymentprovider.GetPaymentIntent"

	var intent PaymentIntent
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&intent).
		SetError(&apiErr).
		Get("/payment_intents/" + id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s: %s", op, apiErr.Error.Message)
	}
	return &intent, nil
}
