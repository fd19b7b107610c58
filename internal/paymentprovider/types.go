package paymentprovider

// PaymentIntent статус и реквизиты платежа у процессора.
// ClientSecret отдаётся клиенту для подтверждения платежа на его стороне.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// IntentStatusSucceeded статус подтверждённого платежа.
const IntentStatusSucceeded = "succeeded"

// apiError тело ошибки процессора.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
