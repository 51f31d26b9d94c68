package paymentprovider

// CreateIntentRequest — параметры создания payment intent.
type CreateIntentRequest struct {
	Amount   int64  // Сумма в минимальных единицах валюты
	Currency string // Трехбуквенный код валюты, например "usd"
}

// PaymentIntent — ответ провайдера на создание payment intent.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// apiError — тело ошибки провайдера.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
