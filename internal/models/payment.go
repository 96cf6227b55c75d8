package models

// CheckoutRequest — тело POST /api/create-payment.
// Сумма клиентом не передаётся: цену задаёт сервер.
type CheckoutRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// PaymentRequest — запрос на создание платежа у процессора.
type PaymentRequest struct {
	Purpose     string
	Amount      string
	BuyerName   string
	Email       string
	Phone       string
	RedirectURL string
}

// PaymentLink — результат создания платежа: адрес страницы оплаты.
type PaymentLink struct {
	PaymentID  string `json:"payment_id"`
	PaymentURL string `json:"payment_url"`
}
