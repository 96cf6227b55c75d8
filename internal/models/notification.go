package models

// StatusCredit — статус успешной оплаты в уведомлении процессора.
const StatusCredit = "Credit"

// Notification — поля вебхука, которые нужны для выдачи заказа.
// Instamojo передаёт email покупателя в поле buyer.
type Notification struct {
	PaymentID        string
	PaymentRequestID string
	Status           string
	BuyerEmail       string
	BuyerName        string
	BuyerPhone       string
	Amount           string
	Currency         string
	Purpose          string
}

// NotificationFromFields собирает Notification из плоского набора полей.
func NotificationFromFields(f map[string]string) Notification {
	return Notification{
		PaymentID:        f["payment_id"],
		PaymentRequestID: f["payment_request_id"],
		Status:           f["status"],
		BuyerEmail:       f["buyer"],
		BuyerName:        f["buyer_name"],
		BuyerPhone:       f["buyer_phone"],
		Amount:           f["amount"],
		Currency:         f["currency"],
		Purpose:          f["purpose"],
	}
}

// Credited сообщает, что платёж прошёл.
func (n Notification) Credited() bool { return n.Status == StatusCredit }

// FulfillmentResult — итог обработки уведомления.
type FulfillmentResult struct {
	// Processed — false для неуспешных статусов: побочных эффектов не было.
	Processed   bool
	Token       string
	DownloadURL string
	// Duplicate — заказ уже был в журнале (повторная доставка вебхука).
	Duplicate bool
	// EmailSent — письмо отправлено в рамках этой доставки.
	EmailSent bool
}
