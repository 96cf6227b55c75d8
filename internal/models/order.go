package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderData — содержимое подписанного токена на скачивание.
// Сервер его не хранит: достаточно подписи и срока действия.
type OrderData struct {
	// OrderID — id платёжного запроса (payment_request_id).
	OrderID string
	// Email — адрес покупателя; предъявитель токена считается покупателем.
	Email string
	// PaymentID — id транзакции у процессора.
	PaymentID string
	// IssuedAt — момент выпуска (UTC, точность до секунды).
	IssuedAt time.Time
}

// Order — запись журнала заказов, создаётся по успешному вебхуку.
// Журнал только дополняется; изменяется лишь EmailSentAt.
type Order struct {
	ID               uuid.UUID
	PaymentID        string
	PaymentRequestID string
	Email            string
	BuyerName        string
	BuyerPhone       string
	Amount           string
	Purpose          string
	Status           string
	CreatedAt        time.Time
	// EmailSentAt — nil, пока письмо со ссылкой не отправлено.
	EmailSentAt *time.Time
}

// EmailSent сообщает, было ли уже отправлено письмо по заказу.
func (o *Order) EmailSent() bool { return o != nil && o.EmailSentAt != nil }

// DownloadLink — одна ссылка на PDF в портале скачивания.
type DownloadLink struct {
	Title       string
	Description string
	URL         string
	Bonus       bool
}

// DownloadPortal — данные для страницы скачивания.
type DownloadPortal struct {
	Order OrderData
	Links []DownloadLink
}
