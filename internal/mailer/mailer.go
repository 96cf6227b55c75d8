// mailer — отправка писем покупателям и службе поддержки.
//
// Sender доставляет готовое сообщение; Dispatcher собирает письма
// из встроенных шаблонов. Повторов внутри запроса нет.
package mailer

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured — не задан ключ SendGrid. HTTP: 500.
	ErrNotConfigured = errors.New("email service not configured")

	// ErrInvalidMessage — у письма нет адресата или темы.
	ErrInvalidMessage = errors.New("invalid email message")
)

// Message — письмо с HTML- и текстовой частью.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Sender доставляет письмо.
type Sender interface {
	Send(ctx context.Context, m Message) error
}
