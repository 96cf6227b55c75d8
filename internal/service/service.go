// service содержит сценарии выдачи заказа витрины:
// создание платежа, обработку уведомления процессора, портал скачивания,
// заявки на печатный экземпляр и тестовое письмо.
//
// Основные аспекты:
//   - Service не хранит состояние запроса; экземпляр безопасен для
//     конкурентного использования при потокобезопасных зависимостях.
//   - Ошибки возвращаются наверх и маппятся транспортом на HTTP-статусы
//     (см. комментарии к переменным ошибок ниже и internal/errors).
package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/arsalan507/simplequran/internal/config"
	"github.com/arsalan507/simplequran/internal/gateway/instamojo"
	"github.com/arsalan507/simplequran/internal/mailer"
	"github.com/arsalan507/simplequran/internal/metrics"
	"github.com/arsalan507/simplequran/internal/models"
	"github.com/arsalan507/simplequran/internal/storage"
	"github.com/arsalan507/simplequran/internal/token"
	"github.com/arsalan507/simplequran/internal/webhook"
)

var (
	// ErrMethodNotAllowed — метод не поддерживается маршрутом. HTTP 405.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrMissingToken — в ссылке на скачивание нет токена. HTTP 400 (страница).
	ErrMissingToken = errors.New("missing download token")

	// ErrEnquiryNotSent — письмо с заявкой не ушло. HTTP 500.
	ErrEnquiryNotSent = errors.New("enquiry not sent")

	// ErrTestEmailNotSent — тестовое письмо не ушло. HTTP 500.
	ErrTestEmailNotSent = errors.New("test email not sent")
)

// ValidationError — ошибка входных данных. HTTP 400.
// Fields заполняется, когда не хватает обязательных полей.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) *ValidationError { return &ValidationError{Message: msg} }

// PaymentGateway создаёт платёжные запросы у процессора.
type PaymentGateway interface {
	CreatePaymentRequest(ctx context.Context, req models.PaymentRequest) (*models.PaymentLink, error)
}

// Notifier отправляет письма покупателю и в поддержку.
type Notifier interface {
	SendDownloadEmail(ctx context.Context, to, name, paymentID, downloadURL string) error
	SendEnquiryEmail(ctx context.Context, e models.HardcopyEnquiry) error
}

var (
	_ PaymentGateway = (*instamojo.Client)(nil)
	_ Notifier       = (*mailer.Dispatcher)(nil)
)

// Deps — зависимости Service. Metrics может быть nil.
type Deps struct {
	Gateway  PaymentGateway
	Notifier Notifier
	Orders   storage.OrderStorage
	Links    storage.EbookLinks
	Tokens   *token.Codec
	Verifier *webhook.Verifier
	Metrics  *metrics.Metrics
}

// Service описывает бизнес-логику витрины.
type Service struct {
	cfg      *config.Config
	gateway  PaymentGateway
	notifier Notifier
	orders   storage.OrderStorage
	links    storage.EbookLinks
	tokens   *token.Codec
	verifier *webhook.Verifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

// New создаёт новый экземпляр Service.
func New(cfg *config.Config, d Deps) *Service {
	return &Service{
		cfg:      cfg,
		gateway:  d.Gateway,
		notifier: d.Notifier,
		orders:   d.Orders,
		links:    d.Links,
		tokens:   d.Tokens,
		verifier: d.Verifier,
		metrics:  d.Metrics,
		now:      time.Now,
	}
}

// DownloadURL собирает ссылку на портал: {base}/api/download?token=…&payment_id=….
func (s *Service) DownloadURL(tok, paymentID string) string {
	return downloadURL(s.cfg.Site.BaseURL, tok, paymentID)
}

func downloadURL(base, tok, paymentID string) string {
	var b strings.Builder

	b.WriteString(strings.TrimRight(base, "/"))
	b.WriteString("/api/download?token=")
	b.WriteString(url.QueryEscape(tok))

	if paymentID != "" {
		b.WriteString("&payment_id=")
		b.WriteString(url.QueryEscape(paymentID))
	}

	return b.String()
}
