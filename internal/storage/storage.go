// storage содержит контракты слоя хранилищ витрины.
//
// storage.go - журнал заказов (идемпотентная запись по payment_id)
// и источник ссылок на PDF для портала скачивания.
// static.go - ссылки на PDF из конфигурации.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/arsalan507/simplequran/internal/models"
)

var (
	// ErrNotFound — заказ не найден.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — заказ с тем же payment_id уже записан (повторный вебхук).
	ErrAlreadyExists = errors.New("already exists")
	// ErrNoLinks — ссылки на PDF не сконфигурированы. HTTP: 500.
	ErrNoLinks = errors.New("download links not configured")
)

// OrderStorage — журнал заказов. Записи только дополняются,
// меняются лишь заявка на отправку письма и отметка об отправке.
type OrderStorage interface {
	// SaveOrder записывает заказ; дубликат payment_id → ErrAlreadyExists.
	SaveOrder(ctx context.Context, order *models.Order) error
	// OrderByPaymentID находит заказ по id транзакции.
	OrderByPaymentID(ctx context.Context, paymentID string) (*models.Order, error)
	// ClaimEmail атомарно занимает отправку письма по заказу.
	// false — письмо уже отправлено или его отправляет другой обработчик,
	// чья заявка моложе lease.
	ClaimEmail(ctx context.Context, paymentID string, at time.Time, lease time.Duration) (bool, error)
	// ReleaseEmail снимает заявку после неудачной отправки.
	ReleaseEmail(ctx context.Context, paymentID string) error
	// MarkEmailSent отмечает, что письмо со ссылкой отправлено.
	MarkEmailSent(ctx context.Context, paymentID string, at time.Time) error
}

// EbookLinks возвращает ссылки на PDF для портала.
type EbookLinks interface {
	Links(ctx context.Context) ([]models.DownloadLink, error)
}

// Названия изданий в портале.
const (
	TitleV1       = "Version 1: Simplified Quran Guide"
	DescriptionV1 = "Complete 30 Juz guide for easy Quran reading"
	TitleV2       = "Version 2: Illustrated Quran Guide"
	DescriptionV2 = "Visual guide with illustrations (FREE Bonus)"
)

// Bundle собирает две ссылки комплекта в фиксированном порядке.
func Bundle(v1, v2 string) []models.DownloadLink {
	return []models.DownloadLink{
		{Title: TitleV1, Description: DescriptionV1, URL: v1},
		{Title: TitleV2, Description: DescriptionV2, URL: v2, Bonus: true},
	}
}
