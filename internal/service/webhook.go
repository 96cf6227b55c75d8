package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arsalan507/simplequran/internal/metrics"
	"github.com/arsalan507/simplequran/internal/models"
	"github.com/arsalan507/simplequran/internal/pkg/log"
	"github.com/arsalan507/simplequran/internal/pkg/redact"
	"github.com/arsalan507/simplequran/internal/storage"
	"github.com/arsalan507/simplequran/internal/webhook"
)

// emailClaimLease — срок заявки на отправку письма; больше таймаута SMTP.
const emailClaimLease = 5 * time.Minute

// HandleNotification обрабатывает уведомление процессора.
//
// Порядок: подпись → статус → журнал → токен → письмо. Неуспешный статус
// подтверждается без побочных эффектов. Повторная доставка выпускает новый
// токен, но письмо второй раз не отправляет: отправку занимает атомарная
// заявка в журнале (ClaimEmail), конкурентная доставка её не получит.
// Сбой письма не ломает ответ процессору: он логируется, заявка снимается,
// заказ остаётся без отметки об отправке.
func (s *Service) HandleNotification(ctx context.Context, fields map[string]string) (*models.FulfillmentResult, error) {
	const op = "service.webhook.HandleNotification"

	n := models.NotificationFromFields(fields)
	ctx = log.With(ctx, slog.String("payment_id", n.PaymentID))
	lg := log.From(ctx)

	if !s.verifier.Enabled() {
		lg.Warn("webhook_verification_skipped")
	} else if err := s.verifier.Verify(fields); err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			s.metrics.Webhook(metrics.ResultInvalid)
			lg.Warn("webhook_signature_invalid")
		} else {
			s.metrics.Webhook(metrics.ResultError)
			lg.Error("webhook_verification_failed", slog.String("err", err.Error()))
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("webhook_received",
		slog.String("status", n.Status),
		slog.String("buyer", redact.Email(n.BuyerEmail)),
		slog.String("amount", n.Amount),
	)

	if !n.Credited() {
		s.metrics.Webhook(metrics.ResultIgnored)
		return &models.FulfillmentResult{}, nil
	}

	if strings.TrimSpace(n.PaymentID) == "" {
		s.metrics.Webhook(metrics.ResultError)
		return nil, fmt.Errorf("%s: %w", op, &ValidationError{
			Message: "Missing payment_id",
			Fields:  []string{"payment_id"},
		})
	}

	order, duplicate, err := s.recordOrder(ctx, n)
	if err != nil {
		s.metrics.Webhook(metrics.ResultError)
		lg.Error("order_record_failed", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tok, err := s.tokens.Issue(ctx, models.OrderData{
		OrderID:   n.PaymentRequestID,
		Email:     n.BuyerEmail,
		PaymentID: n.PaymentID,
	})
	if err != nil {
		s.metrics.Webhook(metrics.ResultError)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := &models.FulfillmentResult{
		Processed:   true,
		Token:       tok,
		DownloadURL: s.DownloadURL(tok, n.PaymentID),
		Duplicate:   duplicate,
	}

	if duplicate {
		s.metrics.Webhook(metrics.ResultDuplicate)
	} else {
		s.metrics.Webhook(metrics.ResultCredited)
	}

	if order.EmailSent() {
		lg.Info("download_email_already_sent")
		return res, nil
	}

	claimed, err := s.orders.ClaimEmail(ctx, n.PaymentID, s.now().UTC(), emailClaimLease)
	if err != nil {
		lg.Error("download_email_claim_failed", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !claimed {
		lg.Info("download_email_in_progress")
		return res, nil
	}

	name := strings.TrimSpace(n.BuyerName)
	if name == "" {
		name = defaultBuyerName
	}

	if err := s.notifier.SendDownloadEmail(ctx, n.BuyerEmail, name, n.PaymentID, res.DownloadURL); err != nil {
		s.metrics.Email(metrics.EmailDownload, metrics.ResultError)
		lg.Error("download_email_failed", slog.String("err", err.Error()))

		// следующая доставка уведомления повторит письмо
		if rerr := s.orders.ReleaseEmail(context.WithoutCancel(ctx), n.PaymentID); rerr != nil {
			lg.Warn("download_email_release_failed", slog.String("err", rerr.Error()))
		}

		return res, nil
	}

	s.metrics.Email(metrics.EmailDownload, metrics.ResultOK)
	res.EmailSent = true

	if err := s.orders.MarkEmailSent(context.WithoutCancel(ctx), n.PaymentID, s.now().UTC()); err != nil {
		lg.Warn("order_mark_email_sent_failed", slog.String("err", err.Error()))
	}

	return res, nil
}

// recordOrder пишет заказ в журнал. Для повторной доставки возвращает
// уже записанный заказ и duplicate=true.
func (s *Service) recordOrder(ctx context.Context, n models.Notification) (*models.Order, bool, error) {
	const op = "service.webhook.recordOrder"

	order := &models.Order{
		ID:               uuid.New(),
		PaymentID:        n.PaymentID,
		PaymentRequestID: n.PaymentRequestID,
		Email:            n.BuyerEmail,
		BuyerName:        n.BuyerName,
		BuyerPhone:       n.BuyerPhone,
		Amount:           n.Amount,
		Purpose:          n.Purpose,
		Status:           n.Status,
		CreatedAt:        s.now().UTC(),
	}

	err := s.orders.SaveOrder(ctx, order)
	if err == nil {
		return order, false, nil
	}

	if !errors.Is(err, storage.ErrAlreadyExists) {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	existing, err := s.orders.OrderByPaymentID(ctx, n.PaymentID)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return existing, true, nil
}
