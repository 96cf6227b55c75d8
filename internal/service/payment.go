package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arsalan507/simplequran/internal/gateway/instamojo"
	"github.com/arsalan507/simplequran/internal/metrics"
	"github.com/arsalan507/simplequran/internal/models"
	"github.com/arsalan507/simplequran/internal/pkg/log"
	"github.com/arsalan507/simplequran/internal/pkg/redact"
)

const (
	defaultBuyerName = "Customer"
	successPath      = "/payment-success"
)

// CreatePayment создаёт платёж у процессора. Цена и назначение берутся
// только из конфигурации; redirectBase — схема и хост витрины.
func (s *Service) CreatePayment(ctx context.Context, req models.CheckoutRequest, redirectBase string) (*models.PaymentLink, error) {
	const op = "service.payment.CreatePayment"

	lg := log.From(ctx)

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, fmt.Errorf("%s: %w", op, invalid("Email is required"))
	}

	if strings.TrimSpace(req.Phone) == "" {
		return nil, fmt.Errorf("%s: %w", op, invalid("Phone number is required"))
	}

	phone, err := instamojo.NormalizePhone(req.Phone)
	if err != nil {
		lg.Warn("payment_invalid_phone", slog.String("phone", redact.Phone(req.Phone)))
		return nil, fmt.Errorf("%s: %w", op, invalid("Invalid phone number format. Please provide a valid 10-digit Indian mobile number."))
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = defaultBuyerName
	}

	preq := models.PaymentRequest{
		Purpose:     s.cfg.Product.Name,
		Amount:      s.cfg.Product.PriceAmount().String(),
		BuyerName:   name,
		Email:       email,
		Phone:       phone,
		RedirectURL: strings.TrimRight(redirectBase, "/") + successPath,
	}

	lg.Info("payment_request_creating",
		slog.String("email", redact.Email(email)),
		slog.String("phone", redact.Phone(phone)),
		slog.String("amount", preq.Amount),
		slog.String("redirect_url", preq.RedirectURL),
	)

	link, err := s.gateway.CreatePaymentRequest(ctx, preq)
	if err != nil {
		var uerr *instamojo.UpstreamError
		if errors.As(err, &uerr) {
			s.metrics.Payment(metrics.ResultRejected)
		} else {
			s.metrics.Payment(metrics.ResultError)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.Payment(metrics.ResultOK)

	return link, nil
}

// RedirectBase собирает {proto}://{host} для redirect_url.
// proto по умолчанию https.
func RedirectBase(proto, host string) string {
	proto = strings.TrimSpace(strings.Split(proto, ",")[0])
	if proto == "" {
		proto = "https"
	}

	host = strings.TrimSpace(strings.Split(host, ",")[0])

	return proto + "://" + host
}
