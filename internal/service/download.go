package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arsalan507/simplequran/internal/metrics"
	"github.com/arsalan507/simplequran/internal/models"
	"github.com/arsalan507/simplequran/internal/pkg/log"
	"github.com/arsalan507/simplequran/internal/pkg/redact"
	"github.com/arsalan507/simplequran/internal/storage"
	"github.com/arsalan507/simplequran/internal/token"
)

// ResolveDownload проверяет токен ссылки и собирает данные портала.
//
// Пустой токен → ErrMissingToken; испорченный или истёкший →
// token.ErrInvalidToken. С DOWNLOADS_REQUIRE_ORDER заказ обязан быть в
// журнале, иначе токен считается недействительным. Ничего не изменяет.
func (s *Service) ResolveDownload(ctx context.Context, rawToken string) (*models.DownloadPortal, error) {
	const op = "service.download.ResolveDownload"

	lg := log.From(ctx)

	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		s.metrics.Download(metrics.ResultMissing)
		return nil, fmt.Errorf("%s: %w", op, ErrMissingToken)
	}

	data, err := s.tokens.Validate(rawToken)
	if err != nil {
		s.metrics.Download(metrics.ResultExpired)
		lg.Info("download_token_rejected", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cfg.Downloads.RequireOrder {
		if _, err := s.orders.OrderByPaymentID(ctx, data.PaymentID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				s.metrics.Download(metrics.ResultExpired)
				lg.Warn("download_order_not_found", slog.String("payment_id", data.PaymentID))
				return nil, fmt.Errorf("%s: %w", op, token.ErrInvalidToken)
			}

			s.metrics.Download(metrics.ResultError)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	links, err := s.links.Links(ctx)
	if err != nil {
		s.metrics.Download(metrics.ResultError)
		lg.Error("download_links_failed", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.Download(metrics.ResultServed)
	lg.Info("download_accessed",
		slog.String("order_id", data.OrderID),
		slog.String("payment_id", data.PaymentID),
		slog.String("email", redact.Email(data.Email)),
	)

	return &models.DownloadPortal{Order: data, Links: links}, nil
}
