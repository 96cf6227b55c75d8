package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/arsalan507/simplequran/internal/metrics"
	"github.com/arsalan507/simplequran/internal/models"
	"github.com/arsalan507/simplequran/internal/pkg/log"
	"github.com/arsalan507/simplequran/internal/pkg/redact"
)

const defaultTestName = "Valued Customer"

// SendTestEmail отправляет диагностическое письмо со ссылкой-заглушкой.
// Токен в ссылке не подписан: портал по ней не откроется.
func (s *Service) SendTestEmail(ctx context.Context, req models.TestEmailRequest) error {
	const op = "service.testemail.SendTestEmail"

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return fmt.Errorf("%s: %w", op, invalid("Email is required"))
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = defaultTestName
	}

	ms := strconv.FormatInt(s.now().UnixMilli(), 10)
	link := strings.TrimRight(s.cfg.Site.BaseURL, "/") + "/api/download?token=test_token_" + ms

	if err := s.notifier.SendDownloadEmail(ctx, email, name, "TEST_"+ms, link); err != nil {
		s.metrics.Email(metrics.EmailTest, metrics.ResultError)
		log.From(ctx).Error("test_email_failed",
			slog.String("to", redact.Email(email)),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w: %w", op, ErrTestEmailNotSent, err)
	}

	s.metrics.Email(metrics.EmailTest, metrics.ResultOK)

	return nil
}
