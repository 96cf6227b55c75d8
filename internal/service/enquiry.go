package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/arsalan507/simplequran/internal/metrics"
	"github.com/arsalan507/simplequran/internal/models"
	"github.com/arsalan507/simplequran/internal/pkg/log"
	"github.com/arsalan507/simplequran/internal/pkg/redact"
)

// MaxEnquiryQuantity — верхняя граница количества в одной заявке.
const MaxEnquiryQuantity = 100

var (
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe   = regexp.MustCompile(`^[0-9]{10}$`)
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)

	enquiryRequired = []string{"name", "email", "phone", "address", "city", "state", "pincode", "quantity"}
)

// SubmitEnquiry проверяет заявку на печатный экземпляр и пересылает её в поддержку.
func (s *Service) SubmitEnquiry(ctx context.Context, e models.HardcopyEnquiry) error {
	const op = "service.enquiry.SubmitEnquiry"

	lg := log.From(ctx)

	e = trimEnquiry(e)
	if err := validateEnquiry(e); err != nil {
		s.metrics.Enquiry(metrics.ResultRejected)
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.notifier.SendEnquiryEmail(ctx, e); err != nil {
		s.metrics.Enquiry(metrics.ResultError)
		s.metrics.Email(metrics.EmailEnquiry, metrics.ResultError)
		lg.Error("enquiry_email_failed",
			slog.String("from", redact.Email(e.Email)),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, ErrEnquiryNotSent)
	}

	s.metrics.Enquiry(metrics.ResultOK)
	s.metrics.Email(metrics.EmailEnquiry, metrics.ResultOK)

	return nil
}

func trimEnquiry(e models.HardcopyEnquiry) models.HardcopyEnquiry {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	e.Phone = strings.TrimSpace(e.Phone)
	e.Address = strings.TrimSpace(e.Address)
	e.City = strings.TrimSpace(e.City)
	e.State = strings.TrimSpace(e.State)
	e.Pincode = strings.TrimSpace(e.Pincode)
	e.Message = strings.TrimSpace(e.Message)

	return e
}

func validateEnquiry(e models.HardcopyEnquiry) error {
	if e.Name == "" || e.Email == "" || e.Phone == "" || e.Address == "" ||
		e.City == "" || e.State == "" || e.Pincode == "" || e.Quantity == 0 {
		required := make([]string, len(enquiryRequired))
		copy(required, enquiryRequired)

		return &ValidationError{Message: "Missing required fields", Fields: required}
	}

	if !emailRe.MatchString(e.Email) {
		return invalid("Invalid email format")
	}

	if !phoneRe.MatchString(e.Phone) {
		return invalid("Phone number must be 10 digits")
	}

	if !pincodeRe.MatchString(e.Pincode) {
		return invalid("Pincode must be 6 digits")
	}

	if e.Quantity < 1 || e.Quantity > MaxEnquiryQuantity {
		return invalid(fmt.Sprintf("Quantity must be between 1 and %d", MaxEnquiryQuantity))
	}

	return nil
}
