package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/arsalan507/simplequran/internal/models"
	"github.com/arsalan507/simplequran/internal/storage"
)

// SaveOrder записывает заказ. Повтор payment_id → storage.ErrAlreadyExists.
func (s *Storage) SaveOrder(ctx context.Context, order *models.Order) error {
	const op = "storage.postgres.SaveOrder"

	query := `
		INSERT INTO orders(id, payment_id, payment_request_id, email, buyer_name,
			buyer_phone, amount, purpose, status, created_at, email_sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.db.Exec(ctx, query,
		order.ID,
		order.PaymentID,
		order.PaymentRequestID,
		order.Email,
		order.BuyerName,
		order.BuyerPhone,
		order.Amount,
		order.Purpose,
		order.Status,
		order.CreatedAt,
		order.EmailSentAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// OrderByPaymentID находит заказ по id транзакции.
func (s *Storage) OrderByPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	const op = "storage.postgres.OrderByPaymentID"

	query := `
		SELECT id, payment_id, payment_request_id, email, buyer_name,
			buyer_phone, amount, purpose, status, created_at, email_sent_at
		FROM orders
		WHERE payment_id = $1
	`

	var order models.Order
	err := s.db.QueryRow(ctx, query, paymentID).Scan(
		&order.ID,
		&order.PaymentID,
		&order.PaymentRequestID,
		&order.Email,
		&order.BuyerName,
		&order.BuyerPhone,
		&order.Amount,
		&order.Purpose,
		&order.Status,
		&order.CreatedAt,
		&order.EmailSentAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &order, nil
}

// ClaimEmail занимает отправку письма одним UPDATE: строка меняется, только
// если письмо не отправлено и чужая заявка отсутствует или старше lease.
func (s *Storage) ClaimEmail(ctx context.Context, paymentID string, at time.Time, lease time.Duration) (bool, error) {
	const op = "storage.postgres.ClaimEmail"

	query := `
		UPDATE orders
		SET email_claimed_at = $2
		WHERE payment_id = $1
			AND email_sent_at IS NULL
			AND (email_claimed_at IS NULL OR email_claimed_at < $3)
		RETURNING id
	`

	var id uuid.UUID
	err := s.db.QueryRow(ctx, query, paymentID, at, at.Add(-lease)).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	return true, nil
}

// ReleaseEmail снимает заявку, если письмо так и не ушло.
func (s *Storage) ReleaseEmail(ctx context.Context, paymentID string) error {
	const op = "storage.postgres.ReleaseEmail"

	query := `
		UPDATE orders
		SET email_claimed_at = NULL
		WHERE payment_id = $1 AND email_sent_at IS NULL
	`

	if _, err := s.db.Exec(ctx, query, paymentID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// MarkEmailSent ставит отметку об отправке письма. Повторная отметка
// не перетирает первую.
func (s *Storage) MarkEmailSent(ctx context.Context, paymentID string, at time.Time) error {
	const op = "storage.postgres.MarkEmailSent"

	query := `
		UPDATE orders
		SET email_sent_at = COALESCE(email_sent_at, $2)
		WHERE payment_id = $1
	`

	tag, err := s.db.Exec(ctx, query, paymentID, at)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
