// memory — журнал заказов в памяти процесса (local/dev, тесты).
// Содержимое теряется при перезапуске.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arsalan507/simplequran/internal/models"
	"github.com/arsalan507/simplequran/internal/storage"
)

type Storage struct {
	mu     sync.RWMutex
	orders map[string]models.Order
	// claims — время заявки на отправку письма по payment_id.
	claims map[string]time.Time
}

var _ storage.OrderStorage = (*Storage)(nil)

func New() *Storage {
	return &Storage{
		orders: make(map[string]models.Order),
		claims: make(map[string]time.Time),
	}
}

func (s *Storage) SaveOrder(ctx context.Context, order *models.Order) error {
	const op = "storage.memory.SaveOrder"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.PaymentID]; ok {
		return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
	}

	s.orders[order.PaymentID] = clone(*order)

	return nil
}

func (s *Storage) OrderByPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	const op = "storage.memory.OrderByPaymentID"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[paymentID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	out := clone(o)
	return &out, nil
}

func (s *Storage) MarkEmailSent(ctx context.Context, paymentID string, at time.Time) error {
	const op = "storage.memory.MarkEmailSent"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[paymentID]
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	// первая отметка остаётся
	if o.EmailSentAt == nil {
		o.EmailSentAt = &at
		s.orders[paymentID] = o
	}

	return nil
}

func (s *Storage) ClaimEmail(ctx context.Context, paymentID string, at time.Time, lease time.Duration) (bool, error) {
	const op = "storage.memory.ClaimEmail"

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[paymentID]
	if !ok {
		return false, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if o.EmailSentAt != nil {
		return false, nil
	}

	if claimed, ok := s.claims[paymentID]; ok && !claimed.Before(at.Add(-lease)) {
		return false, nil
	}

	s.claims[paymentID] = at

	return true, nil
}

func (s *Storage) ReleaseEmail(ctx context.Context, paymentID string) error {
	const op = "storage.memory.ReleaseEmail"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.claims, paymentID)

	return nil
}

// clone копирует заказ вместе с EmailSentAt, чтобы вызывающий не
// менял запись журнала через указатель.
func clone(o models.Order) models.Order {
	if o.EmailSentAt != nil {
		t := *o.EmailSentAt
		o.EmailSentAt = &t
	}

	return o
}
