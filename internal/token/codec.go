// token выпускает и проверяет подписанные ссылки на скачивание (JWT HS256).
//
// Токен самодостаточен: валидность определяется только подписью и сроком
// действия. Детали ошибок библиотеки наружу не выходят: вызывающий получает
// ErrInvalidToken или ErrTokenExpired.
package token

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/arsalan507/simplequran/internal/config"
	"github.com/arsalan507/simplequran/internal/models"
	"github.com/arsalan507/simplequran/internal/pkg/log"
)

var (
	// ErrInvalidToken — токен испорчен, подписан другим ключом/алгоритмом
	// или не содержит данных заказа. HTTP: 401 (страница "ссылка истекла").
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк. HTTP: 401.
	// errors.Is(ErrTokenExpired, ErrInvalidToken) == true.
	ErrTokenExpired = fmt.Errorf("%w: expired", ErrInvalidToken)

	// ErrEmptySecret — секрет подписи не задан.
	ErrEmptySecret = errors.New("token secret is empty")
)

const leeway = 5 * time.Second

type orderClaims struct {
	OrderID   string `json:"oid"`
	Email     string `json:"email"`
	PaymentID string `json:"pid"`
	jwt.RegisteredClaims
}

// Codec — кодек токенов заказа.
type Codec struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// New создаёт Codec. Пустой секрет — ошибка: запасного значения нет.
func New(cfg config.TokenConfig) (*Codec, error) {
	const op = "token.New"

	if cfg.Secret == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptySecret)
	}

	return &Codec{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// Issue подписывает данные заказа. Нулевой IssuedAt заменяется текущим временем.
func (c *Codec) Issue(ctx context.Context, data models.OrderData) (string, error) {
	const op = "token.Codec.Issue"

	issued := data.IssuedAt
	if issued.IsZero() {
		issued = c.now()
	}
	issued = issued.UTC().Truncate(time.Second)

	claims := orderClaims{
		OrderID:   data.OrderID,
		Email:     data.Email,
		PaymentID: data.PaymentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    c.issuer,
			Subject:   data.PaymentID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(c.now().Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		log.From(ctx).Error("order_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// Validate проверяет подпись, алгоритм, издателя и срок действия.
func (c *Codec) Validate(tokenStr string) (models.OrderData, error) {
	const op = "token.Codec.Validate"

	if tokenStr == "" {
		return models.OrderData{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(leeway),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &orderClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, ErrInvalidToken
			}

			return c.secret, nil
		},
		opts...,
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.OrderData{}, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return models.OrderData{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := parsed.Claims.(*orderClaims)
	if !ok || !parsed.Valid || claims.PaymentID == "" {
		return models.OrderData{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	data := models.OrderData{
		OrderID:   claims.OrderID,
		Email:     claims.Email,
		PaymentID: claims.PaymentID,
	}
	if claims.IssuedAt != nil {
		data.IssuedAt = claims.IssuedAt.Time.UTC()
	}

	return data, nil
}
