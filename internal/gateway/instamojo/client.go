// instamojo — клиент API платёжных запросов Instamojo (v1.1).
//
// Клиент не повторяет запросы: ошибка процессора возвращается вызывающему
// как *UpstreamError с сохранённым HTTP-статусом и телом ответа для отладки.
package instamojo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/arsalan507/simplequran/internal/config"
	"github.com/arsalan507/simplequran/internal/models"
	"github.com/arsalan507/simplequran/internal/pkg/log"
	"github.com/arsalan507/simplequran/internal/pkg/redact"
)

const (
	// DefaultTimeout — верхняя граница на вызов процессора.
	DefaultTimeout = 30 * time.Second

	defaultMessage = "Payment request failed"
)

var (
	// ErrNotConfigured — не заданы API key / auth token. HTTP: 500.
	ErrNotConfigured = errors.New("payment gateway not configured")

	// ErrMalformedResponse — успешный ответ без объекта payment_request. HTTP: 500.
	ErrMalformedResponse = errors.New("invalid response structure from payment gateway")
)

// UpstreamError — отказ процессора или сбой транспорта.
// Status == 0 означает, что ответа не было (таймаут, сеть).
type UpstreamError struct {
	Status  int
	Message string
	Details any
	err     error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("instamojo: %s", e.Message)
	}

	return fmt.Sprintf("instamojo: status %d: %s", e.Status, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.err }

// HTTPStatus — статус для ответа клиенту: статус процессора, иначе 500.
func (e *UpstreamError) HTTPStatus() int {
	if e.Status >= 400 && e.Status <= 599 {
		return e.Status
	}

	return http.StatusInternalServerError
}

// Client — клиент создания платёжных запросов.
type Client struct {
	http      *resty.Client
	apiKey    string
	authToken string
}

// New создаёт клиент. Ключи очищаются от мусорных символов.
func New(cfg config.InstamojoConfig, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:      hc,
		apiKey:    SanitizeCredential(cfg.APIKey),
		authToken: SanitizeCredential(cfg.AuthToken),
	}
}

// Configured сообщает, заданы ли оба ключа.
func (c *Client) Configured() bool { return c.apiKey != "" && c.authToken != "" }

type createRequestBody struct {
	Purpose               string `json:"purpose"`
	Amount                string `json:"amount"`
	BuyerName             string `json:"buyer_name"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	RedirectURL           string `json:"redirect_url"`
	SendEmail             bool   `json:"send_email"`
	SendSMS               bool   `json:"send_sms"`
	AllowRepeatedPayments bool   `json:"allow_repeated_payments"`
}

type createResponseBody struct {
	Success        bool `json:"success"`
	PaymentRequest *struct {
		ID      string `json:"id"`
		LongURL string `json:"longurl"`
	} `json:"payment_request"`
}

// CreatePaymentRequest создаёт платёжный запрос и возвращает ссылку на оплату.
func (c *Client) CreatePaymentRequest(ctx context.Context, req models.PaymentRequest) (*models.PaymentLink, error) {
	const op = "gateway.instamojo.CreatePaymentRequest"

	lg := log.From(ctx)

	if !c.Configured() {
		lg.Error("payment_gateway_not_configured",
			slog.String("op", op),
			slog.String("api_key", redact.Secret(c.apiKey)),
			slog.String("auth_token", redact.Secret(c.authToken)),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	body := createRequestBody{
		Purpose:               req.Purpose,
		Amount:                req.Amount,
		BuyerName:             req.BuyerName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		RedirectURL:           req.RedirectURL,
		SendEmail:             true,
		SendSMS:               false,
		AllowRepeatedPayments: false,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", c.apiKey).
		SetHeader("X-Auth-Token", c.authToken).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/payment-requests/")

	if err != nil {
		lg.Error("payment_request_transport_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, &UpstreamError{Message: defaultMessage, err: err}
	}

	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		uerr := upstreamFromBody(resp.StatusCode(), resp.Body())
		lg.Error("payment_request_rejected",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode()),
			slog.String("message", uerr.Message),
		)
		return nil, uerr
	}

	var out createResponseBody
	if err := json.Unmarshal(resp.Body(), &out); err != nil || out.PaymentRequest == nil || out.PaymentRequest.LongURL == "" {
		lg.Error("payment_request_malformed_response",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrMalformedResponse)
	}

	lg.Info("payment_request_created",
		slog.String("payment_request_id", out.PaymentRequest.ID),
		slog.String("email", redact.Email(req.Email)),
	)

	return &models.PaymentLink{
		PaymentID:  out.PaymentRequest.ID,
		PaymentURL: out.PaymentRequest.LongURL,
	}, nil
}

// upstreamFromBody извлекает сообщение из тела ошибки: message, затем error.
// Нестроковые значения сериализуются в JSON.
func upstreamFromBody(status int, raw []byte) *UpstreamError {
	uerr := &UpstreamError{Status: status, Message: defaultMessage}

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &parsed); err != nil {
		if s := strings.TrimSpace(string(raw)); s != "" {
			uerr.Details = s
		}
		return uerr
	}

	uerr.Details = json.RawMessage(raw)

	for _, key := range []string{"message", "error"} {
		if msg := messageText(parsed[key]); msg != "" {
			uerr.Message = msg
			break
		}
	}

	return uerr
}

func messageText(v json.RawMessage) string {
	if len(v) == 0 || string(v) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}

	return string(v)
}
