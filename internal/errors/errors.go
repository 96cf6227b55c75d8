// errors стандартизирует ответы об ошибках HTTP-слоя витрины.
// На вход он принимает ошибку сервисного слоя, а на выход даёт:
//   - корректный HTTP-статус;
//   - JSON-конверт {success:false, error, ...} без утечки внутренних деталей.
//
// Источник истинности по маппингу: переменные ошибок пакетов service,
// webhook, mailer, gateway/instamojo и ratelimit.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/arsalan507/simplequran/internal/gateway/instamojo"
	"github.com/arsalan507/simplequran/internal/mailer"
	"github.com/arsalan507/simplequran/internal/ratelimit"
	"github.com/arsalan507/simplequran/internal/service"
	"github.com/arsalan507/simplequran/internal/webhook"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

const (
	msgInternal        = "Internal server error"
	msgEnquiryNotSent  = "Failed to submit enquiry. Please try again or contact info.simplequran@gmail.com"
	msgPaymentFailed   = "Failed to create payment request"
	msgMalformedDetail = "Invalid response structure from payment gateway"
)

// ErrorResponse — единый формат ответа об ошибке.
// Required заполняется, когда не хватает обязательных полей формы.
// RequestID прокидывается из X-Request-Id, если есть (для трассировки).
type ErrorResponse struct {
	Success   bool     `json:"success"`
	Error     string   `json:"error"`
	Details   any      `json:"details,omitempty"`
	Required  []string `json:"required,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

func response(msg string) ErrorResponse { return ErrorResponse{Error: msg} }

// ToHTTP конвертирует ошибку в HTTP-статус и тело ответа.
//
// Поведение:
//   - err == nil - это программная ошибка вызова: 500, чтобы не послать
//     "200 OK" с телом ошибки и не маскировать баг;
//   - известные ошибки маппятся по таблице ниже;
//   - прочее - 500 без деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, response(msgInternal)
	}

	var verr *service.ValidationError
	if stderrors.As(err, &verr) {
		resp := response(verr.Message)
		resp.Required = verr.Fields
		return http.StatusBadRequest, resp
	}

	var uerr *instamojo.UpstreamError
	if stderrors.As(err, &uerr) {
		resp := response(uerr.Message)
		resp.Details = uerr.Details
		return uerr.HTTPStatus(), resp
	}

	switch {
	case stderrors.Is(err, webhook.ErrInvalidSignature):
		return http.StatusUnauthorized, response("Invalid signature")
	case stderrors.Is(err, webhook.ErrMalformedPayload):
		return http.StatusBadRequest, response("Invalid payload")
	case stderrors.Is(err, service.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, response("Method not allowed")
	case stderrors.Is(err, ratelimit.ErrLimited):
		return http.StatusTooManyRequests, response("Too many requests")
	case stderrors.Is(err, instamojo.ErrNotConfigured):
		return http.StatusInternalServerError, response("Payment gateway not configured")
	case stderrors.Is(err, instamojo.ErrMalformedResponse):
		resp := response(msgPaymentFailed)
		resp.Details = msgMalformedDetail
		return http.StatusInternalServerError, resp
	case stderrors.Is(err, webhook.ErrNotConfigured):
		return http.StatusInternalServerError, response("Webhook verification not configured")
	case stderrors.Is(err, service.ErrEnquiryNotSent):
		return http.StatusInternalServerError, response(msgEnquiryNotSent)
	// тестовое письмо оборачивает и причину: ненастроенная почта важнее
	case stderrors.Is(err, mailer.ErrNotConfigured):
		return http.StatusInternalServerError, response("Email service not configured")
	case stderrors.Is(err, service.ErrTestEmailNotSent):
		return http.StatusInternalServerError, response("Failed to send test email")
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, response("Request timed out")
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, response("Request canceled")
	default:
		return http.StatusInternalServerError, response(msgInternal)
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
