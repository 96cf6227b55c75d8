package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arsalan507/simplequran/internal/gateway/instamojo"
	"github.com/arsalan507/simplequran/internal/mailer"
	"github.com/arsalan507/simplequran/internal/ratelimit"
	"github.com/arsalan507/simplequran/internal/service"
	"github.com/arsalan507/simplequran/internal/storage"
	"github.com/arsalan507/simplequran/internal/webhook"
)

func wrap(err error) error { return fmt.Errorf("service.op: %w", err) }

func TestToHTTP_BaseMapping(t *testing.T) {
	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantMsg    string
	}{
		{"invalid_signature", wrap(webhook.ErrInvalidSignature), http.StatusUnauthorized, "Invalid signature"},
		{"malformed_payload", wrap(webhook.ErrMalformedPayload), http.StatusBadRequest, "Invalid payload"},
		{"method", service.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "Method not allowed"},
		{"limited", wrap(ratelimit.ErrLimited), http.StatusTooManyRequests, "Too many requests"},
		{"gateway_not_configured", wrap(instamojo.ErrNotConfigured), http.StatusInternalServerError, "Payment gateway not configured"},
		{"webhook_not_configured", wrap(webhook.ErrNotConfigured), http.StatusInternalServerError, "Webhook verification not configured"},
		{"mailer_not_configured", wrap(mailer.ErrNotConfigured), http.StatusInternalServerError, "Email service not configured"},
		{"enquiry", wrap(service.ErrEnquiryNotSent), http.StatusInternalServerError, msgEnquiryNotSent},
		{"test_email", wrap(service.ErrTestEmailNotSent), http.StatusInternalServerError, "Failed to send test email"},
		{"no_links", wrap(storage.ErrNoLinks), http.StatusInternalServerError, "Internal server error"},
		{"deadline", wrap(context.DeadlineExceeded), http.StatusGatewayTimeout, "Request timed out"},
		{"canceled", wrap(context.Canceled), StatusClientClosedRequest, "Request canceled"},
		{"internal", stderrors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantMsg, resp.Error)
			require.False(t, resp.Success)
		})
	}
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "Internal server error", resp.Error)
}

func TestToHTTP_Validation(t *testing.T) {
	err := wrap(&service.ValidationError{Message: "Missing required fields", Fields: []string{"name", "email"}})

	gotStatus, resp := ToHTTP(err)
	require.Equal(t, http.StatusBadRequest, gotStatus)
	require.Equal(t, "Missing required fields", resp.Error)
	require.Equal(t, []string{"name", "email"}, resp.Required)
}

func TestToHTTP_Upstream(t *testing.T) {
	err := wrap(&instamojo.UpstreamError{Status: 400, Message: "Phone is invalid", Details: map[string]any{"phone": "bad"}})

	gotStatus, resp := ToHTTP(err)
	require.Equal(t, http.StatusBadRequest, gotStatus)
	require.Equal(t, "Phone is invalid", resp.Error)
	require.Equal(t, map[string]any{"phone": "bad"}, resp.Details)

	// без ответа процессора (сеть, таймаут) - 500
	gotStatus, _ = ToHTTP(&instamojo.UpstreamError{Message: "Payment request failed"})
	require.Equal(t, http.StatusInternalServerError, gotStatus)
}

func TestToHTTP_MalformedResponse(t *testing.T) {
	gotStatus, resp := ToHTTP(wrap(instamojo.ErrMalformedResponse))
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "Failed to create payment request", resp.Error)
	require.Equal(t, "Invalid response structure from payment gateway", resp.Details)
}

// Тестовое письмо оборачивает и ErrTestEmailNotSent, и причину.
func TestToHTTP_TestEmailNotConfigured(t *testing.T) {
	err := fmt.Errorf("service.op: %w: %w", service.ErrTestEmailNotSent, mailer.ErrNotConfigured)

	_, resp := ToHTTP(err)
	require.Equal(t, "Email service not configured", resp.Error)
}

// Заявка никогда не раскрывает причину сбоя.
func TestToHTTP_EnquiryHidesCause(t *testing.T) {
	err := fmt.Errorf("service.op: %w", service.ErrEnquiryNotSent)

	_, resp := ToHTTP(err)
	require.Equal(t, msgEnquiryNotSent, resp.Error)
	require.Nil(t, resp.Details)
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/create-payment", nil)
	req.Header.Set("X-Request-Id", "rid-1")

	WriteError(rr, req, wrap(webhook.ErrInvalidSignature))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
	require.Equal(t, "Invalid signature", body["error"])
	require.Equal(t, "rid-1", body["request_id"])
	require.NotContains(t, body, "required")
	require.NotContains(t, body, "details")
}
