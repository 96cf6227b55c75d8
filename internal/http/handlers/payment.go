package handlers

import (
	"net/http"

	apierrors "github.com/arsalan507/simplequran/internal/errors"
	"github.com/arsalan507/simplequran/internal/models"
	"github.com/arsalan507/simplequran/internal/service"
)

type paymentResponse struct {
	Success    bool   `json:"success"`
	PaymentURL string `json:"payment_url"`
	PaymentID  string `json:"payment_id"`
}

// CreatePayment — POST /api/create-payment.
func (h *Handlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var in models.CheckoutRequest
	if err := decodeJSON(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}

	link, err := h.svc.CreatePayment(r.Context(), in, service.RedirectBase(r.Header.Get("X-Forwarded-Proto"), host))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, paymentResponse{
		Success:    true,
		PaymentURL: link.PaymentURL,
		PaymentID:  link.PaymentID,
	})
}
