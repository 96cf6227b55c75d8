package handlers

import (
	"net/http"

	apierrors "github.com/arsalan507/simplequran/internal/errors"
	"github.com/arsalan507/simplequran/internal/webhook"
)

// InstamojoWebhook — POST /api/webhook-instamojo.
// Процессор повторяет доставку при ответе не 2xx.
func (h *Handlers) InstamojoWebhook(w http.ResponseWriter, r *http.Request) {
	fields, err := webhook.ParsePayload(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if _, err := h.svc.HandleNotification(r.Context(), fields); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Webhook processed"})
}
