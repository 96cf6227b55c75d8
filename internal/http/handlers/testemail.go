package handlers

import (
	"net/http"
	"strings"

	apierrors "github.com/arsalan507/simplequran/internal/errors"
	"github.com/arsalan507/simplequran/internal/models"
)

// TestEmail — POST /api/test-email.
func (h *Handlers) TestEmail(w http.ResponseWriter, r *http.Request) {
	var in models.TestEmailRequest
	if err := decodeJSON(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.SendTestEmail(r.Context(), in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Test email sent to " + strings.TrimSpace(in.Email),
	})
}
