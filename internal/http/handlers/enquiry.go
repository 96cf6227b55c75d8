package handlers

import (
	"net/http"

	apierrors "github.com/arsalan507/simplequran/internal/errors"
	"github.com/arsalan507/simplequran/internal/models"
)

// HardcopyEnquiry — POST /api/hardcopy-enquiry. CORS навешивает роутер.
func (h *Handlers) HardcopyEnquiry(w http.ResponseWriter, r *http.Request) {
	var in models.HardcopyEnquiry
	if err := decodeJSON(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.SubmitEnquiry(r.Context(), in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Enquiry submitted successfully! We will contact you shortly.",
	})
}
