package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/arsalan507/simplequran/internal/pkg/log"
	"github.com/arsalan507/simplequran/internal/service"
	"github.com/arsalan507/simplequran/internal/token"
)

const noPaymentID = "N/A"

// Download — GET /api/download?token=…&payment_id=…; отвечает HTML-страницей.
func (h *Handlers) Download(w http.ResponseWriter, r *http.Request) {
	view := pageView{Support: h.support, Year: time.Now().Year()}

	defer func() {
		if rec := recover(); rec != nil {
			log.From(r.Context()).Error("download_portal_panic", slog.Any("reason", rec))
			writePage(w, r, http.StatusInternalServerError, pageError, view)
		}
	}()

	q := r.URL.Query()

	portal, err := h.svc.ResolveDownload(r.Context(), q.Get("token"))
	switch {
	case err == nil:
		view.Portal = portal
		writePage(w, r, http.StatusOK, pagePortal, view)
	case errors.Is(err, service.ErrMissingToken):
		writePage(w, r, http.StatusBadRequest, pageInvalid, view)
	case errors.Is(err, token.ErrInvalidToken):
		// payment_id из ссылки как есть; экранирует html/template
		view.PaymentID = q.Get("payment_id")
		if view.PaymentID == "" {
			view.PaymentID = noPaymentID
		}
		writePage(w, r, http.StatusUnauthorized, pageExpired, view)
	default:
		log.From(r.Context()).Error("download_portal_failed", slog.String("err", err.Error()))
		writePage(w, r, http.StatusInternalServerError, pageError, view)
	}
}
