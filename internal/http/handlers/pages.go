package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/arsalan507/simplequran/internal/models"
	"github.com/arsalan507/simplequran/internal/pkg/log"
)

//go:embed pages/*.html
var pagesFS embed.FS

var pages = template.Must(template.New("pages").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	ParseFS(pagesFS, "pages/*.html"))

const (
	pageInvalid = "invalid.html"
	pageExpired = "expired.html"
	pagePortal  = "portal.html"
	pageError   = "error.html"
)

type pageView struct {
	Support   string
	PaymentID string
	Portal    *models.DownloadPortal
	Year      int
}

// writePage рендерит страницу в буфер: при сбое шаблона клиент получает
// plain-text 500, а не обрезанный HTML.
func writePage(w http.ResponseWriter, r *http.Request, status int, name string, view pageView) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, view); err != nil {
		log.From(r.Context()).Error("page_render_failed",
			slog.String("page", name),
			slog.String("err", err.Error()),
		)
		http.Error(w, "Something Went Wrong", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
