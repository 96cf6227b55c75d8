package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	apierrors "github.com/arsalan507/simplequran/internal/errors"
	"github.com/arsalan507/simplequran/internal/http/handlers"
	"github.com/arsalan507/simplequran/internal/http/middleware"
	"github.com/arsalan507/simplequran/internal/metrics"
	"github.com/arsalan507/simplequran/internal/ratelimit"
	"github.com/arsalan507/simplequran/internal/service"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	Metrics *metrics.Metrics
	// Limiter ограничивает формы заявок; nil — без лимита.
	Limiter  ratelimit.Limiter
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(h *handlers.Handlers, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),             // безопасно ловим паники
		middleware.RequestID(),           // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger),  // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(opts.Metrics), // длительность по шаблону маршрута
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	root.MethodNotAllowed(methodNotAllowed)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		sub.MethodNotAllowed(methodNotAllowed)
		registerRoutes(sub, h, opts)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, opts)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, opts Options) {
	// платёж
	r.Post("/create-payment", h.CreatePayment)
	r.Post("/webhook-instamojo", h.InstamojoWebhook)

	// портал скачивания
	r.Get("/download", h.Download)

	// формы заявок: лимит по IP
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.Limiter))

		r.With(enquiryCORS()).Post("/hardcopy-enquiry", h.HardcopyEnquiry)
		r.With(enquiryCORS()).Options("/hardcopy-enquiry", preflight)
		r.Post("/test-email", h.TestEmail)
	})
}

// enquiryCORS — форма заявки встраивается на сторонние страницы.
func enquiryCORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
}

// preflight отвечает 200 на OPTIONS без Origin (запрос не от браузера).
func preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	apierrors.WriteError(w, r, service.ErrMethodNotAllowed)
}
