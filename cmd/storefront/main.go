package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arsalan507/simplequran/internal/config"
	"github.com/arsalan507/simplequran/internal/gateway/instamojo"
	sqhttp "github.com/arsalan507/simplequran/internal/http"
	"github.com/arsalan507/simplequran/internal/http/handlers"
	"github.com/arsalan507/simplequran/internal/mailer"
	"github.com/arsalan507/simplequran/internal/metrics"
	"github.com/arsalan507/simplequran/internal/ratelimit"
	"github.com/arsalan507/simplequran/internal/service"
	"github.com/arsalan507/simplequran/internal/storage"
	"github.com/arsalan507/simplequran/internal/storage/memory"
	"github.com/arsalan507/simplequran/internal/storage/minio"
	"github.com/arsalan507/simplequran/internal/storage/postgres"
	"github.com/arsalan507/simplequran/internal/token"
	"github.com/arsalan507/simplequran/internal/webhook"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting storefront", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	// Пробы готовности внешних зависимостей для /healthz.
	var probes []func(context.Context) error

	orders, closeOrders, err := openLedger(rootCtx, cfg, log)
	if err != nil {
		log.Error("ledger_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer closeOrders()

	if pg, ok := orders.(*postgres.Storage); ok {
		probes = append(probes, pg.Ping)
	}

	links, err := openLinks(rootCtx, cfg, log)
	if err != nil {
		log.Error("ebook_links_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	var limiter ratelimit.Limiter
	if cfg.Redis.RedisURL != "" {
		rl, err := ratelimit.NewRedis(cfg.Redis.RedisURL, "", cfg.RateLimit)
		if err != nil {
			log.Error("redis_connect_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		defer func() { _ = rl.Close() }()

		limiter = rl
		probes = append(probes, rl.Ping)
		log.Info("rate_limit_enabled",
			slog.Int("requests", cfg.RateLimit.Requests),
			slog.Duration("window", cfg.RateLimit.Window),
		)
	}

	codec, err := token.New(cfg.Token)
	if err != nil {
		log.Error("token_codec_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	verifier := webhook.NewVerifier(cfg.Instamojo.Salt, !cfg.Instamojo.SkipWebhookVerification)
	if !verifier.Enabled() {
		log.Warn("webhook_verification_disabled",
			slog.String("hint", "unset INSTAMOJO_SKIP_WEBHOOK_VERIFICATION in production"),
		)
	}

	gateway := instamojo.New(cfg.Instamojo, cfg.Timeouts.Gateway)
	if !gateway.Configured() {
		log.Warn("payment_gateway_not_configured")
	}

	sender := mailer.NewSMTPSender(cfg.Email)
	if !sender.Configured() {
		log.Warn("email_not_configured")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	svc := service.New(cfg, service.Deps{
		Gateway:  gateway,
		Notifier: mailer.NewDispatcher(sender, cfg),
		Orders:   orders,
		Links:    links,
		Tokens:   codec,
		Verifier: verifier,
		Metrics:  m,
	})
	log.Info("service_initialized")

	apiHandler := sqhttp.NewRouter(handlers.New(svc, cfg.Email.SupportEmail), sqhttp.Options{
		Logger:   log,
		Timeout:  cfg.Timeouts.Service,
		Metrics:  m,
		Limiter:  limiter,
		BasePath: "/api",
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&ready) != 1 {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		for _, probe := range probes {
			if err := probe(ctx); err != nil {
				http.Error(w, "dependency unavailable", http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	mux.Handle("/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("storefront_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.Shutdown)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	log.Info("service_stopped")
}

// openLedger подключает журнал заказов: PostgreSQL с миграциями,
// если задан DATABASE_URL, иначе журнал в памяти.
func openLedger(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.OrderStorage, func(), error) {
	if cfg.DB.DatabaseURL == "" {
		log.Warn("ledger_in_memory", slog.String("hint", "orders are lost on restart; set DATABASE_URL"))
		return memory.New(), func() {}, nil
	}

	if err := postgres.Migrate(cfg.DB.MigrationsPath, cfg.DB.DatabaseURL); err != nil {
		return nil, nil, err
	}
	log.Info("migrations_applied", slog.String("source", cfg.DB.MigrationsPath))

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pg, err := postgres.New(dbCtx, cfg.DB.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info("postgres_connected")

	return pg, pg.Close, nil
}

// openLinks выбирает источник ссылок на PDF: бакет S3/MinIO или статические URL.
func openLinks(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.EbookLinks, error) {
	if !cfg.S3.Enabled() {
		if cfg.Downloads.LinkV1 == "" || cfg.Downloads.LinkV2 == "" {
			log.Warn("download_links_not_configured")
		}
		return storage.NewStaticLinks(cfg.Downloads), nil
	}

	s3Ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	st, err := minio.New(s3Ctx, cfg.S3)
	if err != nil {
		return nil, err
	}
	log.Info("ebook_bucket_connected", slog.String("bucket", cfg.S3.Bucket))

	return st, nil
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
