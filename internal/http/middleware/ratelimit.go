package middleware

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	apierrors "github.com/arsalan507/simplequran/internal/errors"
	"github.com/arsalan507/simplequran/internal/pkg/log"
	"github.com/arsalan507/simplequran/internal/ratelimit"
)

// RateLimit ограничивает частоту запросов с одного IP.
// l == nil делает мидлвар no-op. Сбой хранилища лимитов запрос не блокирует.
func RateLimit(l ratelimit.Limiter) Middleware {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// preflight CORS не расходует лимит
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			ip := ClientIP(r)
			if err := l.Allow(r.Context(), r.URL.Path+":"+ip); err != nil {
				if errors.Is(err, ratelimit.ErrLimited) {
					log.From(r.Context()).Warn("rate_limited",
						slog.String("path", r.URL.Path),
						slog.String("ip", ip),
					)
					apierrors.WriteError(w, r, err)
					return
				}

				log.From(r.Context()).Error("rate_limit_check_failed", slog.String("err", err.Error()))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP — адрес клиента: первый X-Forwarded-For, затем X-Real-Ip, затем RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if ip := strings.TrimSpace(r.Header.Get("X-Real-Ip")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
