// ratelimit — лимит запросов с одного клиента на окно времени (Redis, fixed window).
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arsalan507/simplequran/internal/config"
)

// ErrLimited — лимит исчерпан. HTTP: 429.
var ErrLimited = errors.New("rate limit exceeded")

// Limiter — минимальный контракт лимитера.
type Limiter interface {
	// Allow учитывает запрос по ключу и возвращает ErrLimited сверх лимита.
	Allow(ctx context.Context, key string) error
}

// RedisLimiter считает запросы счётчиком INCR с TTL окна.
type RedisLimiter struct {
	rdb    *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

var _ Limiter = (*RedisLimiter)(nil)

// NewRedis создаёт лимитер из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "sq:rl:".
func NewRedis(redisURL, prefix string, cfg config.RateLimitConfig) (*RedisLimiter, error) {
	const op = "ratelimit.NewRedis"

	if prefix == "" {
		prefix = "sq:rl:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisLimiter{
		rdb:    rdb,
		prefix: prefix,
		limit:  int64(cfg.Requests),
		window: cfg.Window,
	}, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) error {
	const op = "ratelimit.Allow"

	k := l.prefix + key

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if incr.Val() > l.limit {
		return ErrLimited
	}

	return nil
}

// Ping проверяет доступность Redis (для /healthz).
func (l *RedisLimiter) Ping(ctx context.Context) error { return l.rdb.Ping(ctx).Err() }

func (l *RedisLimiter) Close() error { return l.rdb.Close() }
