package http

import (
	"context"
	"strconv"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// LoginLimiter limita los intentos de login por IP. Usa Redis si está disponible y un
// limitador en memoria si no (o si Redis falla).
type LoginLimiter struct {
	limiter  *redis_rate.Limiter
	fallback *localLimiter
	limit    redis_rate.Limit
	log      zerolog.Logger
}

// NewLoginLimiter construye el limitador. rdb puede ser nil.
func NewLoginLimiter(rdb *redis.Client, perMinute int, log zerolog.Logger) *LoginLimiter {
	l := &LoginLimiter{
		fallback: newLocalLimiter(),
		limit:    redis_rate.PerMinute(perMinute),
		log:      log,
	}
	if rdb != nil {
		l.limiter = redis_rate.NewLimiter(rdb)
	}
	return l
}

// Handler deja pasar la petición o llama a onLimited con los segundos a esperar.
// Con perMinute <= 0 no limita.
func (l *LoginLimiter) Handler(onLimited func(c *fiber.Ctx, retryAfter time.Duration) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l.limit.Rate <= 0 {
			return c.Next()
		}
		key := "ratelimit:login:" + c.IP()
		res := l.allow(c.UserContext(), key)

		c.Set("X-RateLimit-Limit", strconv.Itoa(l.limit.Rate))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if res.Allowed == 0 {
			retry := res.RetryAfter
			if retry < time.Second {
				retry = time.Second
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(retry.Seconds())))
			return onLimited(c, retry)
		}
		return c.Next()
	}
}

func (l *LoginLimiter) allow(ctx context.Context, key string) *redis_rate.Result {
	if l.limiter != nil {
		res, err := l.limiter.Allow(ctx, key, l.limit)
		if err == nil {
			return res
		}
		l.log.Warn().Err(err).Msg("rate limit: redis no disponible, usando memoria")
	}
	return l.fallback.allow(key, l.limit)
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess int64
}

// localLimiter token bucket por clave en memoria del proceso.
type localLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	lastGC   time.Time
}

const entryTTL = 10 * time.Minute

func newLocalLimiter() *localLimiter {
	return &localLimiter{limiters: make(map[string]*limiterEntry), lastGC: time.Now()}
}

func (l *localLimiter) allow(key string, limit redis_rate.Limit) *redis_rate.Result {
	ratePerSec := float64(limit.Rate) / limit.Period.Seconds()
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastGC) > entryTTL {
		cutoff := now.Add(-entryTTL).Unix()
		for k, e := range l.limiters {
			if e.lastAccess < cutoff {
				delete(l.limiters, k)
			}
		}
		l.lastGC = now
	}

	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(ratePerSec), limit.Burst)}
		l.limiters[key] = entry
	}
	entry.lastAccess = now.Unix()

	allowed := entry.limiter.AllowN(now, 1)
	remaining := int(entry.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	res := &redis_rate.Result{Limit: limit, Remaining: remaining, RetryAfter: -1}
	if allowed {
		res.Allowed = 1
	} else {
		res.RetryAfter = time.Duration(float64(time.Second) / ratePerSec)
	}
	return res
}
