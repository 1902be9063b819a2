package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
)

const (
	msgRateLimited        = "слишком много запросов, попробуйте позже"
	msgLimiterUnavailable = "сервис временно недоступен"
)

// Counter считает запросы в окне по ключу
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisCounter счётчик фиксированного окна в redis, общий для всех инстансов
type RedisCounter struct {
	rdb    redis.Scripter
	window time.Duration
}

// NewRedisCounter создает счётчик с окном window
func NewRedisCounter(rdb redis.Scripter, window time.Duration) *RedisCounter {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisCounter{rdb: rdb, window: window}
}

// Incr увеличивает счётчик ключа, первый инкремент в окне выставляет TTL
func (c *RedisCounter) Incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, c.rdb, []string{key}, c.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}

	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

// KeyFunc возвращает ключ клиента, по которому считаются запросы
type KeyFunc func(r *http.Request) string

// RateLimiter ограничивает частоту запросов на клиента
// По умолчанию ключ это аутентифицированный пользователь (см. ByUser)
type RateLimiter struct {
	counter  Counter
	limit    int64
	prefix   string
	failOpen bool
	key      KeyFunc
	logger   Logger
}

// NewRateLimiter создает ограничитель
// failOpen пропускает запросы, если счётчик недоступен
func NewRateLimiter(counter Counter, limit int, prefix string, failOpen bool, logger Logger) *RateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if prefix == "" {
		prefix = "rl"
	}
	return &RateLimiter{
		counter:  counter,
		limit:    int64(limit),
		prefix:   prefix,
		failOpen: failOpen,
		key:      ByUser,
		logger:   logger,
	}
}

// KeyedBy возвращает копию ограничителя с другим ключом клиента
func (l *RateLimiter) KeyedBy(key KeyFunc) *RateLimiter {
	keyed := *l
	keyed.key = key
	return &keyed
}

// Middleware возвращает middleware для gorilla/mux
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := l.prefix + ":" + l.key(r)

		count, err := l.counter.Incr(r.Context(), key)
		if err != nil {
			l.logger.Warn("RateLimiter: counter error for key=%s: %v", key, err)
			if l.failOpen {
				next.ServeHTTP(w, r)
				return
			}
			handlers.RespondError(w, http.StatusServiceUnavailable, msgLimiterUnavailable)
			return
		}

		if count > l.limit {
			l.logger.Warn("RateLimiter: limit exceeded for key=%s (%d/%d)", key, count, l.limit)
			handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ByUser ключ по пользователю, положенному в контекст middleware Auth
// Без пользователя в контексте используется адрес соединения
func ByUser(r *http.Request) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	return "ip:" + remoteIP(r)
}

// ByClientIP ключ по IP клиента для маршрутов без аутентификации
// Заголовки X-User-ID и X-Forwarded-For от клиента не учитываются
// trustedHeader задаёт заголовок, который выставляет собственный прокси (пустой: только RemoteAddr)
// Из списка через запятую берётся последний адрес, добавленный прокси
func ByClientIP(trustedHeader string) KeyFunc {
	return func(r *http.Request) string {
		if trustedHeader != "" {
			if value := r.Header.Get(trustedHeader); value != "" {
				parts := strings.Split(value, ",")
				if ip := strings.TrimSpace(parts[len(parts)-1]); ip != "" {
					return "ip:" + ip
				}
			}
		}
		return "ip:" + remoteIP(r)
	}
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
