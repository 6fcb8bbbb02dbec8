package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter counts actions per account inside a fixed window. The
// Redis persister implements it on INCR+EXPIRE; MemoryRateLimiter backs
// the file store.
type RateLimiter interface {
	Allow(account, action string, limit int, window time.Duration) (bool, error)
}

// MemoryRateLimiter is the in-process fixed-window limiter. Counters
// reset lazily when a request arrives past the window end.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
	now     func() time.Time
}

type rateWindow struct {
	count   int
	resetAt time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		windows: make(map[string]*rateWindow),
		now:     time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(account, action string, limit int, window time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key := account + "|" + action
	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		l.windows[key] = &rateWindow{count: 1, resetAt: now.Add(window)}
		return true, nil
	}
	w.count++
	return w.count <= limit, nil
}

// RateLimitMiddleware throttles the wager endpoints per account. Crash
// gets more headroom because a round is two or three calls
// (start, cashout or report); everything outside /games/ passes through.
func RateLimitMiddleware(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := c.GetString("account")
		if account == "" {
			c.Next()
			return
		}

		path := c.Request.URL.Path

		var limit int
		var window time.Duration

		switch {
		case strings.Contains(path, "/games/crash"):
			limit = 60
			window = time.Minute
		case strings.Contains(path, "/games/"):
			limit = 30
			window = time.Minute
		default:
			c.Next()
			return
		}

		allowed, err := limiter.Allow(account, path, limit, window)
		if err != nil || !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": window.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
