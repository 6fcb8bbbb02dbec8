package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestMemoryRateLimiterFixedWindow(t *testing.T) {
	l := NewMemoryRateLimiter()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		ok, err := l.Allow("alice", "/api/games/slots/spin", 3, time.Minute)
		if err != nil || !ok {
			t.Fatalf("request %d within the limit must pass, got ok=%v err=%v", i+1, ok, err)
		}
	}
	if ok, _ := l.Allow("alice", "/api/games/slots/spin", 3, time.Minute); ok {
		t.Fatal("request over the limit must be rejected")
	}

	// A different account or action keeps its own counter.
	if ok, _ := l.Allow("bob", "/api/games/slots/spin", 3, time.Minute); !ok {
		t.Fatal("counters must be per account")
	}
	if ok, _ := l.Allow("alice", "/api/games/coinflip", 3, time.Minute); !ok {
		t.Fatal("counters must be per action")
	}

	// Past the window end the counter resets.
	now = now.Add(61 * time.Second)
	if ok, _ := l.Allow("alice", "/api/games/slots/spin", 3, time.Minute); !ok {
		t.Fatal("counter must reset after the window")
	}
}

func newLimitedRouter(limiter RateLimiter, account string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if account != "" {
			c.Set("account", account)
		}
	})
	r.Use(RateLimitMiddleware(limiter))
	handler := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	r.POST("/api/games/blackjack/start", handler)
	r.POST("/api/games/crash/cashout", handler)
	r.POST("/api/economy/work", handler)
	return r
}

func do(r *gin.Engine, path string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitMiddlewareThrottlesGameRoutes(t *testing.T) {
	r := newLimitedRouter(NewMemoryRateLimiter(), "alice")

	for i := 0; i < 30; i++ {
		if code := do(r, "/api/games/blackjack/start"); code != http.StatusOK {
			t.Fatalf("request %d must pass, got %d", i+1, code)
		}
	}
	if code := do(r, "/api/games/blackjack/start"); code != http.StatusTooManyRequests {
		t.Fatalf("request 31 must be throttled, got %d", code)
	}

	// Crash endpoints have their own, higher budget.
	for i := 0; i < 60; i++ {
		if code := do(r, "/api/games/crash/cashout"); code != http.StatusOK {
			t.Fatalf("crash request %d must pass, got %d", i+1, code)
		}
	}
	if code := do(r, "/api/games/crash/cashout"); code != http.StatusTooManyRequests {
		t.Fatalf("crash request 61 must be throttled, got %d", code)
	}

	// Non-game routes are never limited.
	for i := 0; i < 40; i++ {
		if code := do(r, "/api/economy/work"); code != http.StatusOK {
			t.Fatalf("economy request %d must pass, got %d", i+1, code)
		}
	}
}

func TestRateLimitMiddlewareSkipsAnonymous(t *testing.T) {
	r := newLimitedRouter(NewMemoryRateLimiter(), "")

	for i := 0; i < 35; i++ {
		if code := do(r, "/api/games/blackjack/start"); code != http.StatusOK {
			t.Fatalf("request %d without an account must pass through, got %d", i+1, code)
		}
	}
}
