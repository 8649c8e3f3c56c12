package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// WindowCounter counts requests per key in fixed windows
type WindowCounter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// windowStore adapts a WindowCounter to echo's rate limiter store. Counter
// failures let the request through.
type windowStore struct {
	counter WindowCounter
	limit   int
	window  time.Duration
	timeout time.Duration
	log     *zap.Logger
}

func (s *windowStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	allowed, err := s.counter.Allow(ctx, identifier, s.limit, s.window)
	if err != nil {
		s.log.Warn("rate limiter unavailable", zap.String("client", identifier), zap.Error(err))
		return true, nil
	}
	return allowed, nil
}

// NewWindowStore limits each client to limit requests per window using a
// shared counter
func NewWindowStore(counter WindowCounter, limit int, window time.Duration, log *zap.Logger) middleware.RateLimiterStore {
	return &windowStore{
		counter: counter,
		limit:   limit,
		window:  window,
		timeout: 500 * time.Millisecond,
		log:     log,
	}
}

// NewMemoryStore limits each client in process with a token bucket holding
// limit requests and refilling over window
func NewMemoryStore(limit int, window time.Duration) middleware.RateLimiterStore {
	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(limit) / window.Seconds()),
		Burst:     limit,
		ExpiresIn: 3 * window,
	})
}

// RateLimit rejects clients exceeding the store's budget with 429. Paths in
// exempt are never limited.
func RateLimit(store middleware.RateLimiterStore, exempt ...string) echo.MiddlewareFunc {
	skip := make(map[string]bool, len(exempt))
	for _, p := range exempt {
		skip[p] = true
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return skip[c.Path()]
		},
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.ErrForbidden
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.ErrTooManyRequests
		},
	})
}
