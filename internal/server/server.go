package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/zizouhuweidi/trivia/internal/handler"
	"github.com/zizouhuweidi/trivia/internal/monitoring"
	"github.com/zizouhuweidi/trivia/internal/service"
	"github.com/zizouhuweidi/trivia/internal/tracing"
	ws "github.com/zizouhuweidi/trivia/internal/websocket"
)

// Options holds everything the HTTP server is assembled from. Hub, Metrics,
// Tracer and RateLimit are optional.
type Options struct {
	Log         *zap.Logger
	Trivia      *service.TriviaService
	Hub         *ws.Hub
	Metrics     *monitoring.Metrics
	Tracer      trace.TracerProvider
	RateLimit   middleware.RateLimiterStore
	Health      map[string]handler.Pinger
	CORSOrigins []string
}

// New builds the echo instance serving the trivia API
func New(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(opts.Log)

	tp := opts.Tracer
	if tp == nil {
		tp = noop.NewTracerProvider()
	}

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(opts.Log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(tracing.Middleware(tp))
	if opts.Metrics != nil {
		e.Use(opts.Metrics.Middleware())
	}
	if opts.RateLimit != nil {
		e.Use(handler.RateLimit(opts.RateLimit, "/health", "/metrics", "/ws"))
	}

	// Routes
	handler.NewTriviaHandler(opts.Trivia).Register(e)
	handler.NewHealthHandler(opts.Health, opts.Log).Register(e)
	if opts.Hub != nil {
		handler.NewWebSocketHandler(opts.Hub).Register(e)
	}
	if opts.Metrics != nil {
		e.GET("/metrics", opts.Metrics.Handler())
	}

	return e
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}

			if v.Status >= 500 {
				log.Error("request", fields...)
			} else {
				log.Info("request", fields...)
			}
			return nil
		},
	})
}
