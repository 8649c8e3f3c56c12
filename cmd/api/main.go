package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/zizouhuweidi/trivia/internal/cache"
	"github.com/zizouhuweidi/trivia/internal/config"
	"github.com/zizouhuweidi/trivia/internal/database"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/handler"
	"github.com/zizouhuweidi/trivia/internal/logger"
	"github.com/zizouhuweidi/trivia/internal/monitoring"
	"github.com/zizouhuweidi/trivia/internal/repository/memory"
	"github.com/zizouhuweidi/trivia/internal/repository/postgres"
	"github.com/zizouhuweidi/trivia/internal/server"
	"github.com/zizouhuweidi/trivia/internal/service"
	"github.com/zizouhuweidi/trivia/internal/tracing"
	"github.com/zizouhuweidi/trivia/internal/websocket"
)

const serviceName = "trivia-api"

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	migrateOnly := flag.Bool("migrate-only", false, "apply the database schema and exit")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

type storage struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	health     map[string]handler.Pinger
	close      func()
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	store, err := openStorage(ctx, cfg, zlog)
	if err != nil {
		return err
	}
	defer store.close()
	if cfg.MigrateOnly {
		zlog.Info("schema migrated")
		return nil
	}

	if cfg.Database.Seed {
		seeded, err := database.Seed(ctx, store.categories, store.questions)
		if err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
		zlog.Info("seed checked", zap.Bool("seeded", seeded))
	}

	// Initialize websocket hub
	hub := websocket.NewHub(zlog.Named("ws"))
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)

	opts := []service.Option{service.WithEvents(hub)}
	var limiter middleware.RateLimiterStore
	if cfg.RateLimit.Enabled() {
		limiter = handler.NewMemoryStore(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	// Initialize Redis
	if cfg.Redis.Enabled {
		redisClient, err := database.ConnectRedis(cfg.Redis)
		if err != nil {
			zlog.Warn("redis unavailable, continuing without cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			redisStore := cache.NewStore(redisClient)
			opts = append(opts, service.WithCategoryCache(redisStore, cfg.Redis.CategoryTTL))
			if cfg.RateLimit.Enabled() {
				limiter = handler.NewWindowStore(redisStore, cfg.RateLimit.Requests, cfg.RateLimit.Window, zlog)
			}
			store.health["redis"] = redisStore
		}
	}

	// Initialize tracing
	var tp trace.TracerProvider
	if cfg.Tracing.Enabled {
		sdkProvider, err := tracing.InitTracer(serviceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return fmt.Errorf("failed to initialize tracing: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := sdkProvider.Shutdown(shutdownCtx); err != nil {
				zlog.Warn("failed to flush traces", zap.Error(err))
			}
		}()
		tp = sdkProvider
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	trivia := service.NewTriviaService(store.questions, store.categories, zlog.Named("trivia"), opts...)
	e := server.New(server.Options{
		Log:         zlog,
		Trivia:      trivia,
		Hub:         hub,
		Metrics:     monitoring.NewMetrics(reg),
		Tracer:      tp,
		RateLimit:   limiter,
		Health:      store.health,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	// Start server
	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server listening", zap.String("addr", cfg.Server.Addr()), zap.String("driver", cfg.Database.Driver))
		if err := e.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	stopHub()
	return e.Shutdown(shutdownCtx)
}

func openStorage(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (*storage, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		if cfg.MigrateOnly {
			return nil, errors.New("-migrate-only needs the postgres driver")
		}
		mem := memory.NewStore()
		return &storage{
			questions:  mem.Questions(),
			categories: mem.Categories(),
			health:     map[string]handler.Pinger{},
			close:      func() {},
		}, nil

	default:
		pool, err := database.ConnectPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if cfg.Database.Migrate || cfg.MigrateOnly {
			if err := database.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
			zlog.Info("schema up to date")
		}
		return &storage{
			questions:  postgres.NewQuestionRepository(pool),
			categories: postgres.NewCategoryRepository(pool),
			health:     map[string]handler.Pinger{"postgres": pool},
			close:      pool.Close,
		}, nil
	}
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-config dir] [-migrate-only]\n", os.Args[0])
		flag.PrintDefaults()
	}
}
