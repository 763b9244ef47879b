package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"record-service/internal/config"
	"record-service/internal/handler"
	"record-service/internal/repository"
	"record-service/internal/router"
	"record-service/internal/usecase"
	"record-service/shared/logger"
	"record-service/shared/middleware"
	"record-service/shared/utils/cache"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Options struct {
	// OnPreStart runs once the database is connected, before the readiness
	// check. A failure is logged and startup continues.
	OnPreStart func(ctx context.Context) error
}

type Server struct {
	httpServer *http.Server
	client     *mongo.Client
	rdb        *redis.Client
	logger     *zap.Logger
}

// New runs the startup sequence up to, but not including, the listener:
// config check, connect, pre-start hook, readiness, log level, wiring.
func New(ctx context.Context, cfg config.AppConfig, opts Options) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("Failed to connect to MongoDB: %w", err)
	}
	log.Println("[DB] Connected to MongoDB")

	srv, err := newServer(ctx, cfg, client, opts)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return srv, nil
}

func newServer(ctx context.Context, cfg config.AppConfig, client *mongo.Client, opts Options) (*Server, error) {
	runPreStart(ctx, opts.OnPreStart)

	if err := config.EnsureReady(ctx, client); err != nil {
		return nil, err
	}

	if err := logger.ValidateLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	routerOpts := router.Options{AllowedOrigins: cfg.AllowedOrigins}

	var rdb *redis.Client
	if cfg.RateLimitEnabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       0,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		zl.Info("Rate limiting enabled",
			zap.String("redis_addr", cfg.RedisAddr),
			zap.Int("limit", cfg.RateLimit),
			zap.Duration("window", cfg.RateWindow))

		routerOpts.RateLimit = middleware.RateLimiter(cache.NewCache(rdb), middleware.RateLimitOptions{
			Limit:         cfg.RateLimit,
			Window:        cfg.RateWindow,
			BlockDuration: cfg.RateBlock,
			KeyPrefix:     "records",
		})
	}

	// --- Init repos & usecases ---
	recordRepo := repository.NewRecordRepo(client.Database(cfg.DBName), zl)
	recordUC := usecase.NewRecordUsecase(recordRepo, zl)
	recordHandler := handler.NewRecordHandler(recordUC, zl)
	errs := handler.NewErrorResponder(zl)

	// --- HTTP routes ---
	r := router.SetupRoutes(chi.NewRouter(), recordHandler, errs, routerOpts)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.HTTPAddr(),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		client: client,
		rdb:    rdb,
		logger: zl,
	}, nil
}

// runPreStart never fails startup: errors and panics are only logged.
func runPreStart(ctx context.Context, hook func(ctx context.Context) error) {
	if hook == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Error in performAsyncOperations: %v", rec)
		}
	}()
	if err := hook(ctx); err != nil {
		log.Printf("Error in performAsyncOperations: %v", err)
	}
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Logger() *zap.Logger {
	return s.logger
}

func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}

	port := s.httpServer.Addr
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		port = fmt.Sprintf("%d", tcp.Port)
	}
	s.logger.Info("Server is running on http://localhost:"+port, zap.String("addr", ln.Addr().String()))

	return s.httpServer.Serve(ln)
}

// Shutdown stops the listener, then releases the database and Redis clients.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	if s.client != nil {
		if dErr := s.client.Disconnect(ctx); dErr != nil {
			err = errors.Join(err, dErr)
		}
	}
	if s.rdb != nil {
		if rErr := s.rdb.Close(); rErr != nil {
			err = errors.Join(err, rErr)
		}
	}
	_ = s.logger.Sync()
	return err
}
