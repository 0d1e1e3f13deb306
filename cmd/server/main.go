package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dealership/internal/api"
	"dealership/internal/auth"
	"dealership/internal/config"
	"dealership/internal/db"
	"dealership/internal/denylist"
	"dealership/internal/flash"
	"dealership/internal/middleware"
	"dealership/internal/store"
	"dealership/internal/view"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := config.MustLoad()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == auth.EnvDevelopment {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting",
		zap.String("env", cfg.Env),
		zap.String("db_host", cfg.DB.Host),
		zap.String("db_name", cfg.DB.Name),
		zap.Bool("deny_list", cfg.Redis.Enabled()),
	)

	database, err := db.InitDB(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer database.Close()

	var revoker denylist.Revoker = denylist.Nop{}
	if cfg.Redis.Enabled() {
		rdb, err := denylist.NewRedis(ctx, cfg.Redis.URL, "")
		if err != nil {
			return err
		}
		defer rdb.Close()
		revoker = rdb
	}

	codec, err := auth.NewTokenCodec(cfg.Auth.JWTSecret)
	if err != nil {
		return err
	}
	carrier := auth.NewSessionCarrier(cfg.Env)

	views, err := view.New()
	if err != nil {
		return err
	}

	gate := middleware.NewGate(codec, carrier,
		middleware.WithNotices(flash.Sink{}),
		middleware.WithDenyList(revoker),
		middleware.WithLogger(logger),
		middleware.WithMetrics(middleware.NewMetrics(prometheus.DefaultRegisterer)),
	)

	pg := store.NewPostgres(database)
	server, err := api.NewServer(api.Deps{
		Accounts:  pg,
		Inventory: pg,
		Messages:  pg,
		Hasher:    auth.NewHasher(auth.DefaultCost),
		Codec:     codec,
		Carrier:   carrier,
		Revoker:   revoker,
		Gate:      gate,
		Views:     views,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
