package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/madhava-poojari/community-portal-api/internal/config"
	"github.com/madhava-poojari/community-portal-api/internal/logging"
	"github.com/madhava-poojari/community-portal-api/internal/server"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	db, err := server.OpenStore(openCtx, cfg, logger.Named("store"))
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()

	rdb, err := server.OpenRedis(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	srv, err := server.NewServer(cfg, db, rdb, server.NewFileStore(cfg), logger)
	if err != nil {
		return err
	}

	if cfg.AdminEmail != "" {
		a, created, err := srv.Accounts().EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
		if err != nil {
			return err
		}
		if created {
			logger.Info("bootstrap admin created", zap.String("email", a.Email), zap.Bool("must_reset", a.MustResetPassword))
		}
	}

	logger.Info("starting community portal api",
		zap.String("env", cfg.Env),
		zap.String("db", cfg.DatabaseDriver),
		zap.String("storage", cfg.StorageType))
	return server.Run(ctx, srv.NewHTTPServer(), logger)
}
