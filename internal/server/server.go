package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	v1 "github.com/madhava-poojari/community-portal-api/internal/api/v1"
	"github.com/madhava-poojari/community-portal-api/internal/auth"
	"github.com/madhava-poojari/community-portal-api/internal/config"
	"github.com/madhava-poojari/community-portal-api/internal/logging"
	"github.com/madhava-poojari/community-portal-api/internal/mailer"
	"github.com/madhava-poojari/community-portal-api/internal/service"
	"github.com/madhava-poojari/community-portal-api/internal/store"
	"github.com/madhava-poojari/community-portal-api/internal/store/gormstore"
	"github.com/madhava-poojari/community-portal-api/internal/store/mongostore"
	"github.com/madhava-poojari/community-portal-api/internal/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// OpenStore connects to the backend named by DATABASE_DRIVER.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*store.Store, error) {
	switch cfg.DatabaseDriver {
	case "postgres":
		return gormstore.Open(cfg.DatabaseURL)
	case "mongo":
		return mongostore.Open(ctx, cfg.DatabaseURL, cfg.MongoDatabase, logger)
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
}

// OpenRedis returns nil when REDIS_URL is unset. An unreachable server is
// logged but still returned; the login limiter fails open without it.
func OpenRedis(ctx context.Context, cfg *config.Config, logger *zap.Logger) (redis.UniversalClient, error) {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, login rate limiting disabled")
		return nil, nil
	}
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, continuing without rate limiting until it recovers", zap.Error(err))
	}
	return client, nil
}

func NewFileStore(cfg *config.Config) utils.FileStore {
	if cfg.StorageType == "r2" {
		return utils.NewR2Storage(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, cfg.R2Endpoint, cfg.R2BucketName)
	}
	return utils.NewFileStorage(cfg.UploadDir, cfg.UploadBaseURL)
}

type Server struct {
	cfg *config.Config
	db  *store.Store
	log *zap.Logger
	svc v1.Services
}

// NewServer wires the services over db. rdb may be nil.
func NewServer(cfg *config.Config, db *store.Store, rdb redis.UniversalClient, files utils.FileStore, logger *zap.Logger) (*Server, error) {
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL, cfg.ResetTokenTTL)

	var limiter *auth.LoginLimiter
	if rdb != nil {
		limiter = auth.NewLoginLimiter(rdb, cfg.LoginMaxAttempts, cfg.LoginCooldown)
	}
	var google service.GoogleVerifier
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		google = auth.NewGoogleVerifier(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	}
	mail := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})

	accounts, err := service.NewAccountService(db.Accounts, tokens, limiter, mail, google, logger.Named("accounts"),
		service.AccountServiceConfig{BcryptCost: cfg.BcryptCost, ClientURL: cfg.ClientURL})
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg: cfg,
		db:  db,
		log: logger,
		svc: v1.Services{
			Accounts:  accounts,
			Directory: service.NewDirectoryService(db.Accounts, db.Projects, logger.Named("directory")),
			Projects:  service.NewProjectService(db.Projects, db.Accounts, logger.Named("projects")),
			Profiles:  service.NewProfileService(db.Accounts, files, logger.Named("profiles")),
		},
	}, nil
}

func (s *Server) Accounts() *service.AccountService {
	return s.svc.Accounts
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api := v1.NewAPI(s.cfg, s.db, s.svc, s.log)
	r.Mount("/api/v1", api.Routes())

	if s.cfg.StorageType != "r2" {
		fs := http.FileServer(http.Dir(s.cfg.UploadDir))
		r.With(
			middleware.SetHeader("X-Content-Type-Options", "nosniff"),
			middleware.SetHeader("Content-Security-Policy", "default-src 'none'; sandbox"),
		).Handle("/uploads/*", http.StripPrefix("/uploads/", fs))
	}
	return r
}

func (s *Server) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.BindAddr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
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

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
