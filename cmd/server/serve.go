package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-api/internal/config"
	"task-api/internal/middleware"
	"task-api/internal/models"
	"task-api/internal/repository"
	"task-api/internal/router"
	"task-api/internal/service"
	"task-api/internal/utils"
	"task-api/pkg/logger"
	"task-api/pkg/redis_limiter"
	"task-api/pkg/storage"
	"task-api/pkg/tokenstore"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg.Database.AutoMigrate = true
		if err := models.InitDB(cfg); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		fmt.Println("database migrated")
		return nil
	},
}

func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	return logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		FilePath:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case "s3":
		return storage.NewS3Storage(storage.S3StorageConfig{
			Endpoint:  cfg.Storage.S3.Endpoint,
			AccessKey: cfg.Storage.S3.AccessKey,
			SecretKey: cfg.Storage.S3.SecretKey,
			Bucket:    cfg.Storage.S3.Bucket,
			UseSSL:    cfg.Storage.S3.UseSSL,
			Region:    cfg.Storage.S3.Region,
			PublicURL: cfg.Storage.PublicURL,
		})
	default:
		return storage.NewLocalStorage(storage.LocalStorageConfig{
			BasePath: cfg.Storage.LocalPath,
			BaseURL:  cfg.Storage.PublicURL,
		})
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	if err := models.InitDB(cfg); err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	db := models.GetDB()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddress(),
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis unreachable; logout and rate limiting are degraded")
	}

	tokens := tokenstore.NewRedisStore(redisClient, "taskapi:revoked:")

	var limiter middleware.Limiter
	if cfg.RateLimit.Enabled {
		limiter = redis_limiter.NewRedisLimiter(redisClient, cfg.RateLimit.MaxAttempts, "taskapi:ratelimit:", cfg.RateLimit.GetWindow())
	}

	store, err := newStorage(cfg)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.SecretKey,
		cfg.JWT.Algorithm,
		cfg.JWT.GetExpireDuration(),
	)

	authService := service.NewAuthService(repository.NewUserRepository(db), jwtManager, tokens, cfg, log)
	if err := authService.InitAdmin(ctx); err != nil {
		log.WithError(err).Warn("failed to initialize admin account")
	}

	r := router.SetupRouter(cfg, jwtManager, log, db, tokens, limiter, store)

	srv := &http.Server{
		Addr:    cfg.Server.GetAddress(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":       srv.Addr,
			"db":         cfg.Database.Driver,
			"storage":    store.Name(),
			"production": cfg.Server.ProductionMode,
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

	for {
		select {
		case err, ok := <-errCh:
			if ok {
				return fmt.Errorf("server: %w", err)
			}
			return nil
		case sig := <-signals:
			if sig == syscall.SIGHUP {
				reloadLogLevel(log)
				continue
			}
			log.WithField("signal", sig.String()).Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
}

// reloadLogLevel re-reads the config file and applies its log level
func reloadLogLevel(log *logrus.Logger) {
	cfg, err := config.ReloadConfig()
	if err != nil {
		log.WithError(err).Warn("config reload failed")
		return
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.WithError(err).Warn("invalid log level in reloaded config")
		return
	}
	log.SetLevel(level)
	log.WithField("level", level.String()).Info("log level reloaded")
}
