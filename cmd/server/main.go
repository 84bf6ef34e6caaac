// @title                      Task Manager API
// @version                    1.0
// @description                Personal task tracking with team and private chat.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/taskdesk/task-manager/docs"
	"github.com/taskdesk/task-manager/internal/api"
	"github.com/taskdesk/task-manager/internal/core/service"
	"github.com/taskdesk/task-manager/internal/infrastructure/config"
	mongodb "github.com/taskdesk/task-manager/internal/infrastructure/db/mongo"
	redisdb "github.com/taskdesk/task-manager/internal/infrastructure/db/redis"
	"github.com/taskdesk/task-manager/internal/infrastructure/http/handlers"
	"github.com/taskdesk/task-manager/pkg/logger"
)

func main() {
	// Load .env if present; missing is fine outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "task-manager",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "task-manager",
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	// --- Dependencies ---
	users := mongodb.NewUserRepository(db)
	tasks := mongodb.NewTaskRepository(db)
	messages := mongodb.NewMessageRepository(db)
	idem := redisdb.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)

	e, err := api.NewRouter(api.Deps{
		Logger:         logger.Component(log, "http"),
		JWTSecret:      cfg.Auth.JWTSecret,
		UserListPublic: cfg.Users.ListPublic,
		CORSOrigins:    cfg.CORSOrigins,
		Auth:           service.NewAuthService(users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Admin:          service.NewStaticAdmin(cfg.Auth.AdminUsername, cfg.Auth.AdminPassword),
		Tasks:          service.NewTaskService(tasks, idem, logger.Component(log, "tasks")),
		Users:          service.NewUserService(users, tasks, cfg.Users.CountConcurrency, logger.Component(log, "users")),
		Chat:           service.NewChatService(messages, users, idem, cfg.Chat.StrictReceivers, logger.Component(log, "chat")),
		Health: handlers.NewHealthHandler(map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(mongoClient),
			"redis":   handlers.RedisCheck(rdb),
		}),
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("http server stopped")
	return nil
}
