package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkpress/blog-system/internal/api"
	"github.com/inkpress/blog-system/internal/api/handler"
	"github.com/inkpress/blog-system/internal/core/service"
	"github.com/inkpress/blog-system/internal/infrastructure/config"
	mongodb "github.com/inkpress/blog-system/internal/infrastructure/db/mongo"
	redisdb "github.com/inkpress/blog-system/internal/infrastructure/db/redis"
	"github.com/inkpress/blog-system/internal/infrastructure/email"
	"github.com/inkpress/blog-system/internal/infrastructure/queue"
	"github.com/inkpress/blog-system/internal/infrastructure/storage"
	"github.com/inkpress/blog-system/internal/token"
	"github.com/inkpress/blog-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes")
	}
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("post indexes")
	}

	avatars, err := storage.NewAvatarStore(cfg.AvatarDir)
	if err != nil {
		log.Fatal().Err(err).Msg("avatar store")
	}

	// --- Outbound email ---
	mailer, err := email.NewMailer(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("smtp client")
	}
	dispatcher := queue.NewDispatcher(cfg.EmailWorkers, mailer, log)
	dispatcher.Start(ctx)

	// --- Services ---
	tokens := token.New(cfg.JWTSecret, token.DefaultTTL)
	links := redisdb.NewVerificationStore(rdb)

	authService := service.NewAuthService(userRepo, tokens, dispatcher, links, log)
	userService := service.NewUserService(userRepo, postRepo, avatars, tokens, dispatcher, log)
	postService := service.NewPostService(postRepo, userRepo, log)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		AuthService: authService,
		UserService: userService,
		PostService: postService,
		Tokens:      tokens,
		Health:      handler.NewHealthHandler(cfg.Env),
		Readiness:   handler.NewHealthDependenciesHandler(db, rdb),
		Log:         log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server running")

	<-ctx.Done()
	log.Info().Msg("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server closed")
}
