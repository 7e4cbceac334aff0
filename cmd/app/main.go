package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rasika1975/socialapp/internal/config"
	"github.com/Rasika1975/socialapp/internal/handler"
	"github.com/Rasika1975/socialapp/internal/imagestore"
	"github.com/Rasika1975/socialapp/internal/rabbitmq"
	"github.com/Rasika1975/socialapp/internal/repository"
	"github.com/Rasika1975/socialapp/internal/repository/mongorepo"
	"github.com/Rasika1975/socialapp/internal/repository/postgres"
	"github.com/Rasika1975/socialapp/internal/repository/redisrepo"
	"github.com/Rasika1975/socialapp/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	logger, _ := zap.NewProduction()

	cfg, err := config.Load()
	if err != nil {
		logger.Sugar().Fatalf("failed to load config: %s", err.Error())
	}

	leveled, err := newLogger(cfg.Log.Level)
	if err != nil {
		logger.Sugar().Fatalf("failed to build logger: %s", err.Error())
	}
	logger = leveled
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	mongoClient, err := mongorepo.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to mongo: %s", err.Error())
	}
	mongoRepo := mongorepo.New(mongoClient.Database(cfg.Mongo.Database))
	if err := mongoRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("failed to create mongo indexes: %s", err.Error())
	}

	closers := []func(){
		func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				logger.Sugar().Errorf("failed to disconnect mongo: %s", err.Error())
			}
		},
	}

	users := mongoRepo.User
	if cfg.Storage.Users == "postgres" {
		db, err := postgres.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			logger.Sugar().Fatalf("failed to connect to postgres: %s", err.Error())
		}
		postgresRepo := postgres.New(db)
		if err := postgresRepo.EnsureSchema(ctx); err != nil {
			logger.Sugar().Fatalf("failed to create postgres schema: %s", err.Error())
		}
		users = postgresRepo.User
		closers = append(closers, db.Close)
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisrepo.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Sugar().Fatalf("failed to connect to redis: %s", err.Error())
		}
		users = redisrepo.NewCachedUserRepo(logger, users, redisrepo.New(rdb), cfg.Redis.UserTTL)
		closers = append(closers, func() { _ = rdb.Close() })
	}

	var publisher service.Publisher = rabbitmq.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		mq, err := rabbitmq.New(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Sugar().Fatalf("failed to connect to rabbitmq: %s", err.Error())
		}
		publisher = mq
		closers = append(closers, func() {
			if err := mq.Close(); err != nil {
				logger.Sugar().Errorf("failed to close rabbitmq: %s", err.Error())
			}
		})
	}

	images, err := imagestore.NewFromConfig(cfg.Images)
	if err != nil {
		logger.Sugar().Fatalf("failed to initialize image storage: %s", err.Error())
	}

	repo := repository.New(users, mongoRepo.Post)
	services := service.New(logger, repo, images, publisher, cfg.JWT)

	options := handler.Options{
		ClientOrigin:   cfg.Client.Origin,
		PublicURL:      cfg.Server.PublicURL,
		TrustedProxies: cfg.Server.TrustedProxies,
	}
	if local, ok := images.(*imagestore.LocalStore); ok {
		options.UploadsDir = local.Dir()
	}

	gin.SetMode(gin.ReleaseMode)
	h := handler.New(logger, services, options)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      h.InitRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Sugar().Infof("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("failed to run server: %s", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down server: %s", err.Error())
	}

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}

func newLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = atomicLevel
	return zapConfig.Build()
}
