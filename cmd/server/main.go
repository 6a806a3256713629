package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ouppakdigital/quiz-service/internal/cache"
	"github.com/ouppakdigital/quiz-service/internal/config"
	"github.com/ouppakdigital/quiz-service/internal/handlers"
	"github.com/ouppakdigital/quiz-service/internal/models"
	"github.com/ouppakdigital/quiz-service/internal/repositories/postgres"
	"github.com/ouppakdigital/quiz-service/internal/services"
	"github.com/ouppakdigital/quiz-service/internal/utils"
	"github.com/ouppakdigital/quiz-service/internal/validator"
	"github.com/ouppakdigital/quiz-service/pkg"
)

// attemptSweepInterval controls how often in-progress attempts past their
// deadline are closed server-side.
const attemptSweepInterval = time.Minute

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(
		&models.School{},
		&models.Campus{},
		&models.User{},
		&models.Question{},
		&models.Quiz{},
		&models.QuizItem{},
		&models.QuizAttempt{},
	); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	logger.Info("connected to redis")

	cacheService := cache.NewRedisCache(redisClient, slogger)

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	repo := postgres.New(db)
	v := validator.New()

	serviceManager := services.NewServiceManager(repo, cacheService, publisher, slogger, v)
	handlerManager := handlers.NewHandlerManager(serviceManager, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(utils.ContextLogger(logger))
	handlerManager.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go sweepOverdueAttempts(sweepCtx, serviceManager.Attempt(), logger)

	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}

// sweepOverdueAttempts periodically closes timed attempts whose deadline has
// passed without a submission.
func sweepOverdueAttempts(ctx context.Context, attempts services.AttemptService, logger utils.Logger) {
	ticker := time.NewTicker(attemptSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			closed, err := attempts.ExpireOverdueAttempts(ctx)
			if err != nil {
				logger.Error("attempt sweep failed", "error", err)
				continue
			}
			if closed > 0 {
				logger.Info("closed overdue attempts", "count", closed)
			}
		}
	}
}
