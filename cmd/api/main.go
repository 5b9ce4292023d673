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

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/yourusername/trivia-catalog/internal/config"
	"github.com/yourusername/trivia-catalog/internal/handler"
	"github.com/yourusername/trivia-catalog/internal/middleware"
	pgRepo "github.com/yourusername/trivia-catalog/internal/repository/postgres"
	"github.com/yourusername/trivia-catalog/internal/service"
	"github.com/yourusername/trivia-catalog/pkg/database"
	"github.com/yourusername/trivia-catalog/pkg/logger"
	"github.com/yourusername/trivia-catalog/pkg/monitoring"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Mode == gin.DebugMode && cfg.Log.Level == "info" {
		cfg.Log.Level = "debug"
	}
	appLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("server stopped with error", zap.Error(err))
		_ = appLogger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger *zap.Logger) error {
	appLogger.Info("starting trivia catalog",
		zap.String("mode", cfg.Server.Mode),
		zap.String("port", cfg.Server.Port))
	gin.SetMode(cfg.Server.Mode)

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database, appLogger.Named("gorm"), cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	// Применяем миграции
	if err := database.MigrateDB(db, cfg.Database.MigrationsPath, appLogger); err != nil {
		return err
	}

	// Redis нужен только для rate limiting
	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		var redisClient redis.UniversalClient
		redisClient, err = database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		limiter = middleware.NewRateLimiter(redisClient, appLogger.Named("rate_limiter"))
		appLogger.Info("rate limiting enabled",
			zap.Int("max_requests", cfg.RateLimit.MaxRequests),
			zap.Duration("window", cfg.RateLimit.Window()))
	}

	// Инициализируем репозитории
	questionRepo := pgRepo.NewQuestionRepo(db)
	categoryRepo := pgRepo.NewCategoryRepo(db)

	// Инициализируем сервисы
	categoryService := service.NewCategoryService(categoryRepo)
	questionService := service.NewQuestionService(questionRepo, categoryService)
	quizService := service.NewQuizService(questionRepo, categoryRepo, nil, appLogger.Named("quiz"))

	metrics := monitoring.New()

	// Инициализируем обработчики
	handlers := handler.Handlers{
		Category: handler.NewCategoryHandler(categoryService, questionService, appLogger),
		Question: handler.NewQuestionHandler(questionService, appLogger),
		Quiz:     handler.NewQuizHandler(quizService, metrics, appLogger),
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
		}, appLogger),
	}
	router := handler.NewRouter(cfg, handlers, metrics, limiter, appLogger.Named("http"))

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		appLogger.Info("shutting down server", zap.String("signal", sig.String()))
	}

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	appLogger.Info("server exited properly")
	return nil
}
