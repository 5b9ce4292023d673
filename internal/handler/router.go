package handler

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/trivia-catalog/internal/config"
	"github.com/yourusername/trivia-catalog/internal/handler/helper"
	"github.com/yourusername/trivia-catalog/internal/middleware"
	"github.com/yourusername/trivia-catalog/pkg/monitoring"
)

// Handlers - набор обработчиков, подключаемых к роутеру
type Handlers struct {
	Category *CategoryHandler
	Question *QuestionHandler
	Quiz     *QuizHandler
	Health   *HealthHandler
}

// NewRouter собирает роутер Gin со всеми маршрутами и middleware.
// limiter == nil отключает rate limiting.
func NewRouter(
	cfg *config.Config,
	h Handlers,
	metrics *monitoring.Metrics,
	limiter *middleware.RateLimiter,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	// В release не доверяем прокси-заголовкам, в остальных режимах доверяем localhost
	trustedProxies := []string{"127.0.0.1", "::1"}
	if cfg.Server.Mode == gin.ReleaseMode {
		trustedProxies = nil
	}
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		logger.Warn("failed to set trusted proxies", zap.Error(err))
	}

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
		metrics.MetricsMiddleware(),
		cors.New(corsConfig(cfg.CORS)),
		catalogHeaders(),
		middleware.RequestTimeout(cfg.Server.RequestTimeoutDuration()),
	)

	router.NoRoute(func(c *gin.Context) {
		helper.AbortWithError(c, http.StatusNotFound)
	})
	router.NoMethod(func(c *gin.Context) {
		helper.AbortWithError(c, http.StatusMethodNotAllowed)
	})

	router.GET("/healthz", h.Health.Healthz)
	router.GET("/metrics", metrics.PrometheusHandler())

	// Служебные маршруты выше не попадают под общий лимит
	api := router.Group("")
	writeLimit := func(c *gin.Context) { c.Next() }
	if limiter != nil && cfg.RateLimit.Enabled {
		writeLimit = limiter.Limit(middleware.WriteRateLimitConfig(cfg.RateLimit))
		if cfg.RateLimit.GlobalMaxRequests > 0 {
			api.Use(limiter.LimitByIP(middleware.GlobalRateLimitConfig(cfg.RateLimit)))
		}
	}

	api.GET("/categories", h.Category.GetCategories)
	api.GET("/categories/:id/questions",
		middleware.ExtractUintParam("id", middleware.CategoryIDKey),
		h.Category.GetQuestionsByCategory)

	questions := api.Group("/questions")
	{
		questions.GET("", h.Question.ListQuestions)
		questions.POST("", writeLimit, h.Question.CreateOrSearchQuestions)
		questions.GET("/export", h.Question.ExportQuestions)

		questionWithID := questions.Group("/:id")
		questionWithID.Use(middleware.ExtractUintParam("id", middleware.QuestionIDKey))
		{
			questionWithID.GET("", h.Question.GetQuestion)
			questionWithID.DELETE("", h.Question.DeleteQuestion)
		}
	}

	api.POST("/quizzes", writeLimit, h.Quiz.NextQuestion)

	return router
}

// corsConfig строит настройки CORS. "*" в списке источников разрешает любой источник.
func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = cfg.AllowedOrigins
	c.AllowCredentials = true
	return c
}

// catalogHeaders выставляет заголовки CORS, которые фронтенд каталога ожидает в каждом ответе
func catalogHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Headers", "Content-Type,Authorization,true")
		c.Header("Access-Control-Allow-Methods", "GET,PUT,POST,DELETE,OPTIONS")
		c.Next()
	}
}
