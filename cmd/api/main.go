// @title Quiz Builder API
// @version 1.0
// @description Create, list, view and delete quizzes.
// @host localhost:5000
// @BasePath /
// @schemes http
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-builder/internal/adapter"
	"quiz-builder/internal/cache"
	"quiz-builder/internal/config"
	"quiz-builder/internal/database"
	"quiz-builder/internal/domain"
	"quiz-builder/internal/handler"
	"quiz-builder/internal/logger"
	"quiz-builder/internal/middleware"
	"quiz-builder/internal/repository"
	"quiz-builder/internal/service"

	_ "quiz-builder/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// newApp wires middleware and routes.
func newApp(cfg *config.Config, quizHandler *handler.QuizHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.FrontendURL,
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	quizHandler.Register(app)
	return app
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXDB(cfg.DB)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	quizRepository, err := repository.NewQuizDatabaseAdapter(db)
	if err != nil {
		appLogger.Fatal("Failed to create quiz repository", zap.Error(err))
	}
	txManager := repository.NewTransactionManagerAdapter(db)

	var quizCache domain.Cache
	if cfg.CacheEnabled() {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		quizCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Quiz detail cache enabled",
			zap.String("redis", cfg.Redis.Address),
			zap.Duration("ttl", cfg.Cache.QuizTTL))
	}

	quizService := service.NewQuizService(quizRepository, txManager, quizCache, cfg.Cache.QuizTTL)
	app := newApp(cfg, handler.NewQuizHandler(quizService))

	go func() {
		appLogger.Info("Starting API server",
			zap.Int("port", cfg.Server.Port),
			zap.String("env", cfg.Logger.Env),
			zap.String("db_driver", cfg.DB.Driver))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
