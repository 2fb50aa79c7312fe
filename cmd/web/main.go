package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-builder/internal/apiclient"
	"quiz-builder/internal/config"
	"quiz-builder/internal/draft"
	"quiz-builder/internal/logger"
	"quiz-builder/internal/web"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

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

	client := apiclient.New(cfg.Web.APIURL)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := client.Health(ctx); err != nil {
		appLogger.Warn("Quiz API is not reachable yet", zap.String("api_url", cfg.Web.APIURL), zap.Error(err))
	}
	cancel()

	app := web.NewApp(client, draft.NewRegistry(cfg.Web.DraftTTL), cfg.Web.DraftTTL)

	go func() {
		appLogger.Info("Starting web client",
			zap.Int("port", cfg.Web.Port),
			zap.String("api_url", cfg.Web.APIURL))
		if err := app.Listen(":" + strconv.Itoa(cfg.Web.Port)); err != nil {
			appLogger.Fatal("Failed to start web client", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down web client...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Web client forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Web client exited gracefully")
}
