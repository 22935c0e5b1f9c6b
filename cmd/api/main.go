package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/culinarylabs/recipe-chat/cmd/llmfactory"
	"github.com/culinarylabs/recipe-chat/internal/api/router"
	"github.com/culinarylabs/recipe-chat/internal/chat"
	appconfig "github.com/culinarylabs/recipe-chat/internal/config"
	"github.com/culinarylabs/recipe-chat/internal/observability/metrics"
	"github.com/culinarylabs/recipe-chat/internal/render"
	"github.com/culinarylabs/recipe-chat/pkg/logging"
)

func main() {
	// Local development convenience; absent .env is fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting recipe-chat API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"provider", cfg.LLMProvider,
		"model", cfg.ModelName,
	)

	ctx := context.Background()
	client, closeClient, err := llmfactory.BuildClient(ctx, cfg)
	if err != nil {
		logger.Error("failed to build LLM client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeClient(); err != nil {
			logger.Warn("failed to close LLM client", "error", err)
		}
	}()

	forwarder := chat.NewForwarder(client, cfg.ModelName, logger,
		chat.WithMaxTokens(int32(cfg.LLMMaxTokens)),
		chat.WithTemperature(float32(cfg.LLMTemperature)),
	)

	chatMetrics := metrics.NewChatMetrics(nil)
	chatHandler := chat.NewHandler(forwarder, render.NewMarkdown(), chatMetrics, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
