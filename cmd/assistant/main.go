package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/learnflow/assistant/internal/api"
	"github.com/learnflow/assistant/internal/catalog"
	"github.com/learnflow/assistant/internal/config"
	"github.com/learnflow/assistant/internal/llm"
	"github.com/learnflow/assistant/internal/orchestrator"
	"github.com/learnflow/assistant/internal/prompt"
	"github.com/learnflow/assistant/internal/ratelimit"
	"github.com/learnflow/assistant/internal/resources"
	"github.com/learnflow/assistant/internal/websearch"
)

const (
	rateLimitWindow = time.Minute
	rateLimitMax    = 10
	sweepInterval   = 5 * time.Minute
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("learnflow assistant starting", "port", cfg.Port, "environment", cfg.Environment)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Static tables and the startup resource snapshot.
	cat := catalog.Default()
	index := resources.Build(cfg.ResourceRoot, slog.Default())

	// Web search: real provider when configured, simulation otherwise.
	var search websearch.Searcher
	if cfg.SearchAPIKey != "" && cfg.SearchEngineID != "" {
		search = websearch.NewGoogleClient(cfg.SearchAPIKey, cfg.SearchEngineID)
		slog.Info("web search provider ready", "engine", cfg.SearchEngineID)
	} else {
		search = websearch.NewSimulated()
		slog.Warn("no search credentials - using simulated web search")
	}

	gateway := llm.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	slog.Info("gemini client ready", "model", cfg.GeminiModel)

	composer := prompt.NewComposer(cat, index, search, slog.Default())
	auth := orchestrator.NewTokenAuthorizer(cfg.AdminAPIToken)
	if cfg.AdminAPIToken == "" {
		slog.Warn("ADMIN_API_TOKEN not set - admin commands are open (development only)")
	}
	orch := orchestrator.New(cat, composer, gateway, auth, cfg.ProjectRoot, slog.Default())

	limiter := ratelimit.New(rateLimitWindow, rateLimitMax, slog.Default())
	limiter.StartSweeper(ctx, sweepInterval)

	origins := cfg.FrontendOrigins
	if !cfg.IsProduction() {
		origins = []string{"*"}
	}
	srv := api.NewServer(cfg.Port, cfg.Environment, origins, orch, limiter, slog.Default())

	httpServer := &http.Server{
		Addr:              srv.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("API server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	cancel()
	slog.Info("learnflow assistant stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
