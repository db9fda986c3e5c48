package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/lukashev/linkstash/app/analyzer"
	"github.com/lukashev/linkstash/app/api"
	"github.com/lukashev/linkstash/app/categories"
	"github.com/lukashev/linkstash/app/cfg"
	"github.com/lukashev/linkstash/app/database"
	"github.com/lukashev/linkstash/app/ingest"
	"github.com/lukashev/linkstash/app/scraper"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting LinkStash server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	categoryCache := categories.NewCache(appCfg.CategoriesFile)
	if err := categoryCache.Run(); err != nil {
		slog.Error("Failed to load categories", "file", appCfg.CategoriesFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Categories loaded", "count", categoryCache.Count(), "fallback", categoryCache.Fallback())

	linkRepo := database.NewLinkRepository(db)

	httpClient := &http.Client{Timeout: time.Duration(appCfg.FetchTimeout) * time.Second}
	extractor := scraper.NewExtractor(httpClient, appCfg.UserAgent, appCfg.MaxContentLength)

	var generator analyzer.Generator
	if appCfg.OpenAIAPIKey != "" {
		generator = analyzer.NewOpenAIClient(appCfg.OpenAIAPIKey, appCfg.OpenAIBaseUrl,
			appCfg.OpenAIModel, appCfg.OpenAITemperature, appCfg.OpenAIMaxTokens, appCfg.OpenAITimeout)
		slog.Info("Analysis model configured", "model", appCfg.OpenAIModel)
	} else {
		slog.Warn("OPENAI_API_KEY not set, analysis will use keyword heuristics only")
	}
	contentAnalyzer := analyzer.NewAnalyzer(generator, categoryCache)

	orchestrator := ingest.NewOrchestrator(extractor, contentAnalyzer, linkRepo, categoryCache, appCfg.BaseUrl)
	confirmer := ingest.NewConfirmer(linkRepo, categoryCache)

	apiHandler := api.NewHandler(orchestrator, confirmer, linkRepo, categoryCache)
	router := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // long enough for a full scrape+analyze stream
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port, "base_url", appCfg.BaseUrl)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	})
	slog.SetDefault(slog.New(handler))
}
