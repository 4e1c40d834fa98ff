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

	"mailcal/app/api"
	"mailcal/app/calendar"
	"mailcal/app/cfg"
	"mailcal/app/content"
	"mailcal/app/database"
	"mailcal/app/event"
	"mailcal/app/source"
	"mailcal/app/tasks"
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

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting mailcal server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	sourceRepo := database.NewSourceRepository(db)
	messageRepo := database.NewMessageRepository(db)
	eventRepo := database.NewEventRepository(db)

	configCache := source.NewConfigCache(appCfg.SourcesDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load source configurations", "error", err)
		os.Exit(1)
	}
	slog.Info("Source configurations loaded", "count", configCache.GetConfigCount())

	scanner := event.NewScanner(event.NewNormalizer(time.Local, appCfg.Timezone, appCfg.DefaultDurationMinutes))

	var calendarClient tasks.CalendarClientInterface
	if appCfg.GoogleClientID != "" && appCfg.GoogleClientSecret != "" {
		client, err := calendar.NewClient(context.Background(), appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.GoogleTokenFile)
		if err != nil {
			slog.Warn("Calendar push disabled", "error", err)
		} else {
			calendarClient = client
			slog.Info("Calendar push enabled")
		}
	} else {
		slog.Info("Calendar push disabled (GOOGLE_CLIENT_ID not set)")
	}

	httpClient := &http.Client{}
	parser := source.NewParser()
	extractor := content.NewExtractor()

	scheduler := tasks.NewScheduler(configCache, sourceRepo, messageRepo, eventRepo, httpClient, parser, extractor, scanner)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started", "workers", appCfg.WorkerCount, "interval", appCfg.SchedulerInterval)

	apiHandler := api.NewHandler(configCache, sourceRepo, messageRepo, eventRepo, scanner, scheduler, calendarClient)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
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

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
