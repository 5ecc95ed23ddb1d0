package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/eventcomb/eventcomb/app/api"
	"github.com/eventcomb/eventcomb/app/cfg"
	"github.com/eventcomb/eventcomb/app/pipeline"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appConfig, err := cfg.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appConfig.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	log.Println("Starting Event Comb...")

	httpClient := &http.Client{
		Timeout: time.Duration(appConfig.FetchTimeout) * time.Second,
	}
	runner := pipeline.NewRunner(httpClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, runErr := runner.Run(ctx)
	if runErr != nil {
		log.Printf("Run finished with error: %v", runErr)
	} else {
		log.Printf("Run finished: %d events from %d sources, %d curated feeds",
			result.Report.TotalEvents, result.Report.SourcesProcessed,
			result.CuratedSummary.EnabledFeeds)
	}

	// One-shot mode: no schedule means a single batch run.
	if appConfig.Schedule == "" {
		if runErr != nil {
			os.Exit(1)
		}
		return
	}

	scheduler := cron.New()
	_, err = scheduler.AddFunc(appConfig.Schedule, func() {
		if _, err := runner.Run(ctx); err != nil {
			log.Printf("Scheduled run failed: %v", err)
		}
	})
	if err != nil {
		log.Fatal("Invalid schedule expression:", err)
	}
	scheduler.Start()
	log.Printf("Scheduled runs enabled: %s", appConfig.Schedule)

	handler := api.NewHandler(appConfig.OutputDir, appConfig.Version)
	server := &http.Server{
		Addr:    ":" + appConfig.Port,
		Handler: api.NewServer(handler),
	}

	go func() {
		log.Printf("HTTP server starting on port %s", appConfig.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	cancel()

	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}
