package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightwatch-service/internal/infrastructure/config"
	"flightwatch-service/internal/infrastructure/oauth"
	"flightwatch-service/internal/infrastructure/persistence"
	"flightwatch-service/internal/infrastructure/router"
	gmailFeed "flightwatch-service/internal/interface/gmail"
	mongoRepo "flightwatch-service/internal/interface/repository"
	"flightwatch-service/internal/usecase"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"
	"flightwatch-service/templates"

	domainRepo "flightwatch-service/internal/domain/repository"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Flightwatch Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	feedRepo := mongoRepo.NewMongoFeedRepository(db)
	snapshotRepo := mongoRepo.NewMongoSnapshotRepository(db)
	aliasRepo := mongoRepo.NewGormAliasRepository(gormDB)
	notifier := mongoRepo.NewWebhookNotifier(cfg.NotifierEndpoint, log)

	clock := domainRepo.UTCClock{}
	appMetrics := metrics.NewMetrics("flightwatch")

	// Set up processors
	importProcessor := usecase.NewImportProcessor(feedRepo, snapshotRepo, aliasRepo, notifier, clock, appMetrics, log, cfg.NotifierDestination)
	statusProcessor := usecase.NewStatusProcessor(snapshotRepo, notifier, clock, appMetrics, log, cfg.AlertCap, cfg.NotifierDestination)

	// Set up subject routing
	subjectRouter := router.NewSubjectRouter(log)
	subjectRouter.Register(templates.NewScheduleFeedHandler(importProcessor, cfg.FeedSubjectMatch, log))
	orchestrator := usecase.NewFeedOrchestrator(feedRepo, subjectRouter, clock, log)

	// Set up Gmail OAuth
	gmailOAuth := oauth.NewGmailOAuth(
		cfg.GmailClientID,
		cfg.GmailClientSecret,
		cfg.GmailRefreshToken,
		log,
	)
	tokenSource := gmailOAuth.GetTokenSource(ctx)

	// Set up Gmail feed service
	feedService, err := gmailFeed.NewFeedService(ctx, tokenSource, feedRepo, log, cfg.GmailPollInterval, cfg.FeedSubjectMatch)
	if err != nil {
		log.Fatal("Failed to create Gmail feed service", "error", err)
	}

	// Start Gmail polling in a goroutine
	go feedService.StartPolling(ctx)

	// Start feed processor in a goroutine
	go func() {
		processTicker := time.NewTicker(cfg.ImportInterval)
		defer processTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Feed processor stopped")
				return
			case <-processTicker.C:
				log.Info("Processing pending feeds")
				if err := orchestrator.ProcessPending(ctx); err != nil {
					log.Error("Error processing feeds", "error", err)
				}
			}
		}
	}()

	// Status recompute on a cron cadence
	statusCron := cron.New()
	_, err = statusCron.AddFunc(cfg.StatusCronSpec, func() {
		log.Info("Recomputing flight statuses")
		if err := statusProcessor.Recompute(ctx); err != nil {
			log.Error("Error recomputing statuses", "error", err)
		}
	})
	if err != nil {
		log.Fatal("Invalid status cron spec", "spec", cfg.StatusCronSpec, "error", err)
	}
	statusCron.Start()

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	statusCron.Stop()
	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Flightwatch Service stopped")
}
