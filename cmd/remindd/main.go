package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"smarttax-backend/internal/config"
	"smarttax-backend/internal/jobs"
	"smarttax-backend/internal/logger"
	"smarttax-backend/internal/repository"
	firestorerepo "smarttax-backend/internal/repository/firestore"
	"smarttax-backend/internal/repository/memory"
	"smarttax-backend/internal/scheduler"
	"smarttax-backend/internal/service"
	"smarttax-backend/internal/session"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'filing-reminders')")
	flag.Parse()

	// Load .env if present; real env vars win
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting SmartTax reminder daemon...", "log_level", cfg.Log.Level, "store", cfg.Store.Type)

	ctx := context.Background()

	store, directory, err := buildStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize record store", "error", err)
		log.Fatalf("Failed to initialize record store: %v", err)
	}

	var emailService service.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = service.NewSendGridEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		logger.Warn("No SendGrid API key configured; reminders stay in-app only")
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store, directory, emailService, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Reminder scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down reminder scheduler...")
	cronScheduler.Stop()
	logger.Info("Reminder scheduler stopped. Goodbye!")
}

// buildStore wires the record store and the account directory for the
// configured backend. The memory backend starts empty and serves dry runs.
func buildStore(ctx context.Context, cfg *config.Config) (*repository.Store, session.Directory, error) {
	if cfg.Store.Type == "memory" {
		provider := session.NewLocalProvider(
			cfg.Session.JWTSecret,
			time.Duration(cfg.Session.AccessTokenExpiry)*time.Minute,
			time.Duration(cfg.Session.RefreshTokenExpiry)*time.Minute,
		)
		return memory.NewStore(), provider, nil
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, nil, err
	}

	client, err := firestorerepo.NewClient(ctx, app)
	if err != nil {
		return nil, nil, err
	}

	provider, err := session.NewFirebaseProvider(ctx, app, cfg.Firebase.WebAPIKey)
	if err != nil {
		return nil, nil, err
	}

	return firestorerepo.NewStore(client), provider, nil
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "filing-reminders":
		jobRunner.SendFilingReminders()
	default:
		logger.Error("Unknown job name", "job", jobName)
		os.Exit(1)
	}
}
