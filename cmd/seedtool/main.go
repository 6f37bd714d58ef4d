// seedtool registers (or reuses) a demo account and loads the demo dataset
// under it.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"smarttax-backend/internal/config"
	"smarttax-backend/internal/logger"
	"smarttax-backend/internal/repository"
	firestorerepo "smarttax-backend/internal/repository/firestore"
	"smarttax-backend/internal/repository/memory"
	"smarttax-backend/internal/seed"
	"smarttax-backend/internal/session"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	email := flag.String("email", "karishma@gmail.com", "Demo account email")
	password := flag.String("password", "password123", "Demo account password")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Seeding demo data...", "store", cfg.Store.Type, "email", *email)

	ctx := context.Background()

	store, provider, err := buildStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize record store", "error", err)
		log.Fatalf("Failed to initialize record store: %v", err)
	}

	identity, err := signIn(ctx, provider, *email, *password)
	if err != nil {
		logger.Error("Failed to sign in demo account", "error", err)
		log.Fatalf("Failed to sign in demo account: %v", err)
	}

	if err := seed.NewSeeder(store).Run(ctx, identity.UID); err != nil {
		logger.Error("Seeding failed", "error", err)
		log.Fatalf("Seeding failed: %v", err)
	}

	logger.Info("Seeding complete", "uid", identity.UID)
}

// signIn registers the account, falling back to a plain login when it
// already exists.
func signIn(ctx context.Context, provider session.Provider, email, password string) (*session.Identity, error) {
	identity, _, err := provider.Register(ctx, email, password, "Demo User")
	if err == nil {
		return identity, nil
	}
	if !session.IsEmailAlreadyExists(err) {
		return nil, err
	}
	identity, _, err = provider.Login(ctx, email, password)
	return identity, err
}

func buildStore(ctx context.Context, cfg *config.Config) (*repository.Store, session.Provider, error) {
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
