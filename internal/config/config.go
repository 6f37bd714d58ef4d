package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Firebase  FirebaseConfig  `yaml:"firebase"`
	Session   SessionConfig   `yaml:"session"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	Reminders RemindersConfig `yaml:"reminders"`
	Log       LogConfig       `yaml:"log"`
}

// StoreConfig selects the record store backend
type StoreConfig struct {
	Type string `yaml:"type"` // "firestore" or "memory"
}

// FirebaseConfig contains Firebase project settings
type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
	WebAPIKey       string `yaml:"web_api_key"` // Identity Toolkit password sign-in
}

// SessionConfig contains session provider settings
type SessionConfig struct {
	Mode               string `yaml:"mode"` // "firebase" or "local"
	JWTSecret          string `yaml:"jwt_secret"`
	AccessTokenExpiry  int    `yaml:"access_token_expiry_minutes"`
	RefreshTokenExpiry int    `yaml:"refresh_token_expiry_minutes"`
}

// SendGridConfig contains email delivery settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// RemindersConfig contains due-date reminder job settings
type RemindersConfig struct {
	Schedule string `yaml:"schedule"`  // cron spec with seconds
	LeadDays int    `yaml:"lead_days"` // warn about deadlines within this window
	Profile  string `yaml:"profile"`   // "individual" or "sme" due-date table
	DryRun   bool   `yaml:"dry_run"`   // create notifications but skip email
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Store
	if val := os.Getenv("STORE_TYPE"); val != "" {
		c.Store.Type = val
	}

	// Firebase
	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Firebase.ProjectID = val
	}
	if val := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); val != "" {
		c.Firebase.CredentialsFile = val
	}
	if val := os.Getenv("FIREBASE_WEB_API_KEY"); val != "" {
		c.Firebase.WebAPIKey = val
	}

	// Session
	if val := os.Getenv("SESSION_MODE"); val != "" {
		c.Session.Mode = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Session.JWTSecret = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}

	// Reminders
	if val := os.Getenv("REMINDER_SCHEDULE"); val != "" {
		c.Reminders.Schedule = val
	}
	if val := os.Getenv("REMINDER_LEAD_DAYS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Reminders.LeadDays)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Store validation
	if c.Store.Type == "" {
		c.Store.Type = "firestore"
	}
	if c.Store.Type != "firestore" && c.Store.Type != "memory" {
		return fmt.Errorf("unknown store type: %q", c.Store.Type)
	}
	if c.Store.Type == "firestore" && c.Firebase.ProjectID == "" {
		return fmt.Errorf("firebase project id is required for the firestore store")
	}

	// Session validation
	if c.Session.Mode == "" {
		c.Session.Mode = "firebase"
	}
	switch c.Session.Mode {
	case "firebase":
		if c.Firebase.WebAPIKey == "" {
			return fmt.Errorf("firebase web API key is required for firebase sessions")
		}
	case "local":
		if len(c.Session.JWTSecret) < 32 {
			return fmt.Errorf("JWT secret must be at least 32 characters for local sessions")
		}
	default:
		return fmt.Errorf("unknown session mode: %q", c.Session.Mode)
	}
	if c.Session.AccessTokenExpiry <= 0 {
		c.Session.AccessTokenExpiry = 15
	}
	if c.Session.RefreshTokenExpiry <= 0 {
		c.Session.RefreshTokenExpiry = 60 * 24 * 7
	}

	// SendGrid validation
	if c.SendGrid.APIKey != "" && c.SendGrid.FromEmail == "" {
		return fmt.Errorf("sendgrid from_email is required when an API key is set")
	}

	// Reminder defaults
	if c.Reminders.Schedule == "" {
		c.Reminders.Schedule = "0 0 9 * * *" // Daily at 9 AM UTC
	}
	if c.Reminders.LeadDays <= 0 {
		c.Reminders.LeadDays = 14
	}
	if c.Reminders.Profile == "" {
		c.Reminders.Profile = "individual"
	}
	if c.Reminders.Profile != "individual" && c.Reminders.Profile != "sme" {
		return fmt.Errorf("unknown reminder profile: %q", c.Reminders.Profile)
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	return nil
}
