package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	DB       DatabaseConfig
	Auth     AuthConfig
	Geocoder GeocoderConfig
	Email    EmailConfig
	Dispatch DispatchConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Path string
}

type AuthConfig struct {
	ServiceURL string
}

type GeocoderConfig struct {
	GeocodioAPIKey string
	GeocodioURL    string
	NominatimURL   string
	UserAgent      string
	Timeout        time.Duration
}

type EmailConfig struct {
	ResendAPIKey   string
	ResendURL      string
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	SendTimeout    time.Duration
}

type DispatchConfig struct {
	Workers    int
	BufferSize int
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/hurricane-aid.db"),
		},
		Auth: AuthConfig{
			ServiceURL: getEnv("AUTH_SERVICE_URL", ""),
		},
		Geocoder: GeocoderConfig{
			GeocodioAPIKey: getEnv("GEOCODIO_API_KEY", ""),
			GeocodioURL:    getEnv("GEOCODIO_URL", "https://api.geocod.io/v1.7/geocode"),
			NominatimURL:   getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search"),
			UserAgent:      getEnv("GEOCODER_USER_AGENT", "Hurricane-Aid-Map/1.0 (emergency-response)"),
			Timeout:        getEnvDuration("GEOCODER_TIMEOUT", 10*time.Second),
		},
		Email: EmailConfig{
			ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
			ResendURL:      getEnv("RESEND_URL", "https://api.resend.com/emails"),
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			FromEmail:      getEnv("EMAIL_FROM_ADDRESS", "alerts@emergency-aid.org"),
			FromName:       getEnv("EMAIL_FROM_NAME", "Emergency Aid System"),
			SendTimeout:    getEnvDuration("EMAIL_SEND_TIMEOUT", 15*time.Second),
		},
		Dispatch: DispatchConfig{
			Workers:    getEnvInt("DISPATCH_WORKERS", 4),
			BufferSize: getEnvInt("DISPATCH_BUFFER_SIZE", 64),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Dispatch.Workers < 1 {
		return fmt.Errorf("dispatch workers must be at least 1, got %d", c.Dispatch.Workers)
	}
	if c.Dispatch.BufferSize < 1 {
		return fmt.Errorf("dispatch buffer size must be at least 1, got %d", c.Dispatch.BufferSize)
	}
	if c.Email.FromEmail == "" {
		return fmt.Errorf("email from address must not be empty")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
