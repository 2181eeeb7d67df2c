package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

type HTTPConfig struct {
	Addr string
}

type AuthConfig struct {
	JWTSecret      []byte
	AccessTokenTTL time.Duration
}

type AppConfig struct {
	ServiceName string
	LogLevel    string
	Env         string
	DatabaseURL string
	NATSURL     string
	// BootstrapAdminUsername, when set, is promoted to ROLE_ADMIN at startup.
	BootstrapAdminUsername string
	HTTP                   HTTPConfig
	Auth                   AuthConfig
}

// IsProduction reports whether APP_ENV marks this a production deployment.
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func Load() (AppConfig, error) {
	cfg := AppConfig{
		ServiceName:            strings.TrimSpace(os.Getenv("SERVICE_NAME")),
		LogLevel:               strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		Env:                    strings.TrimSpace(os.Getenv("APP_ENV")),
		DatabaseURL:            strings.TrimSpace(os.Getenv("DATABASE_URL")),
		NATSURL:                strings.TrimSpace(os.Getenv("NATS_URL")),
		BootstrapAdminUsername: strings.TrimSpace(os.Getenv("BOOTSTRAP_ADMIN_USERNAME")),
		HTTP: HTTPConfig{
			Addr: strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		},
		Auth: AuthConfig{
			JWTSecret:      []byte(strings.TrimSpace(os.Getenv("JWT_SECRET"))),
			AccessTokenTTL: parseDurationWithDefault(os.Getenv("ACCESS_TOKEN_TTL"), 15*time.Minute),
		},
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "tvtracker"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if len(cfg.Auth.JWTSecret) == 0 {
		return AppConfig{}, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func parseDurationWithDefault(v string, def time.Duration) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
