package config

import (
	"log/slog"
	"os"
	"time"
)

// Backend names accepted for STORE_BACKEND.
const (
	BackendFile = "file"
	BackendKV   = "kv"
)

type Config struct {
	Port         string
	Env          string
	StoreBackend string
	DataFile     string
	KVPath       string
	JWTSecret    string
	JWTExpiry    time.Duration
	AuthUsername string
	AuthPassword string
	// AuthPasswordHash, when set to a PHC argon2id string, replaces the
	// plain-text comparison of AuthPassword entirely.
	AuthPasswordHash string
	StaticDir        string
	TLSCert          string
	TLSKey           string
}

func Load() Config {
	cfg := Config{
		Port:             getEnv("PORT", "8000"),
		Env:              getEnv("ENV", "development"),
		StoreBackend:     getEnv("STORE_BACKEND", BackendFile),
		DataFile:         getEnv("DATA_FILE", "data/items.json"),
		KVPath:           getEnv("KV_PATH", "data/items.db"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:        getDuration("JWT_EXPIRY", time.Hour),
		AuthUsername:     getEnv("AUTH_USERNAME", "admin"),
		AuthPassword:     getEnv("AUTH_PASSWORD", "passwort"),
		AuthPasswordHash: getEnv("AUTH_PASSWORD_HASH", ""),
		StaticDir:        getEnv("STATIC_DIR", ""),
		TLSCert:          getEnv("TLS_CERT", ""),
		TLSKey:           getEnv("TLS_KEY", ""),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	if cfg.StoreBackend != BackendFile && cfg.StoreBackend != BackendKV {
		slog.Error("STORE_BACKEND must be 'file' or 'kv'", "got", cfg.StoreBackend)
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using fallback", "key", key, "value", v, "fallback", fallback)
		return fallback
	}
	return d
}
