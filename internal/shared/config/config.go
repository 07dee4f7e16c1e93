package config

import (
	"os"
	"strings"
	"time"

	"nta-reimbursement/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	APIPrefix       string
	CORSAllowOrigin []string
	RecordStore     string
	MongoURL        string
	MongoDatabase   string
	DatabaseURL     string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	ShutdownTimeout time.Duration

	// Warnings collects problems found while loading. Load runs before the
	// logger exists, so callers emit them with LogWarnings after telemetry.Init.
	Warnings []Warning
}

// Warning is a deferred log line produced by Load.
type Warning struct {
	Msg    string
	Fields map[string]any
}

// LogWarnings writes every collected warning through the process logger.
func (c Config) LogWarnings() {
	for _, w := range c.Warnings {
		telemetry.Warn(w.Msg, w.Fields)
	}
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	mongoURL := os.Getenv("MONGO_URL")
	dbURL := os.Getenv("DATABASE_URL")

	var warnings []Warning
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		APIPrefix:       normalizePrefix(getEnv("API_PREFIX", "/api")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		RecordStore:     normalizeRecordStore(os.Getenv("RECORD_STORE"), mongoURL, dbURL),
		MongoURL:        mongoURL,
		MongoDatabase:   getEnv("DB_NAME", "nta_reimbursement"),
		DatabaseURL:     dbURL,
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("UPLOADS_DIR", "./uploads"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second, &warnings),
	}

	if env == "production" && cfg.RecordStore == "memory" {
		warnings = append(warnings, Warning{
			Msg:    "config.memory_store_in_production",
			Fields: map[string]any{"hint": "set MONGO_URL or DATABASE_URL"},
		})
	}
	cfg.Warnings = warnings
	return cfg
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getDuration(key string, def time.Duration, warnings *[]Warning) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		*warnings = append(*warnings, Warning{
			Msg:    "config.invalid_duration",
			Fields: map[string]any{"key": key, "value": raw},
		})
		return def
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

// normalizeRecordStore picks the record backend. An explicit RECORD_STORE wins;
// otherwise the first configured connection string decides, Mongo first.
func normalizeRecordStore(raw, mongoURL, dbURL string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "mongo", "mongodb":
		return "mongo"
	case "postgres", "pg":
		return "postgres"
	case "memory":
		return "memory"
	}
	switch {
	case strings.TrimSpace(mongoURL) != "":
		return "mongo"
	case strings.TrimSpace(dbURL) != "":
		return "postgres"
	default:
		return "memory"
	}
}

func normalizePrefix(raw string) string {
	p := strings.TrimSpace(raw)
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
