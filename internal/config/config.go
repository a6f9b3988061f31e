// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes server timeouts,
// logging, partner credentials, workflow-engine connection settings, and the
// status-store selection.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Status reporting strategies. Exactly one runs per deployment.
const (
	StatusModeDurable   = "durable"
	StatusModeHeuristic = "heuristic"
)

// Durable status-store backends.
const (
	StatusBackendS3    = "s3"
	StatusBackendRedis = "redis"
)

// BelugaConfig holds the partner booking API settings. Each environment has
// its own base URL and bearer credential; an empty credential leaves that
// environment unconfigured and requests targeting it fail with a
// configuration error.
type BelugaConfig struct {
	BaseURL        string        // BELUGA_BASE_URL (production)
	APIKey         string        // BELUGA_API_KEY (production bearer token)
	StagingBaseURL string        // BELUGA_STAGING_BASE_URL
	StagingAPIKey  string        // BELUGA_STAGING_API_KEY
	CallTimeout    time.Duration // BELUGA_CALL_TIMEOUT, bound on the booking call
}

// WorkflowConfig holds the Zeebe gateway connection settings for the intake
// trigger.
type WorkflowConfig struct {
	GatewayAddress string        // ZEEBE_GATEWAY_ADDRESS (e.g. "zeebe:26500")
	ProcessID      string        // WORKFLOW_PROCESS_ID (BPMN process id)
	UsePlaintext   bool          // ZEEBE_USE_PLAINTEXT (no TLS, dev setups)
	StartTimeout   time.Duration // WORKFLOW_START_TIMEOUT
}

// StatusConfig selects the status-reporting strategy and, for the durable
// strategy, the store backend.
type StatusConfig struct {
	Mode        string        // STATUS_MODE: durable|heuristic
	Backend     string        // STATUS_BACKEND: s3|redis (durable only)
	Bucket      string        // STATUS_BUCKET (s3)
	AWSRegion   string        // AWS_REGION (s3)
	RedisAddr   string        // STATUS_REDIS_ADDR (redis)
	RedisPass   string        // STATUS_REDIS_PASSWORD (redis)
	RedisDB     int           // STATUS_REDIS_DB (redis)
	ReadTimeout time.Duration // STATUS_READ_TIMEOUT, bound on the store read
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 60s; must outlast the partner call
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging
	LogLevel    string // debug|info|warn|error|fatal|panic
	LogPretty   bool   // pretty console logs in dev
	APIBasePath string // base path for API routes

	// Domain
	Beluga   BelugaConfig
	Workflow WorkflowConfig
	Status   StatusConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging
		LogLevel:    strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:   getbool("LOG_PRETTY", false),
		APIBasePath: normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// Domain
		Beluga: BelugaConfig{
			BaseURL:        getenv("BELUGA_BASE_URL", "https://api.belugahealth.com"),
			APIKey:         getenv("BELUGA_API_KEY", ""),
			StagingBaseURL: getenv("BELUGA_STAGING_BASE_URL", "https://staging-api.belugahealth.com"),
			StagingAPIKey:  getenv("BELUGA_STAGING_API_KEY", ""),
			CallTimeout:    getdur("BELUGA_CALL_TIMEOUT", 30*time.Second),
		},
		Workflow: WorkflowConfig{
			GatewayAddress: getenv("ZEEBE_GATEWAY_ADDRESS", "127.0.0.1:26500"),
			ProcessID:      getenv("WORKFLOW_PROCESS_ID", "intake-orchestrator"),
			UsePlaintext:   getbool("ZEEBE_USE_PLAINTEXT", true),
			StartTimeout:   getdur("WORKFLOW_START_TIMEOUT", 30*time.Second),
		},
		Status: StatusConfig{
			Mode:        strings.ToLower(getenv("STATUS_MODE", StatusModeHeuristic)),
			Backend:     strings.ToLower(getenv("STATUS_BACKEND", StatusBackendS3)),
			Bucket:      getenv("STATUS_BUCKET", "intake-workflow-status"),
			AWSRegion:   getenv("AWS_REGION", "us-east-1"),
			RedisAddr:   getenv("STATUS_REDIS_ADDR", "127.0.0.1:6379"),
			RedisPass:   getenv("STATUS_REDIS_PASSWORD", ""),
			RedisDB:     getint("STATUS_REDIS_DB", 0),
			ReadTimeout: getdur("STATUS_READ_TIMEOUT", 10*time.Second),
		},

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "intake-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if cfg.Beluga.CallTimeout <= 0 {
		return cfg, errors.New("BELUGA_CALL_TIMEOUT must be > 0")
	}
	if strings.TrimSpace(cfg.Workflow.GatewayAddress) == "" {
		return cfg, errors.New("ZEEBE_GATEWAY_ADDRESS must not be empty")
	}
	if strings.TrimSpace(cfg.Workflow.ProcessID) == "" {
		return cfg, errors.New("WORKFLOW_PROCESS_ID must not be empty")
	}
	switch cfg.Status.Mode {
	case StatusModeDurable, StatusModeHeuristic:
	default:
		return cfg, errors.New("STATUS_MODE must be durable or heuristic")
	}
	if cfg.Status.Mode == StatusModeDurable {
		switch cfg.Status.Backend {
		case StatusBackendS3:
			if strings.TrimSpace(cfg.Status.Bucket) == "" {
				return cfg, errors.New("STATUS_BUCKET must not be empty for the s3 backend")
			}
		case StatusBackendRedis:
			if strings.TrimSpace(cfg.Status.RedisAddr) == "" {
				return cfg, errors.New("STATUS_REDIS_ADDR must not be empty for the redis backend")
			}
		default:
			return cfg, errors.New("STATUS_BACKEND must be s3 or redis")
		}
	}
	if cfg.Status.ReadTimeout <= 0 {
		return cfg, errors.New("STATUS_READ_TIMEOUT must be > 0")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
