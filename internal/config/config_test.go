package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	// Server timeouts / sizes (valid). t.Setenv isolates per test.
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	// Logging
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("API_BASE_PATH", "api/v1/") // no leading slash + trailing slash -> "/api/v1"

	// Beluga
	t.Setenv("BELUGA_BASE_URL", "https://partner.example.com")
	t.Setenv("BELUGA_API_KEY", "prod-key")
	t.Setenv("BELUGA_STAGING_BASE_URL", "https://partner-stg.example.com")
	t.Setenv("BELUGA_STAGING_API_KEY", "stg-key")
	t.Setenv("BELUGA_CALL_TIMEOUT", "20s")

	// Workflow
	t.Setenv("ZEEBE_GATEWAY_ADDRESS", "zeebe:26500")
	t.Setenv("WORKFLOW_PROCESS_ID", "telehealth-intake")
	t.Setenv("ZEEBE_USE_PLAINTEXT", "0")
	t.Setenv("WORKFLOW_START_TIMEOUT", "12s")

	// Status
	t.Setenv("STATUS_MODE", "durable")
	t.Setenv("STATUS_BACKEND", "redis")
	t.Setenv("STATUS_REDIS_ADDR", "redis:6379")
	t.Setenv("STATUS_REDIS_DB", "3")
	t.Setenv("STATUS_READ_TIMEOUT", "5s")

	// Rate limiting (use invalids for parse to fall back to defaults)
	t.Setenv("RATE_RPS", "x")      // -> default 5.0
	t.Setenv("RATE_BURST", "nope") // -> default 10

	// Web protection
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	// OTEL
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Server
	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}

	// Logging
	if cfg.LogLevel != "warn" || !cfg.LogPretty || cfg.APIBasePath != "/api/v1" {
		t.Fatalf("logging fields unexpected: %+v", cfg)
	}

	// Beluga
	if cfg.Beluga.BaseURL != "https://partner.example.com" ||
		cfg.Beluga.APIKey != "prod-key" ||
		cfg.Beluga.StagingBaseURL != "https://partner-stg.example.com" ||
		cfg.Beluga.StagingAPIKey != "stg-key" ||
		cfg.Beluga.CallTimeout != 20*time.Second {
		t.Fatalf("beluga fields unexpected: %+v", cfg.Beluga)
	}

	// Workflow
	if cfg.Workflow.GatewayAddress != "zeebe:26500" ||
		cfg.Workflow.ProcessID != "telehealth-intake" ||
		cfg.Workflow.UsePlaintext ||
		cfg.Workflow.StartTimeout != 12*time.Second {
		t.Fatalf("workflow fields unexpected: %+v", cfg.Workflow)
	}

	// Status
	if cfg.Status.Mode != StatusModeDurable ||
		cfg.Status.Backend != StatusBackendRedis ||
		cfg.Status.RedisAddr != "redis:6379" ||
		cfg.Status.RedisDB != 3 ||
		cfg.Status.ReadTimeout != 5*time.Second {
		t.Fatalf("status fields unexpected: %+v", cfg.Status)
	}

	// Rate limiting (parse fallback to defaults)
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 {
		t.Fatalf("rate limiting unexpected: %+v", cfg)
	}

	// Web protection
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}

	// OTEL
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure || cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

// --- Load validations (each case triggers exactly one validation error) ---

func TestLoad_ValidationErrors(t *testing.T) {
	t.Run("invalid LOG_LEVEL", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")
		if _, err := Load(); err == nil {
			t.Fatalf("expected LOG_LEVEL validation error")
		}
	})
	t.Run("empty PORT via spaces", func(t *testing.T) {
		t.Setenv("PORT", "   ")
		if _, err := Load(); err == nil || !containsErr(err, "PORT must not be empty") {
			t.Fatalf("expected port validation error, got: %v", err)
		}
	})
	t.Run("non-positive timeouts", func(t *testing.T) {
		t.Setenv("READ_TIMEOUT", "0s")
		if _, err := Load(); err == nil || !containsErr(err, "timeouts must be positive") {
			t.Fatalf("expected timeouts validation error, got: %v", err)
		}
	})
	t.Run("max header bytes <= 0", func(t *testing.T) {
		t.Setenv("MAX_HEADER_BYTES", "0")
		if _, err := Load(); err == nil || !containsErr(err, "MAX_HEADER_BYTES") {
			t.Fatalf("expected MAX_HEADER_BYTES validation error, got: %v", err)
		}
	})
	t.Run("beluga timeout non-positive", func(t *testing.T) {
		t.Setenv("BELUGA_CALL_TIMEOUT", "0s")
		if _, err := Load(); err == nil || !containsErr(err, "BELUGA_CALL_TIMEOUT") {
			t.Fatalf("expected BELUGA_CALL_TIMEOUT validation error, got: %v", err)
		}
	})
	t.Run("empty gateway address", func(t *testing.T) {
		t.Setenv("ZEEBE_GATEWAY_ADDRESS", "   ")
		if _, err := Load(); err == nil || !containsErr(err, "ZEEBE_GATEWAY_ADDRESS") {
			t.Fatalf("expected ZEEBE_GATEWAY_ADDRESS validation error, got: %v", err)
		}
	})
	t.Run("empty process id", func(t *testing.T) {
		t.Setenv("WORKFLOW_PROCESS_ID", "   ")
		if _, err := Load(); err == nil || !containsErr(err, "WORKFLOW_PROCESS_ID") {
			t.Fatalf("expected WORKFLOW_PROCESS_ID validation error, got: %v", err)
		}
	})
	t.Run("invalid status mode", func(t *testing.T) {
		t.Setenv("STATUS_MODE", "guess")
		if _, err := Load(); err == nil || !containsErr(err, "STATUS_MODE") {
			t.Fatalf("expected STATUS_MODE validation error, got: %v", err)
		}
	})
	t.Run("invalid status backend when durable", func(t *testing.T) {
		t.Setenv("STATUS_MODE", "durable")
		t.Setenv("STATUS_BACKEND", "dynamo")
		if _, err := Load(); err == nil || !containsErr(err, "STATUS_BACKEND") {
			t.Fatalf("expected STATUS_BACKEND validation error, got: %v", err)
		}
	})
	t.Run("empty bucket for s3 backend", func(t *testing.T) {
		t.Setenv("STATUS_MODE", "durable")
		t.Setenv("STATUS_BACKEND", "s3")
		t.Setenv("STATUS_BUCKET", "   ")
		if _, err := Load(); err == nil || !containsErr(err, "STATUS_BUCKET") {
			t.Fatalf("expected STATUS_BUCKET validation error, got: %v", err)
		}
	})
	t.Run("empty addr for redis backend", func(t *testing.T) {
		t.Setenv("STATUS_MODE", "durable")
		t.Setenv("STATUS_BACKEND", "redis")
		t.Setenv("STATUS_REDIS_ADDR", "   ")
		if _, err := Load(); err == nil || !containsErr(err, "STATUS_REDIS_ADDR") {
			t.Fatalf("expected STATUS_REDIS_ADDR validation error, got: %v", err)
		}
	})
	t.Run("status read timeout non-positive", func(t *testing.T) {
		t.Setenv("STATUS_READ_TIMEOUT", "0s")
		if _, err := Load(); err == nil || !containsErr(err, "STATUS_READ_TIMEOUT") {
			t.Fatalf("expected STATUS_READ_TIMEOUT validation error, got: %v", err)
		}
	})
	t.Run("rate rps negative", func(t *testing.T) {
		t.Setenv("RATE_RPS", "-1")
		if _, err := Load(); err == nil || !containsErr(err, "RATE_RPS") {
			t.Fatalf("expected RATE_RPS validation error, got: %v", err)
		}
	})
	t.Run("rate burst < 1", func(t *testing.T) {
		t.Setenv("RATE_BURST", "0")
		if _, err := Load(); err == nil || !containsErr(err, "RATE_BURST") {
			t.Fatalf("expected RATE_BURST validation error, got: %v", err)
		}
	})
	t.Run("hsts max age negative", func(t *testing.T) {
		t.Setenv("HSTS_MAX_AGE", "-1s")
		if _, err := Load(); err == nil || !containsErr(err, "HSTS_MAX_AGE") {
			t.Fatalf("expected HSTS_MAX_AGE validation error, got: %v", err)
		}
	})
	t.Run("otel sample ratio out of range", func(t *testing.T) {
		t.Setenv("OTEL_TRACES_SAMPLER_ARG", "1.5")
		if _, err := Load(); err == nil || !containsErr(err, "OTEL_TRACES_SAMPLER_ARG") {
			t.Fatalf("expected OTEL_TRACES_SAMPLER_ARG validation error, got: %v", err)
		}
	})

	// Note: API_BASE_PATH validation is effectively unreachable due to normalizeBasePath
	// always ensuring a leading '/' and returning "/" for empty input.
}

// --- helpers ---

func TestHelpers_getenv(t *testing.T) {
	t.Setenv("X_EMPTY", "")
	if getenv("X_EMPTY", "d") != "d" {
		t.Fatalf("getenv should fall back to default on empty var")
	}
	t.Setenv("X_SET", "val")
	if getenv("X_SET", "d") != "val" {
		t.Fatalf("getenv should read set value")
	}
}

func TestHelpers_getfloat_getint_getdur(t *testing.T) {
	t.Setenv("F_VALID", "3.14")
	if getfloat("F_VALID", 0) != 3.14 {
		t.Fatalf("getfloat parse failed")
	}
	t.Setenv("F_BAD", "nope")
	if getfloat("F_BAD", 1.23) != 1.23 {
		t.Fatalf("getfloat default on bad parse failed")
	}

	t.Setenv("I_VALID", "42")
	if getint("I_VALID", 0) != 42 {
		t.Fatalf("getint parse failed")
	}
	t.Setenv("I_BAD", "x")
	if getint("I_BAD", 7) != 7 {
		t.Fatalf("getint default on bad parse failed")
	}

	t.Setenv("D_VALID", "150ms")
	if getdur("D_VALID", time.Second) != 150*time.Millisecond {
		t.Fatalf("getdur parse failed")
	}
	t.Setenv("D_BAD", "zzz")
	if getdur("D_BAD", 2*time.Second) != 2*time.Second {
		t.Fatalf("getdur default on bad parse failed")
	}
}

func TestHelpers_getbool(t *testing.T) {
	trueVals := []string{"1", "true", "TRUE", " yes ", "Y", "on", "On"}
	for i, v := range trueVals {
		k := "B_T_" + config_strconv(i)
		t.Setenv(k, v)
		if !getbool(k, false) {
			t.Fatalf("getbool(%q) = false; want true", v)
		}
	}
	falseVals := []string{"0", "false", "FALSE", " no ", "N", "off", "Off"}
	for i, v := range falseVals {
		k := "B_F_" + config_strconv(i)
		t.Setenv(k, v)
		if getbool(k, true) {
			t.Fatalf("getbool(%q) = true; want false", v)
		}
	}
	// default on unset/empty
	t.Setenv("B_EMPTY", "")
	if !getbool("B_EMPTY", true) || getbool("B_EMPTY", false) {
		t.Fatalf("getbool default behavior unexpected")
	}
}

func TestHelpers_normalizeBasePath(t *testing.T) {
	if normalizeBasePath("") != "/" {
		t.Fatalf("normalizeBasePath empty -> '/' failed")
	}
	if normalizeBasePath("v1") != "/v1" {
		t.Fatalf("normalizeBasePath missing leading slash failed")
	}
	if normalizeBasePath("/v1/") != "/v1" {
		t.Fatalf("normalizeBasePath trailing slash trim failed")
	}
	if normalizeBasePath(" / ") != "/" {
		t.Fatalf("normalizeBasePath whitespace failed")
	}
}

// small helper (avoid fmt just for ints)
func config_strconv(i int) string { return string('a' + rune(i)) }

// Ensure tests don't leak env to others.
func TestMain(m *testing.M) {
	os.Unsetenv("PORT")
	os.Exit(m.Run())
}

// containsErr reports whether err's message contains the given substring.
func containsErr(err error, want string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), want)
}

func TestLoad_Defaults_HeuristicMode(t *testing.T) {
	// Intentionally leave STATUS_MODE and API_BASE_PATH unset.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIBasePath != "/api/v1" {
		t.Fatalf("API_BASE_PATH default expected '/api/v1', got %q", cfg.APIBasePath)
	}
	if cfg.Status.Mode != StatusModeHeuristic {
		t.Fatalf("expected heuristic status mode by default, got %q", cfg.Status.Mode)
	}
	if cfg.Beluga.CallTimeout != 30*time.Second {
		t.Fatalf("BELUGA_CALL_TIMEOUT default expected 30s, got %v", cfg.Beluga.CallTimeout)
	}
}

func TestMustLoad_Success_NoPanic(t *testing.T) {
	// No special env needed; defaults are valid.
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("MustLoad should not panic on valid defaults, got: %v", r)
		}
	}()
	cfg := MustLoad()
	if cfg.APIBasePath == "" {
		t.Fatalf("unexpected empty config from MustLoad")
	}
}
