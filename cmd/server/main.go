// Command server runs the customer-intake backend: three stateless
// JSON-over-HTTP endpoints that trigger intake workflows, book partner
// appointments, and report workflow progress.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/curalife/intake-backend/internal/beluga"
	"github.com/curalife/intake-backend/internal/config"
	httpapi "github.com/curalife/intake-backend/internal/http"
	"github.com/curalife/intake-backend/internal/observability"
	"github.com/curalife/intake-backend/internal/services"
	"github.com/curalife/intake-backend/internal/status"
	"github.com/curalife/intake-backend/internal/sysutil"
	"github.com/curalife/intake-backend/internal/workflow"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// Local development convenience; deployments set real env vars.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetupLogging(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	starter, err := workflow.NewZeebeStarter(ctx, workflow.Config{
		GatewayAddress:         cfg.Workflow.GatewayAddress,
		ProcessID:              cfg.Workflow.ProcessID,
		UsePlaintextConnection: cfg.Workflow.UsePlaintext,
	})
	if err != nil {
		log.Fatal().Err(err).Str("gateway", cfg.Workflow.GatewayAddress).Msg("zeebe connection failed")
	}
	defer starter.Close()

	statusSvc, closeStore, err := buildStatusService(ctx, cfg.Status)
	if err != nil {
		log.Fatal().Err(err).Msg("status store setup failed")
	}
	if closeStore != nil {
		defer closeStore()
	}

	svcs := httpapi.Services{
		Intake: &services.IntakeService{
			Starter:      starter,
			StartTimeout: cfg.Workflow.StartTimeout,
			Log:          log.With().Str("service", "intake").Logger(),
		},
		Scheduling: &services.SchedulingService{
			Production:  belugaClient(cfg.Beluga.BaseURL, cfg.Beluga.APIKey, cfg.Beluga.CallTimeout, "production"),
			Staging:     belugaClient(cfg.Beluga.StagingBaseURL, cfg.Beluga.StagingAPIKey, cfg.Beluga.CallTimeout, "staging"),
			CallTimeout: cfg.Beluga.CallTimeout,
			Log:         log.With().Str("service", "scheduling").Logger(),
		},
		Status: statusSvc,
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, svcs, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("base_path", cfg.APIBasePath).Str("status_mode", cfg.Status.Mode).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("otel shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// belugaClient builds a partner client for one environment, or nil when the
// credential is absent. A nil client surfaces later as a CONFIG_ERROR on the
// first request targeting that environment rather than failing boot.
func belugaClient(baseURL, apiKey string, timeout time.Duration, env string) services.PartnerCaller {
	if apiKey == "" {
		log.Warn().Str("env", env).Msg("no beluga credential configured")
		return nil
	}
	return beluga.NewClient(baseURL, apiKey, timeout, log.With().Str("partner", "beluga").Str("env", env).Logger())
}

// buildStatusService wires the status strategy the deployment selected:
// durable reads from S3 or Redis, heuristic synthesizes progress from the
// tracking identifier alone. The returned closer is non-nil only for
// backends that hold a connection.
func buildStatusService(ctx context.Context, cfg config.StatusConfig) (*services.StatusService, func() error, error) {
	if cfg.Mode == config.StatusModeHeuristic {
		return &services.StatusService{Heuristic: &status.Heuristic{}}, nil, nil
	}

	switch cfg.Backend {
	case config.StatusBackendRedis:
		store := status.NewRedisStore(status.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		return &services.StatusService{Store: store, ReadTimeout: cfg.ReadTimeout}, store.Close, nil
	default:
		store, err := status.NewS3Store(ctx, cfg.AWSRegion, cfg.Bucket)
		if err != nil {
			return nil, nil, err
		}
		return &services.StatusService{Store: store, ReadTimeout: cfg.ReadTimeout}, nil, nil
	}
}
