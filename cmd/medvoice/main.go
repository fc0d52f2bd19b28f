// Command medvoice runs the medical voice-processing service: it accepts
// uploaded audio, transcribes it through the Sarvam API, extracts biomedical
// entities from the transcript through the HuggingFace inference API, and
// returns the categorized terms.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/medvoice/component"
	"github.com/skillsenselab/medvoice/config"
	"github.com/skillsenselab/medvoice/extraction"
	"github.com/skillsenselab/medvoice/extraction/huggingface"
	"github.com/skillsenselab/medvoice/logger"
	"github.com/skillsenselab/medvoice/observability"
	"github.com/skillsenselab/medvoice/pipeline"
	"github.com/skillsenselab/medvoice/server"
	"github.com/skillsenselab/medvoice/server/endpoint"
	"github.com/skillsenselab/medvoice/transcription"
	"github.com/skillsenselab/medvoice/transcription/sarvam"
	"github.com/skillsenselab/medvoice/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "medvoice:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.Logging)
	log := logger.New(&cfg.Logging, cfg.Name)

	log.Info("Starting medvoice", map[string]interface{}{
		"version":     version.GetShortVersion(),
		"environment": cfg.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.Tracing)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(shutdownCtx)
		}()
	}

	transcriber, extractor, err := buildProviders(cfg)
	if err != nil {
		return err
	}

	proc := pipeline.NewProcessor(transcriber, extractor, log)

	srv := server.New(cfg.Server, log)
	srv.ApplyDefaults(cfg.Name, gatewayHealth(transcriber, extractor))
	srv.GinEngine().POST("/process_audio", endpoint.ProcessAudio(proc, log))

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	return srv.Stop(context.Background())
}

// buildProviders constructs the transcription and extraction gateways through
// their registries so alternative backends stay pluggable.
func buildProviders(cfg *config.Config) (transcription.Provider, extraction.Provider, error) {
	sttRegistry := transcription.NewRegistry()
	sttRegistry.RegisterFactory(sarvam.ProviderName, sarvam.Factory())

	transcriber, err := sttRegistry.Create(sarvam.ProviderName, map[string]any{
		"api_url": cfg.Sarvam.APIURL,
		"api_key": cfg.Sarvam.APIKey,
		"model":   cfg.Sarvam.Model,
		"timeout": cfg.Sarvam.Timeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create transcription provider: %w", err)
	}

	nerRegistry := extraction.NewRegistry()
	nerRegistry.RegisterFactory(huggingface.ProviderName, huggingface.Factory())

	extractor, err := nerRegistry.Create(huggingface.ProviderName, map[string]any{
		"api_url":   cfg.HuggingFace.APIURL,
		"api_token": cfg.HuggingFace.APIToken,
		"timeout":   cfg.HuggingFace.Timeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create extraction provider: %w", err)
	}

	return transcriber, extractor, nil
}

// gatewayHealth reports availability of both upstream gateways for /health.
func gatewayHealth(transcriber transcription.Provider, extractor extraction.Provider) endpoint.HealthChecker {
	return func(ctx context.Context) []component.Health {
		health := func(name string, available bool) component.Health {
			h := component.Health{Name: name, Status: component.StatusHealthy}
			if !available {
				h.Status = component.StatusUnhealthy
				h.Message = "gateway unreachable"
			}
			return h
		}
		return []component.Health{
			health(transcriber.Name(), transcriber.IsAvailable(ctx)),
			health(extractor.Name(), extractor.IsAvailable(ctx)),
		}
	}
}
