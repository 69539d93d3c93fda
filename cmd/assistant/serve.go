package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"voice-assistant/config"
	"voice-assistant/internal/application"
	"voice-assistant/internal/infra/audio"
	"voice-assistant/internal/infra/console"
	"voice-assistant/internal/infra/display"
	"voice-assistant/internal/infra/metrics"
	"voice-assistant/internal/infra/pushover"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the capture and dispatch loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, *configPath)
		},
	}
}

func runServe(cmd *cobra.Command, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	keywords, err := cfg.KeywordTable()
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log, os.Stdout)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	hub := display.NewHub(logger)
	defer hub.Close()

	var screens application.MultiSink
	if cfg.Display.Console {
		screens = append(screens, console.NewSink(cmd.OutOrStdout()))
	}
	if cfg.Display.WebSocket {
		screens = append(screens, hub)
	}
	if cfg.Pushover.Enabled {
		screens = append(screens, pushover.NewClient(cfg.Pushover.Token, cfg.Pushover.UserKey))
	}

	out := application.Outputs{
		Display: screens,
		Speech:  buildSpeech(cfg.Speech, logger),
	}

	dispatcher := application.NewDispatcher(
		buildActions(cfg.Actions),
		cfg.ActionParams(),
		out,
		logger,
		application.WithMetrics(m),
	)

	audioSource := createAudioSource(cfg, logger)

	assistant := application.NewAssistant(
		audioSource,
		buildSTT(cfg.OpenAI, logger),
		application.NewMatcher(keywords),
		dispatcher,
		out,
		m,
		logger,
	)

	sideRoutes := map[string]http.Handler{
		"GET /metrics": metrics.Handler(reg),
		"GET /ws":      hub,
	}

	if src, ok := audioSource.(*audio.HTTPSource); ok {
		for pattern, handler := range sideRoutes {
			src.Mount(pattern, handler)
		}
		src.ReportState(func() string { return string(assistant.State()) })
	} else {
		srv := sideServer(cfg.Audio.HTTPAddr, sideRoutes)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	logger.Info("starting voice assistant",
		"audio_source", cfg.Audio.Source,
		"speech", cfg.Speech.Enabled,
	)

	if err := assistant.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("assistant: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// sideServer serves metrics and the display socket when the capture source
// has no listener of its own.
func sideServer(addr string, routes map[string]http.Handler) *http.Server {
	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.Handle(pattern, handler)
	}
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
