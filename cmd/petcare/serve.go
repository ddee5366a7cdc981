package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petcare/internal/domain/illness"
	"petcare/internal/platform/config"
	"petcare/internal/platform/metrics"
	"petcare/internal/router"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, *configPath)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	m := metrics.New()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	identity, verifier, err := newIdentity(cfg, m)
	if err != nil {
		return err
	}
	if verifier == nil {
		log.Warn("identity provider not configured; running in dev mode (X-Debug-User-ID)", nil)
	}

	assistant, err := newAssistant(ctx, cfg, log)
	if err != nil {
		return err
	}
	if assistant == nil {
		log.Warn("diagnosis api key not configured; diagnosis requests will fail", nil)
	}

	archive, err := newArchive(ctx, cfg)
	if err != nil {
		return err
	}

	sessions := illness.NewSessionStore(cfg.SessionTTL(),
		illness.WithSessionLogger(log),
		illness.WithSessionMetrics(m),
	)

	opts := router.Options{
		AuthVerifier:     verifier,
		Identity:         identity,
		Store:            store,
		AppID:            cfg.AppID,
		Assistant:        assistant,
		Archive:          archive,
		Sessions:         sessions,
		ReportFontFile:   cfg.Report.FontFile,
		MaxHNAttempts:    cfg.HN.MaxAttempts,
		DiagnosisTimeout: cfg.DiagnosisTimeout(),
		Logger:           log,
		Metrics:          m,
	}
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": cfg.HTTP.Addr, "docstore": cfg.DocStore.Driver, "app_id": cfg.AppID})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return sessions.Run(gctx, time.Minute)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
