package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"modelopsd/internal/config"
	"modelopsd/internal/httpapi"
	"modelopsd/internal/lease"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "modelopsd:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "modelopsd",
		Short:         "Model operations coordinator: GPU VRAM lease manager",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to config file (.yaml/.json/.toml)")
	cmd.Flags().String("addr", ":9090", "HTTP listen address, e.g. :9090")
	cmd.Flags().Int64("vram-soft-limit-mb", 0, "Soft VRAM limit in MB; leasable capacity is 90% of this")
	cmd.Flags().Int32("default-ttl-seconds", 0, "Default lease TTL when a request omits it (0=package default)")
	cmd.Flags().Int64("reap-interval-ms", 0, "Expiry reaper interval in milliseconds (0=default 1000)")
	cmd.Flags().String("log-level", "info", "Log level: debug|info|warn|error")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var cfg config.Config
		if cfgPath != "" {
			var err error
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
		}
		// Flags override file values when set explicitly; flag defaults fill
		// fields the file left unspecified.
		f := cmd.Flags()
		if v, _ := f.GetString("addr"); f.Changed("addr") || cfg.Addr == "" {
			cfg.Addr = v
		}
		if v, _ := f.GetInt64("vram-soft-limit-mb"); f.Changed("vram-soft-limit-mb") {
			cfg.VRAMSoftLimitMB = v
		}
		if v, _ := f.GetInt32("default-ttl-seconds"); f.Changed("default-ttl-seconds") {
			cfg.DefaultTTLSeconds = v
		}
		if v, _ := f.GetInt64("reap-interval-ms"); f.Changed("reap-interval-ms") {
			cfg.ReapIntervalMS = v
		}
		if v, _ := f.GetString("log-level"); f.Changed("log-level") || cfg.LogLevel == "" {
			cfg.LogLevel = v
		}
		if cfg.VRAMSoftLimitMB <= 0 {
			return fmt.Errorf("vram_soft_limit_mb must be positive (flag --vram-soft-limit-mb or config file)")
		}
		return run(cfg)
	}
	return cmd
}

func run(cfg config.Config) error {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logger := zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Str("svc", "modelopsd").Logger()

	mgr := lease.New(lease.Config{
		SoftLimitMB:       cfg.VRAMSoftLimitMB,
		DefaultTTLSeconds: cfg.DefaultTTLSeconds,
		ReapEvery:         time.Duration(cfg.ReapIntervalMS) * time.Millisecond,
		Logger:            &logger,
	})
	// The reaper is the only background activity; failing to start it is
	// fatal at startup rather than a degraded mode.
	if err := mgr.Start(); err != nil {
		return fmt.Errorf("start expiry reaper: %w", err)
	}
	defer mgr.Stop()

	httpapi.SetLogger(logger)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, cfg.CORSMethods, cfg.CORSHeaders)
	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(mgr)}

	errCh := make(chan error, 1)
	go func() {
		snap := mgr.Snapshot()
		logger.Info().Str("addr", cfg.Addr).
			Int64("capacity_mb", snap.CapacityMB).
			Int64("soft_limit_mb", cfg.VRAMSoftLimitMB).
			Msg("modelopsd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	// mgr.Stop in the deferred call joins the reaper before exit.
	return nil
}
