package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartsplit/smartsplit-backend/internal/api"
	"github.com/smartsplit/smartsplit-backend/internal/application/service"
	"github.com/smartsplit/smartsplit-backend/internal/infrastructure/config"
	"github.com/smartsplit/smartsplit-backend/internal/infrastructure/logging"
	"github.com/smartsplit/smartsplit-backend/internal/infrastructure/storage"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Configuration file path")
	flag.Parse()

	cfg, err := config.LoadOrEnv(*configFile)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLoggerWithComponent(cfg.Observability.Logging, "api")

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("failed to open storage", "error", err, "path", cfg.Storage.DatabasePath)
		os.Exit(1)
	}
	defer store.Close()

	svc, err := service.NewBillService(service.Config{
		Store: store,
		Now:   time.Now,
	})
	if err != nil {
		logger.Error("failed to build bill service", "error", err)
		os.Exit(1)
	}

	// Pick up where the last session left off
	switch err := svc.LoadDraft(); err {
	case nil:
		logger.Info("restored draft bill")
	case service.ErrNoDraft:
		logger.Info("starting with an empty bill")
	default:
		logger.Warn("could not restore draft", "error", err)
	}

	server := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, svc, logger)

	// Autosave loop
	autosaveStop := make(chan struct{})
	if cfg.Autosave.Enabled {
		interval := time.Duration(cfg.Autosave.IntervalSeconds) * time.Second
		go runAutosave(svc, logging.NewLoggerWithComponent(cfg.Observability.Logging, "autosave"), interval, autosaveStop)
	}

	// Serve until signalled
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	close(autosaveStop)

	// One last save so nothing is lost across the restart
	if svc.HasData() {
		if err := svc.SaveDraft(); err != nil {
			logger.Warn("final draft save failed", "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}

// runAutosave persists the live bill at a fixed interval. Empty bills are
// skipped so a fresh start does not clobber nothing into the draft slot.
func runAutosave(svc *service.BillService, logger *slog.Logger, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("autosave started", "interval", interval)

	for {
		select {
		case <-stop:
			logger.Info("autosave stopped")
			return
		case <-ticker.C:
			if !svc.HasData() {
				continue
			}
			if err := svc.SaveDraft(); err != nil {
				logger.Warn("autosave failed", "error", err)
				continue
			}
			logger.Debug("draft autosaved")
		}
	}
}
