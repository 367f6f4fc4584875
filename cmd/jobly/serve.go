package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/health"

	"github.com/alfredjeanlab/jobly/internal/config"
	"github.com/alfredjeanlab/jobly/internal/events"
	"github.com/alfredjeanlab/jobly/internal/server"
	"github.com/alfredjeanlab/jobly/internal/store/postgres"
	joblysync "github.com/alfredjeanlab/jobly/internal/sync"
)

const (
	healthInterval  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:               "serve",
	Short:             "Run the jobly HTTP and gRPC servers",
	GroupID:           "system",
	Args:              cobra.NoArgs,
	PersistentPreRunE: noClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}

		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				store.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (JOBLY_NATS_URL not set)")
		}
		if cfg.AdminToken == "" {
			logger.Warn("admin guard disabled (JOBLY_ADMIN_TOKEN not set)")
		}

		joblyServer := server.NewJoblyServer(store, publisher)

		ctx, stop := context.WithCancel(cmd.Context())
		defer stop()

		hs := health.NewServer()
		grpcServer := server.NewGRPCServer(cfg.AdminToken, hs)
		go server.MonitorHealth(ctx, store, hs, healthInterval)

		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			publisher.Close()
			store.Close()
			return err
		}
		go func() {
			logger.Info("gRPC server listening", "addr", cfg.GRPCAddr)
			if err := grpcServer.Serve(lis); err != nil {
				logger.Error("gRPC server error", "err", err)
			}
		}()

		httpServer := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           joblyServer.NewHTTPHandler(cfg.AdminToken),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP server error", "err", err)
				stop()
			}
		}()

		var scheduler *joblysync.Scheduler
		if cfg.SyncEnabled() {
			dest, err := joblysync.NewS3Destination(ctx, cfg.SyncS3Bucket, cfg.SyncS3Key, cfg.SyncS3Region, cfg.SyncS3Endpoint)
			if err != nil {
				logger.Error("failed to create S3 sync destination", "err", err)
			} else {
				scheduler = joblysync.NewScheduler(store, []joblysync.Destination{dest}, cfg.SyncInterval, logger)
				scheduler.Start()
				logger.Info("sync scheduler started", "interval", cfg.SyncInterval, "destination", dest.String())
			}
		}

		logger.Info("jobly server started", "grpc_addr", cfg.GRPCAddr, "http_addr", cfg.HTTPAddr)

		<-ctx.Done()
		logger.Info("shutting down")

		if scheduler != nil {
			scheduler.Stop()
			logger.Info("sync scheduler stopped")
		}

		grpcServer.GracefulStop()
		logger.Info("gRPC server stopped")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}
