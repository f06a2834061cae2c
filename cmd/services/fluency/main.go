package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	config "github.com/eduvox/backend/config/fluency"
	"github.com/eduvox/backend/pkg/logger"
	"github.com/eduvox/backend/services/fluency/server"
	"github.com/eduvox/backend/services/fluency/storage"
	"github.com/eduvox/backend/services/fluency/storage/postgres"
	"github.com/eduvox/backend/services/fluency/telemetry"
	"github.com/eduvox/backend/services/fluency/usecase"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		Output:     os.Stderr,
		AddSource:  true,
		JSONFormat: cfg.LogJSON,
	})

	ctx := logger.WithContext(context.Background(), log)

	rootCtx, cancel := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer cancel()

	if err := run(rootCtx, cfg, log); err != nil {
		log.Error("failed to run()", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	var stg storage.Storage = storage.New()
	if cfg.Database.Enabled() {
		pg, err := postgres.Open(ctx, cfg.Database.DSN())
		if err != nil {
			log.Error("failed to open postgres storage", slog.String("error", err.Error()))
			return err
		}
		defer pg.Close()
		stg = pg
		log.Info("using postgres storage", slog.String("host", cfg.Database.Host))
	} else {
		log.Info("using in-memory storage")
	}

	recorder := telemetry.NewRecorder(log)
	defer recorder.LogSummary()

	usc := usecase.New(cfg, stg, recorder)

	srv := server.NewServerOptions(usc, log)
	grpcServer, err := srv.NewServer()
	if err != nil {
		log.Error("failed to create grpc server", slog.String("error", err.Error()))
		return err
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	address := fmt.Sprintf(":%d", cfg.Port)
	grpcListener, err := net.Listen("tcp", address)
	if err != nil {
		log.Error("failed to listen on grpc port", slog.String("error", err.Error()))
		return fmt.Errorf("failed to listen on grpc port: %w", err)
	}

	go func() {
		serverErrors <- grpcServer.Serve(grpcListener)
	}()
	log.Info("fluency grpc service started",
		slog.String("address", address),
		slog.Float64("pause_threshold", cfg.PauseThreshold),
	)

	select {
	case err := <-serverErrors:
		log.Info("grpc server has closed")
		return fmt.Errorf("grpc server has closed: %w", err)
	case sig := <-shutdown:
		log.Info("start shutdown", slog.String("signal", sig.String()))
		srv.Shutdown()
		grpcServer.GracefulStop()
	case <-ctx.Done():
		log.Info("closing grpc server due to context cancellation")
		srv.Shutdown()
		grpcServer.GracefulStop()
	}

	return nil
}
