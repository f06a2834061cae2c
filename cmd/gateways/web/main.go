package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	config "github.com/eduvox/backend/config/web"
	"github.com/eduvox/backend/gateways/web"
	fluencyClient "github.com/eduvox/backend/gateways/web/clients/fluency"
	"github.com/eduvox/backend/gateways/web/clients/gemini"
	"github.com/eduvox/backend/gateways/web/handler"
	"github.com/eduvox/backend/pkg/logger"
	"github.com/eduvox/backend/services/debate/opponent"
	"github.com/eduvox/backend/services/debate/storage"
	debate "github.com/eduvox/backend/services/debate/usecase"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		Output:     os.Stderr,
		AddSource:  true,
		JSONFormat: cfg.LogJSON,
	})
	log.Info("configuration loaded",
		slog.Int("port", cfg.Port),
		slog.String("fluency_address", cfg.FluencyService.Address()),
		slog.Bool("auth_enabled", cfg.JWTSecret != ""),
		slog.Bool("gemini_enabled", cfg.Gemini.APIKey != ""))

	ctx := logger.WithContext(context.Background(), log)

	rootCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(rootCtx, cfg, log); err != nil {
		log.Error("failed to run()", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	fluency, err := fluencyClient.New(&cfg.FluencyService)
	if err != nil {
		return err
	}
	defer fluency.Close()

	var opp debate.Opponent = opponent.NewScripted()
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.New(&cfg.Gemini, log)
		if err != nil {
			return err
		}
		opp = client
	} else {
		log.Warn("GEMINI_API_KEY is not set, using the scripted opponent")
	}

	debates := debate.New(storage.New(), opp, fluency,
		debate.WithDefaultRebuttalQuestions(cfg.DebateRebuttals))

	srv := web.New(cfg, handler.New(fluency, debates, log), log)
	return srv.Start(ctx)
}
