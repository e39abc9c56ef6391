package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scythe504/sketchrooms/internal/config"
	"github.com/scythe504/sketchrooms/internal/game"
	"github.com/scythe504/sketchrooms/internal/logging"
	"github.com/scythe504/sketchrooms/internal/metrics"
	"github.com/scythe504/sketchrooms/internal/server"
	"github.com/scythe504/sketchrooms/internal/storage"
	"github.com/scythe504/sketchrooms/internal/utils"
	"github.com/scythe504/sketchrooms/internal/websocket"
	"go.uber.org/zap"
)

const reapInterval = time.Minute

func main() {
	configPath := config.DetermineConfigPath(flag.CommandLine, os.Args[1:])
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	words, err := loadWords(ctx, cfg.Words, logger)
	if err != nil {
		logger.Fatalw("failed to load word list", "source", cfg.Words.Source, "error", err)
	}
	bank, err := game.NewWordBank(words, nil)
	if err != nil {
		logger.Fatalw("failed to build word bank", "source", cfg.Words.Source, "error", err)
	}

	collector := metrics.New()
	lobby := websocket.NewLobby(logger)
	registry := game.NewRegistry(game.RegistryConfig{
		Settings: game.Settings{
			MaxPlayers:     cfg.Game.MaxPlayers,
			MaxRounds:      cfg.Game.MaxRounds,
			RoundDuration:  cfg.Game.RoundDuration,
			RevealDuration: cfg.Game.RevealDuration,
		},
		Words:  bank,
		Stats:  collector,
		Events: lobby,
		Logger: logger,
	})
	go registry.RunReaper(ctx, reapInterval, cfg.Game.EmptyRoomTTL)

	ws := websocket.NewHandler(registry, websocket.Options{
		SendBuffer:        cfg.Transport.SendBuffer,
		MessagesPerSecond: cfg.Transport.MessagesPerSecond,
		Burst:             cfg.Transport.Burst,
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
		OnSlowClient:      collector.SlowClientDropped,
		Lobby:             lobby,
	}, logger)

	srv := server.NewServer(cfg.HTTP, registry, ws, collector.Handler(), logger)
	if err := srv.Run(ctx); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}

func loadWords(ctx context.Context, cfg config.WordsConfig, logger *zap.SugaredLogger) ([]string, error) {
	switch cfg.Source {
	case config.WordsBuiltin:
		return game.DefaultWords(), nil

	case config.WordsCSV:
		words, err := utils.ReadCsvFile(cfg.CSVPath)
		if err != nil {
			return nil, err
		}
		logger.Infow("loaded words from csv", "path", cfg.CSVPath, "count", len(words))
		return words, nil

	case config.WordsPostgres:
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		store, err := storage.NewWordStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		words, err := store.Words(ctx)
		if err != nil {
			return nil, err
		}
		logger.Infow("loaded words from postgres", "count", len(words))
		return words, nil
	}
	return nil, fmt.Errorf("unknown word source %q", cfg.Source)
}
