package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mcoot/cluegame-go/internal/api"
	"github.com/mcoot/cluegame-go/internal/config"
	"github.com/mcoot/cluegame-go/internal/factory"
)

func main() {
	// A local .env is optional; real environment variables win
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to a YAML config file (env: CONFIG_PATH)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		BoardPath:   cfg.Data.BoardPath,
		CardsPath:   cfg.Data.CardsPath,
		LobbyConfig: cfg.LobbyConfig(),
		Logger:      logger,
		StorageType: cfg.Storage.Type,
	}
	if cfg.Storage.Type == config.StorageTypeRedis {
		redisCfg := cfg.RedisConfig()
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if closer, ok := app.Storage.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		LobbyController: app.LobbyController,
		Storage:         app.Storage,
		Events:          app.Events,
	})

	server := api.NewServer(router, api.ServerConfig{
		Host:            cfg.HTTP.Host,
		Port:            cfg.HTTP.Port,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		IdleTimeout:     cfg.HTTP.IdleTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}, logger)
	// Event streams never go idle on their own
	server.OnShutdown(app.Events.Close)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
