package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/delivio/actionserver/actions"
	"github.com/delivio/actionserver/backend"
	"github.com/delivio/actionserver/identity"
	"github.com/delivio/actionserver/observability"
	"github.com/delivio/actionserver/server"
	"github.com/delivio/actionserver/session"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to server config JSON file")
		listen     = flag.String("listen", "", "Listen address (overrides config)")
		backendURL = flag.String("backend-url", "", "Commerce backend base URL (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	// Optional; deployments set real environment variables instead.
	_ = godotenv.Load()

	cfg := server.DefaultConfig()
	if *configFile != "" {
		loaded, err := server.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}

	if url := os.Getenv("BACKEND_URL"); url != "" {
		cfg.Backend.BaseURL = url
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Session.Driver = session.DriverRedis
		cfg.Session.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Session.Redis.Password = password
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *backendURL != "" {
		cfg.Backend.BaseURL = *backendURL
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	observer := observability.Observer(observability.NewSlogObserver(logger))
	if cfg.Observer != "" && cfg.Observer != "slog" {
		named, err := observability.GetObserver(cfg.Observer)
		if err != nil {
			log.Fatalf("Failed to resolve observer: %v", err)
		}
		observer = named
	}

	store, err := session.New(&cfg.Session)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	defer store.Close()

	client := backend.New(&cfg.Backend, backend.WithObserver(observer))

	registry := actions.NewRegistry()
	err = actions.RegisterAll(registry, actions.Deps{
		Backend:  client,
		Identity: identity.Resolver{FallbackID: cfg.FallbackID()},
		Observer: observer,
	})
	if err != nil {
		log.Fatalf("Failed to register actions: %v", err)
	}

	srv := server.New(registry, store, cfg.AllowedOrigins,
		server.WithObserver(observer),
		server.WithTurnTimeout(time.Duration(cfg.TurnTimeoutSeconds)*time.Second),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("action server listening", "addr", cfg.Listen, "actions", len(registry.List()))
	if err := srv.ListenAndServe(ctx, cfg.Listen); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
