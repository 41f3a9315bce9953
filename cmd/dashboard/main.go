package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"trading-tools/internal/logger"
	"trading-tools/internal/trace"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	_ = godotenv.Load()

	if err := initializeSystem(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx, *configPath)
	if err != nil {
		log.Fatal(err)
	}

	srv := buildServer(ctx, cfg)
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.ErrorWithErr(ctx, "Dashboard stopped with error", err)
	}

	if err := trace.Shutdown(context.Background()); err != nil {
		logger.Warn(ctx, "Tracer shutdown failed", "error", err)
	}
}
