package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"ap-dojo/internal/app"
	"ap-dojo/internal/cli"
	"ap-dojo/internal/config"
	"ap-dojo/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("startup failed", "error", err)
	}
	defer a.Close()

	if err := cli.Run(ctx, os.Stdin, os.Stdout, a.Service); err != nil {
		log.Error("quiz-cli failed", "error", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
}
