package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/lumacam-go/app"
	"github.com/soocke/lumacam-go/config"
	"github.com/soocke/lumacam-go/debug"
	"github.com/soocke/lumacam-go/pipeline"
)

func main() {
	cfgPath := flag.String("config", "lumacam.json", "path to JSON config file")
	headless := flag.Bool("headless", false, "run capture and analysis without a window until interrupted")
	debugFlag := flag.Bool("debug", false, "enable debug logging and runtime stats")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if *debugFlag {
		cfg.Debug = true
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level, cfg.LogFile)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Debug {
		debug.StartGoroutineLogger(ctx, 5*time.Second, logger)
		debug.StartMemLogger(ctx, 5*time.Second, logger)
	}

	src, err := pipeline.NewSource(cfg)
	if err != nil {
		logger.Error("frame source", "error", err)
		os.Exit(1)
	}

	if *headless {
		logger = logger.With("session", uuid.NewString())
		if err := pipeline.NewPipeline(cfg, logger, src).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("pipeline", "error", err)
			os.Exit(1)
		}
		return
	}

	application := app.NewApplication("LumaCam", 560, 520, cfg, logger, src)
	application.Start()
}
