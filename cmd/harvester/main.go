package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spacesedan/commentharvest/config"
	"github.com/spacesedan/commentharvest/internal/clients"
	"github.com/spacesedan/commentharvest/internal/harvester"
	"github.com/spacesedan/commentharvest/internal/intervals"
	"github.com/spacesedan/commentharvest/internal/logging"
	"github.com/spacesedan/commentharvest/internal/timeutils"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	if len(os.Args) != 4 {
		fmt.Fprintf(os.Stderr, "usage: %s <start YYYY-MM-DD> <end YYYY-MM-DD> <query>\n", os.Args[0])
		os.Exit(1)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("Configuration error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	start, err := timeutils.ParseLocalDate(os.Args[1], cfg.Timezone)
	if err != nil {
		slog.Error("Bad start date", slog.String("error", err.Error()))
		os.Exit(1)
	}
	end, err := timeutils.ParseLocalDate(os.Args[2], cfg.Timezone)
	if err != nil {
		slog.Error("Bad end date", slog.String("error", err.Error()))
		os.Exit(1)
	}
	query := os.Args[3]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	yt := clients.NewYouTubeClient(cfg.APIKey, cfg.RelevanceLanguage)
	h := harvester.New(cfg, yt, yt)

	total, err := h.Run(ctx, intervals.DateRange{Start: start, End: end}, query)
	if err != nil {
		slog.Error("Harvest failed", slog.String("error", err.Error()), slog.Int("records_written", total))
		os.Exit(1)
	}

	slog.Info("Harvest finished", slog.Int("records", total), slog.String("output", cfg.OutputFile))
}
