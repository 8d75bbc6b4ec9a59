package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/edvin/trafficbot/internal/bwh"
	"github.com/edvin/trafficbot/internal/config"
	"github.com/edvin/trafficbot/internal/dispatch"
	"github.com/edvin/trafficbot/internal/logging"
	"github.com/edvin/trafficbot/internal/ops"
	"github.com/edvin/trafficbot/internal/report"
	"github.com/edvin/trafficbot/internal/schedule"
	"github.com/edvin/trafficbot/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := telegram.NewBot(cfg.BotToken, cfg.Recipients, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to telegram")
	}

	client := bwh.NewClient(cfg.BWHAPIURL, cfg.HTTPTimeout)
	builder := report.NewBuilder(client, cfg.Credentials, cfg.Location(), logger)
	dispatcher := dispatch.New(builder, bot, cfg.Recipients, logger)

	scheduler, err := schedule.New(cfg.Recipients, cfg.ReportHours, cfg.Location(), dispatcher.HandleScheduleFire, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build schedule")
	}

	dispatcher.AnnounceStartup(ctx)
	scheduler.Start()
	defer scheduler.Stop()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.HTTPListenAddr != "" {
		opsSrv := ops.NewServer(cfg.HTTPListenAddr, logger)
		g.Go(func() error {
			logger.Info().Str("addr", cfg.HTTPListenAddr).Msg("starting ops server")
			if err := opsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("ops server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return opsSrv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		return bot.Run(gctx, dispatcher)
	})

	logger.Info().
		Int("credentials", len(cfg.Credentials)).
		Int("recipients", len(cfg.Recipients)).
		Ints("hours", cfg.ReportHours).
		Msg("trafficbot started")

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("shutdown with error")
	}
	logger.Info().Msg("shutting down")
}
