package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scout/internal/broker"
	"scout/internal/config"
	"scout/internal/engine"
	"scout/internal/md"
	"scout/internal/risk"
	"scout/internal/session"
	"scout/internal/state"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("scan failed")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	setupLogger(cfg.LogLevel)

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}

	if !cfg.Force && !session.NewWindow(loc).Active(time.Now()) {
		log.Info().Msg("outside market scan window; skipping")
		return nil
	}

	decisions, err := engine.NewDecisionLogger(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("decision log: %w", err)
	}
	defer func() {
		if err := decisions.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close decision log")
		}
	}()

	store := state.NewStore()
	if err := store.Load(cfg.CheckpointPath); err == nil {
		log.Info().Str("path", cfg.CheckpointPath).Msg("loaded checkpoint")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.ScanTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.ScanTimeout)
		defer cancel()
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalChan
		log.Info().Msg("shutdown signal received")
		cancel()
	}()

	equity := cfg.Equity
	if cfg.LiveEquity {
		acct, err := broker.New(cfg.APIKey, cfg.APISecret, cfg.TradeBaseURL).Account(ctx)
		if err != nil {
			return fmt.Errorf("live equity: %w", err)
		}
		equity = acct.Equity
	}

	supplier := md.NewAlpacaSupplier(cfg.APIKey, cfg.APISecret, cfg.Feed)
	gate := risk.Gate{MinConsensus: cfg.ConsensusMin}
	sizer := risk.Sizer{Equity: equity, RiskFraction: cfg.RiskPerTrade, ATRMult: cfg.ATRMult}
	eng := engine.New(cfg, supplier, gate, sizer, decisions, store, loc)

	log.Info().
		Int("universe", len(cfg.Universe)).
		Float64("equity", equity).
		Int("consensus_min", cfg.ConsensusMin).
		Msg("starting scan")

	summary, scanErr := eng.Scan(ctx)
	if err := store.Save(cfg.CheckpointPath); err != nil {
		log.Warn().Err(err).Msg("failed to save checkpoint")
	}
	if scanErr != nil {
		return scanErr
	}

	log.Info().
		Int("evaluated", summary.Evaluated).
		Int("accepted", summary.Accepted).
		Int("skipped", summary.Skipped).
		Msg("scan complete")
	return nil
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
