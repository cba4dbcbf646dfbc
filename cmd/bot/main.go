// Package main is the entry point for the casino game bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"casino-game-bot/internal/bot"
	"casino-game-bot/internal/config"
	"casino-game-bot/internal/model"
	"casino-game-bot/internal/pkg/db"
	"casino-game-bot/internal/pkg/lock"
	"casino-game-bot/internal/repository"
	"casino-game-bot/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	if err := repository.Migrate(ctx, dbPool.Pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	startBalance, err := decimal.NewFromString(cfg.Casino.StartBalance)
	if err != nil {
		log.Warn().Str("start_balance", cfg.Casino.StartBalance).
			Msg("Invalid start balance in config, using default")
		startBalance = model.DefaultBalance
	}

	ledger := repository.NewLedgerStore(dbPool.Pool, startBalance)
	chatLock := lock.NewChatLock()
	casino := service.NewCasinoService(ledger, chatLock)

	telegramBot, err := bot.New(&bot.Dependencies{
		Config: cfg,
		Casino: casino,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Msg("Bot is starting...")
		telegramBot.Start()
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	telegramBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}
