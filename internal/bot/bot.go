// Package bot provides the Telegram bot initialization and handler registration.
package bot

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"casino-game-bot/internal/config"
	"casino-game-bot/internal/handler"
	"casino-game-bot/internal/service"
)

// Bot wraps the telebot instance with application dependencies.
type Bot struct {
	bot           *tele.Bot
	cfg           *config.Config
	casinoHandler *handler.CasinoHandler
}

// Dependencies holds everything the bot handlers need.
type Dependencies struct {
	Config *config.Config
	Casino *service.CasinoService
}

// New creates a new Bot instance with the given dependencies.
func New(deps *Dependencies) (*Bot, error) {
	if deps.Config.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	pref := tele.Settings{
		Token:  deps.Config.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	teleBot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		bot:           teleBot,
		cfg:           deps.Config,
		casinoHandler: handler.NewCasinoHandler(deps.Casino),
	}

	b.registerMiddleware()
	b.registerHandlers()

	return b, nil
}

func (b *Bot) registerMiddleware() {
	b.bot.Use(RecoveryMiddleware())
	b.bot.Use(WhitelistMiddleware(b.cfg))
	b.bot.Use(LoggingMiddleware())
}

func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.casinoHandler.HandleHelp)
	b.bot.Handle("/help", b.casinoHandler.HandleHelp)

	b.bot.Handle("/bet", b.casinoHandler.HandleBet)
	b.bot.Handle("/roll", b.casinoHandler.HandleRoll)
	b.bot.Handle("/spin", b.casinoHandler.HandleSpin)
	b.bot.Handle("/slot", b.casinoHandler.HandleSlot)

	b.bot.Handle("/craps", b.casinoHandler.HandleCrapsStatus)
	b.bot.Handle("/roulette", b.casinoHandler.HandleRouletteStatus)
	b.bot.Handle("/reset_craps", b.casinoHandler.HandleResetCraps)
	b.bot.Handle("/reset_roulette", b.casinoHandler.HandleResetRoulette)
}

// Start starts the bot polling.
func (b *Bot) Start() {
	log.Info().Msg("Starting bot...")
	b.bot.Start()
}

// Stop stops the bot gracefully.
func (b *Bot) Stop() {
	log.Info().Msg("Stopping bot...")
	b.bot.Stop()
}
