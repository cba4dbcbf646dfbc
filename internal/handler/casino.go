// Package handler provides Telegram command handlers for the casino games.
// Handlers translate Telegram identities into the string IDs the engine
// uses and relay the engine's chat messages back verbatim.
package handler

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"casino-game-bot/internal/game/craps"
	"casino-game-bot/internal/game/roulette"
	"casino-game-bot/internal/model"
	"casino-game-bot/internal/service"
)

// CasinoHandler handles all casino commands.
type CasinoHandler struct {
	casino *service.CasinoService
}

// NewCasinoHandler creates a new CasinoHandler.
func NewCasinoHandler(casino *service.CasinoService) *CasinoHandler {
	return &CasinoHandler{casino: casino}
}

// ids extracts the engine's string chat and player IDs plus a display name
// from the Telegram context.
func ids(c tele.Context) (chatID, playerID, name string, ok bool) {
	chat := c.Chat()
	sender := c.Sender()
	if chat == nil || sender == nil {
		return "", "", "", false
	}
	name = sender.Username
	if name == "" {
		name = sender.FirstName
	}
	return strconv.FormatInt(chat.ID, 10), strconv.FormatInt(sender.ID, 10), name, true
}

// HandleBet handles /bet <type> <amount> for both games.
func (h *CasinoHandler) HandleBet(c tele.Context) error {
	chatID, playerID, name, ok := ids(c)
	if !ok {
		return nil
	}

	args := c.Args()
	if len(args) < 2 {
		keys := append(craps.ValidKeys(), roulette.ValidKeys()...)
		return c.Reply("❌ Usage: /bet <type> <amount>\nTypes: " + strings.Join(keys, ", "))
	}

	msg, err := h.casino.PlaceBet(context.Background(), chatID, playerID, name, args[0], args[1])
	if err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Str("player_id", playerID).Msg("place bet failed")
		return c.Reply("❌ Something went wrong, please try again later")
	}
	return c.Reply(msg)
}

// HandleRoll handles /roll: roll the shared Craps dice.
func (h *CasinoHandler) HandleRoll(c tele.Context) error {
	chatID, _, _, ok := ids(c)
	if !ok {
		return nil
	}

	msg, err := h.casino.ResolveCrapsRound(context.Background(), chatID)
	if err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Msg("craps round failed")
		return c.Reply("❌ Something went wrong, please try again later")
	}
	return c.Reply(msg)
}

// HandleSpin handles /spin: spin the shared Roulette wheel.
func (h *CasinoHandler) HandleSpin(c tele.Context) error {
	chatID, _, _, ok := ids(c)
	if !ok {
		return nil
	}

	msg, err := h.casino.ResolveRouletteRound(context.Background(), chatID)
	if err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Msg("roulette round failed")
		return c.Reply("❌ Something went wrong, please try again later")
	}
	return c.Reply(msg)
}

// HandleSlot handles /slot: a fixed-cost pull of the Zeus machine.
func (h *CasinoHandler) HandleSlot(c tele.Context) error {
	chatID, playerID, name, ok := ids(c)
	if !ok {
		return nil
	}

	msg, err := h.casino.PlaySlot(context.Background(), chatID, playerID, name)
	if err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Str("player_id", playerID).Msg("slot spin failed")
		return c.Reply("❌ Something went wrong, please try again later")
	}
	return c.Reply(msg)
}

// HandleCrapsStatus handles /craps: phase, balance and open Craps bets.
func (h *CasinoHandler) HandleCrapsStatus(c tele.Context) error {
	return h.status(c, model.GameCraps)
}

// HandleRouletteStatus handles /roulette: balance and open Roulette bets.
func (h *CasinoHandler) HandleRouletteStatus(c tele.Context) error {
	return h.status(c, model.GameRoulette)
}

func (h *CasinoHandler) status(c tele.Context, game model.Game) error {
	chatID, playerID, name, ok := ids(c)
	if !ok {
		return nil
	}

	msg, err := h.casino.GetStatus(context.Background(), chatID, playerID, name, game)
	if err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Str("player_id", playerID).Msg("status failed")
		return c.Reply("❌ Something went wrong, please try again later")
	}
	return c.Reply(msg)
}

// HandleResetCraps handles /reset_craps for the invoking player.
func (h *CasinoHandler) HandleResetCraps(c tele.Context) error {
	return h.reset(c, model.GameCraps)
}

// HandleResetRoulette handles /reset_roulette for the invoking player.
func (h *CasinoHandler) HandleResetRoulette(c tele.Context) error {
	return h.reset(c, model.GameRoulette)
}

func (h *CasinoHandler) reset(c tele.Context, game model.Game) error {
	chatID, playerID, name, ok := ids(c)
	if !ok {
		return nil
	}

	msg, err := h.casino.ResetPlayer(context.Background(), chatID, playerID, name, game)
	if err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Str("player_id", playerID).Msg("reset failed")
		return c.Reply("❌ Something went wrong, please try again later")
	}
	return c.Reply(msg)
}

// HandleHelp handles /help with the command list.
func (h *CasinoHandler) HandleHelp(c tele.Context) error {
	help := strings.Join([]string{
		"🎰 Casino commands:",
		"/bet <type> <amount> - place a Craps or Roulette bet",
		"/roll - roll the Craps dice for the whole chat",
		"/spin - spin the Roulette wheel for the whole chat",
		"/slot - pull the Zeus slot machine",
		"/craps - your Craps status",
		"/roulette - your Roulette status",
		"/reset_craps - reset your balance, clear your Craps bets",
		"/reset_roulette - reset your balance, clear your Roulette bets",
	}, "\n")
	return c.Reply(help)
}
