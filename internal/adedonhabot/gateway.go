package adedonhabot

import (
	"fmt"
	"time"

	"github.com/adedonha-games/adedonha/internal/adedonhabot/game"
	"github.com/adedonha-games/adedonha/internal/adedonhabot/resource"
	"github.com/enescakir/emoji"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// tgGateway renders engine events into chat messages. The engine hands
// over plain snapshots; all telegram markup lives here.
type tgGateway struct {
	tg *tgbotapi.BotAPI
}

func newTgGateway(tg *tgbotapi.BotAPI) *tgGateway {
	return &tgGateway{tg: tg}
}

func (g *tgGateway) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := g.tg.Send(msg); err != nil {
		return fmt.Errorf("send msg: %v", err)
	}
	return nil
}

func (g *tgGateway) LobbyUpdated(roomID int64, mode game.Mode, players []game.PlayerInfo) error {
	msg := tgbotapi.NewMessage(roomID, renderLobby(mode, players))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = resource.LobbyKeyboard
	if _, err := g.tg.Send(msg); err != nil {
		return fmt.Errorf("send msg: %v", err)
	}
	return nil
}

func (g *tgGateway) RoundAnnounced(roomID int64, ev game.RoundAnnounce) error {
	return g.send(roomID, renderRoundAnnounce(ev))
}

func (g *tgGateway) FirstSubmitterAnnounced(roomID int64, player game.PlayerInfo, window time.Duration) error {
	return g.send(roomID, renderFirstSubmitter(player, window))
}

func (g *tgGateway) RoundEndedNoSubmissions(roomID int64, number int) error {
	return g.send(roomID, fmt.Sprintf(
		"%s Nobody answered round %d. Moving on.", emoji.SleepingFace.String(), number,
	))
}

func (g *tgGateway) ManualValidationNeeded(roomID int64, ev game.ManualValidation) error {
	names := make(map[int64]string, len(ev.Players))
	var submitters []int64
	for _, player := range ev.Players {
		if _, ok := ev.Answers[player.ID]; !ok {
			continue
		}
		names[player.ID] = player.Name
		submitters = append(submitters, player.ID)
	}

	msg := tgbotapi.NewMessage(roomID, renderManualValidation(ev))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = resource.ValidationKeyboard(submitters, names)
	if _, err := g.tg.Send(msg); err != nil {
		return fmt.Errorf("send msg: %v", err)
	}
	return nil
}

func (g *tgGateway) RoundScored(roomID int64, ev game.RoundResult) error {
	return g.send(roomID, renderRoundResult(ev))
}

func (g *tgGateway) GameFinished(roomID int64, standings []game.PlayerInfo) error {
	return g.send(roomID, renderStandings(standings))
}

func (g *tgGateway) GameCancelled(roomID int64) error {
	return g.send(roomID, emoji.ChequeredFlag.String()+" The game was cancelled.")
}
