package adedonhabot

import (
	"strconv"
	"time"

	"github.com/adedonha-games/adedonha/internal/adedonhabot/game"
	statModel "github.com/adedonha-games/adedonha/internal/database/stat/model"
	userModel "github.com/adedonha-games/adedonha/internal/database/user/model"
	"github.com/adedonha-games/adedonha/internal/strpool"
	"github.com/enescakir/emoji"
)

func renderLobby(mode game.Mode, players []game.PlayerInfo) string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	buf.WriteString(emoji.Fire.String())
	buf.WriteString(" *")
	buf.WriteString(mode.String())
	buf.WriteString("* game lobby\n\n")
	for i, player := range players {
		buf.WriteString(strconv.Itoa(i + 1))
		buf.WriteString(". ")
		buf.WriteString(player.Name)
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
	buf.WriteString(emoji.VideoGame.String())
	buf.WriteString(" Press the button to join")

	return buf.String()
}

func renderRoundAnnounce(ev game.RoundAnnounce) string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	buf.WriteString(emoji.GameDie.String())
	buf.WriteString(" Round ")
	buf.WriteString(strconv.Itoa(ev.Number))
	buf.WriteString("/")
	buf.WriteString(strconv.Itoa(ev.Total))
	buf.WriteString(" — letter *")
	buf.WriteString(string(ev.Letter))
	buf.WriteString("*\n\n")
	for _, category := range ev.Categories {
		buf.WriteString(category)
		buf.WriteString(": \n")
	}
	buf.WriteString("\n")
	buf.WriteString(emoji.Pencil.String())
	buf.WriteString(" Reply with one answer per line")
	if ev.HardStop > 0 {
		buf.WriteString(", ")
		buf.WriteString(ev.HardStop.String())
		buf.WriteString(" on the clock")
	}

	return buf.String()
}

func renderRoundResult(ev game.RoundResult) string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	buf.WriteString(emoji.ChequeredFlag.String())
	buf.WriteString(" Round ")
	buf.WriteString(strconv.Itoa(ev.Number))
	buf.WriteString(" scored\n\n")
	for _, player := range ev.Standings {
		buf.WriteString(player.Name)
		buf.WriteString(": +")
		buf.WriteString(strconv.Itoa(ev.Points[player.ID]))
		buf.WriteString(" (")
		buf.WriteString(strconv.Itoa(player.Score))
		buf.WriteString(" total)\n")
	}

	return buf.String()
}

func renderStandings(standings []game.PlayerInfo) string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	buf.WriteString(emoji.Trophy.String())
	buf.WriteString(" *Game over!*\n\n")
	for i, player := range standings {
		switch i {
		case 0:
			buf.WriteString(emoji.FirstPlaceMedal.String())
		case 1:
			buf.WriteString(emoji.SecondPlaceMedal.String())
		case 2:
			buf.WriteString(emoji.ThirdPlaceMedal.String())
		default:
			buf.WriteString(strconv.Itoa(i + 1))
			buf.WriteString(".")
		}
		buf.WriteString(" ")
		buf.WriteString(player.Name)
		buf.WriteString(" — ")
		buf.WriteString(strconv.Itoa(player.Score))
		buf.WriteString("\n")
	}

	return buf.String()
}

func renderManualValidation(ev game.ManualValidation) string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	names := make(map[int64]string, len(ev.Players))
	for _, player := range ev.Players {
		names[player.ID] = player.Name
	}

	buf.WriteString(emoji.Warning.String())
	buf.WriteString(" The answer checker is unavailable. An admin has to review round ")
	buf.WriteString(strconv.Itoa(ev.Number))
	buf.WriteString(" (letter *")
	buf.WriteString(string(ev.Letter))
	buf.WriteString("*)\n")
	for _, player := range ev.Players {
		answers, ok := ev.Answers[player.ID]
		if !ok {
			continue
		}
		buf.WriteString("\n*")
		buf.WriteString(player.Name)
		buf.WriteString("*\n")
		for i, category := range ev.Categories {
			buf.WriteString(category)
			buf.WriteString(": ")
			if i < len(answers) {
				buf.WriteString(answers[i])
			}
			buf.WriteString("\n")
		}
	}

	return buf.String()
}

func renderFirstSubmitter(player game.PlayerInfo, window time.Duration) string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	buf.WriteString(emoji.HighVoltage.String())
	buf.WriteString(" *")
	buf.WriteString(player.Name)
	buf.WriteString("* is done! Everyone else has ")
	buf.WriteString(window.String())

	return buf.String()
}

func renderProfile(u userModel.User, profile statModel.Profile) string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	buf.WriteString(emoji.Alien.String())
	buf.WriteString(" Player profile *")
	buf.WriteString(u.FirstName)
	buf.WriteString("*\n\n")
	buf.WriteString(emoji.VideoGame.String())
	buf.WriteString(" Games played: ")
	buf.WriteString(strconv.Itoa(profile.GamesPlayed))
	buf.WriteString("\n")
	buf.WriteString(emoji.Star.String())
	buf.WriteString(" Games won: ")
	buf.WriteString(strconv.Itoa(profile.GamesWon))
	buf.WriteString("\n")
	buf.WriteString(emoji.HundredPoints.String())
	buf.WriteString(" Best game: ")
	buf.WriteString(strconv.Itoa(profile.BestPoints))
	buf.WriteString("\n")
	buf.WriteString(emoji.CheckMarkButton.String())
	buf.WriteString(" Validated words: ")
	buf.WriteString(strconv.Itoa(profile.ValidatedWords))
	buf.WriteString("\n")
	buf.WriteString(emoji.Pencil.String())
	buf.WriteString(" Answer lists sent: ")
	buf.WriteString(strconv.Itoa(profile.WordlistsSent))

	return buf.String()
}
