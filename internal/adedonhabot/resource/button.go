package resource

import (
	"strconv"

	"github.com/enescakir/emoji"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

const (
	JoinLobbyData  = "join_lobby"
	StartGameData  = "start_game"
	CancelGameData = "cancel_game"

	// validation panel callback data, player actions carry the id suffix
	ApproveAllData = "val_approve_all"
	RejectAllData  = "val_reject_all"
	ApprovePrefix  = "val_approve:"
	RejectPrefix   = "val_reject:"
)

var (
	JoinLobbyButton = tgbotapi.NewInlineKeyboardButtonData(
		emoji.VideoGame.String()+" Join", JoinLobbyData,
	)
	StartGameButton = tgbotapi.NewInlineKeyboardButtonData(
		emoji.Rocket.String()+" Start", StartGameData,
	)
	CancelGameButton = tgbotapi.NewInlineKeyboardButtonData(
		emoji.ChequeredFlag.String()+" Cancel", CancelGameData,
	)

	LobbyKeyboard = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(JoinLobbyButton),
		tgbotapi.NewInlineKeyboardRow(StartGameButton, CancelGameButton),
	)
)

// ValidationKeyboard builds the manual review panel: one approve/reject
// row per submitter plus the bulk actions.
func ValidationKeyboard(playerIDs []int64, names map[int64]string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(playerIDs)+1)

	for _, id := range playerIDs {
		suffix := strconv.FormatInt(id, 10)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				emoji.CheckMarkButton.String()+" "+names[id], ApprovePrefix+suffix,
			),
			tgbotapi.NewInlineKeyboardButtonData(
				emoji.CrossMark.String()+" "+names[id], RejectPrefix+suffix,
			),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(emoji.CheckMarkButton.String()+" Approve all", ApproveAllData),
		tgbotapi.NewInlineKeyboardButtonData(emoji.CrossMark.String()+" Reject all", RejectAllData),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
