package adedonhabot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adedonha-games/adedonha/internal/adedonhabot/game"
	"github.com/adedonha-games/adedonha/internal/adedonhabot/resource"
	userModel "github.com/adedonha-games/adedonha/internal/database/user/model"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (m *manager) handleCallbackQuery(u userModel.User, upd tgbotapi.Update) error {
	query := upd.CallbackQuery
	if query.Message == nil {
		return nil
	}

	chatID := query.Message.Chat.ID
	session, ok := m.session(chatID)
	if !ok {
		return m.answerCallback(query.ID, resource.TextRoomNotFoundMsg)
	}

	var err error
	data := query.Data

	switch {
	case data == resource.JoinLobbyData:
		err = session.Join(u.ID, u.FirstName)
	case data == resource.StartGameData:
		err = session.Start(u.ID, m.isChatAdmin(chatID, u))
	case data == resource.CancelGameData:
		err = session.Cancel(u.ID, m.isChatAdmin(chatID, u))
	case data == resource.ApproveAllData:
		err = session.Decide(game.AdminDecision{Action: game.DecisionApproveAll}, m.isChatAdmin(chatID, u))
	case data == resource.RejectAllData:
		err = session.Decide(game.AdminDecision{Action: game.DecisionRejectAll}, m.isChatAdmin(chatID, u))
	case strings.HasPrefix(data, resource.ApprovePrefix):
		err = m.decidePlayer(session, chatID, u, game.DecisionApprovePlayer, strings.TrimPrefix(data, resource.ApprovePrefix))
	case strings.HasPrefix(data, resource.RejectPrefix):
		err = m.decidePlayer(session, chatID, u, game.DecisionRejectPlayer, strings.TrimPrefix(data, resource.RejectPrefix))
	default:
		return m.answerCallback(query.ID, "")
	}

	return m.answerCallback(query.ID, verdictText(err))
}

func (m *manager) decidePlayer(
	session *game.Session,
	chatID int64,
	u userModel.User,
	action game.DecisionAction,
	suffix string,
) error {
	targetID, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return fmt.Errorf("parse target id: %v", err)
	}

	return session.Decide(
		game.AdminDecision{Action: action, TargetID: targetID},
		m.isChatAdmin(chatID, u),
	)
}

func (m *manager) answerCallback(queryID, text string) error {
	if _, err := m.tg.AnswerCallbackQuery(tgbotapi.NewCallback(queryID, text)); err != nil {
		return fmt.Errorf("answer callback: %v", err)
	}
	return nil
}
