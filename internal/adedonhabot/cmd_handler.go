package adedonhabot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adedonha-games/adedonha/internal/adedonhabot/game"
	"github.com/adedonha-games/adedonha/internal/adedonhabot/resource"
	statDb "github.com/adedonha-games/adedonha/internal/database/stat/database"
	userModel "github.com/adedonha-games/adedonha/internal/database/user/model"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (m *manager) handleMessage(u userModel.User, upd tgbotapi.Update) error {
	msg := upd.Message

	if !msg.IsCommand() {
		return m.trySubmission(u, msg)
	}

	isGroup := msg.Chat.IsGroup() || msg.Chat.IsSuperGroup()

	switch msg.Command() {
	case resource.CmdStart:
		return m.send(msg.Chat.ID, fmt.Sprintf(resource.TextGreetingMsg, u.FirstName))
	case resource.CmdRules:
		return m.send(msg.Chat.ID, resource.TextRulesMsg)
	case resource.CmdMyStats:
		return m.handleMyStats(u, msg.Chat.ID)
	case resource.CmdClassic:
		return m.handleCreateLobby(u, msg, isGroup, game.ModeClassic, nil)
	case resource.CmdFast:
		categories, ok := parseFastCategories(msg.CommandArguments())
		if !ok {
			return m.send(msg.Chat.ID, resource.TextFastUsageMsg)
		}
		return m.handleCreateLobby(u, msg, isGroup, game.ModeFast, categories)
	case resource.CmdCustom:
		return m.handleCreateLobby(u, msg, isGroup, game.ModeCustom, parseCategoryPool(msg.CommandArguments()))
	case resource.CmdJoin:
		return m.handleJoin(u, msg)
	case resource.CmdBegin:
		return m.handleBegin(u, msg)
	case resource.CmdCancelGame:
		return m.handleCancelGame(u, msg)
	default:
		return nil
	}
}

// parseFastCategories reads "/fastadedonha Name Object Animal" into the
// fixed three-category list for a fast game. Fewer than three arguments
// rejects the command; extras beyond the first three are ignored.
func parseFastCategories(args string) ([]string, bool) {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		return nil, false
	}
	return fields[:3], true
}

// parseCategoryPool reads "/customadedonha Fruit, Color, City" into the
// custom pool; an empty argument falls back to the full default pool.
func parseCategoryPool(args string) []string {
	var pool []string
	for _, part := range strings.Split(args, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pool = append(pool, part)
	}

	if len(pool) == 0 {
		pool = make([]string, len(game.AllCategories))
		copy(pool, game.AllCategories)
	}

	return pool
}

func (m *manager) handleCreateLobby(
	u userModel.User,
	msg *tgbotapi.Message,
	isGroup bool,
	mode game.Mode,
	categories []string,
) error {
	if !isGroup {
		return m.send(msg.Chat.ID, resource.TextGroupOnlyMsg)
	}

	policy := game.FailManual
	if m.config.OracleFailPermissive {
		policy = game.FailPermissive
	}

	session, err := m.registry.CreateLobby(game.Config{
		RoomID:      msg.Chat.ID,
		Mode:        mode,
		CreatorID:   u.ID,
		CreatorName: u.FirstName,
		Categories:  categories,
		Gateway:     m.gateway,
		Oracle:      m.oracle,
		Stats:       m.stats,
		Validation: game.ValidationConfig{
			Retries: m.config.OracleRetries,
			Backoff: m.config.OracleBackoff,
			Policy:  policy,
		},
	})
	if err != nil {
		if errors.Is(err, game.ErrRoomExists) {
			return m.send(msg.Chat.ID, resource.TextLobbyExistsMsg)
		}
		return fmt.Errorf("create lobby: %v", err)
	}

	session.Run(m.ctxSess)

	reply := tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf(resource.TextLobbyCreatedMsg, u.FirstName, mode))
	reply.ParseMode = tgbotapi.ModeMarkdown
	reply.ReplyMarkup = resource.LobbyKeyboard
	if _, err := m.tg.Send(reply); err != nil {
		return fmt.Errorf("send msg: %v", err)
	}

	return nil
}

func (m *manager) handleJoin(u userModel.User, msg *tgbotapi.Message) error {
	session, ok := m.session(msg.Chat.ID)
	if !ok {
		return m.send(msg.Chat.ID, resource.TextRoomNotFoundMsg)
	}

	if text := verdictText(session.Join(u.ID, u.FirstName)); text != "" {
		return m.send(msg.Chat.ID, text)
	}

	return nil
}

func (m *manager) handleBegin(u userModel.User, msg *tgbotapi.Message) error {
	session, ok := m.session(msg.Chat.ID)
	if !ok {
		return m.send(msg.Chat.ID, resource.TextRoomNotFoundMsg)
	}

	if text := verdictText(session.Start(u.ID, m.isChatAdmin(msg.Chat.ID, u))); text != "" {
		return m.send(msg.Chat.ID, text)
	}

	return nil
}

func (m *manager) handleCancelGame(u userModel.User, msg *tgbotapi.Message) error {
	session, ok := m.session(msg.Chat.ID)
	if !ok {
		return m.send(msg.Chat.ID, resource.TextRoomNotFoundMsg)
	}

	if text := verdictText(session.Cancel(u.ID, m.isChatAdmin(msg.Chat.ID, u))); text != "" {
		return m.send(msg.Chat.ID, text)
	}

	return nil
}

func (m *manager) handleMyStats(u userModel.User, chatID int64) error {
	profile, err := m.statDb.FetchProfile(u.ID)
	if err != nil {
		if errors.Is(err, statDb.ErrNotFound) {
			return m.send(chatID, resource.TextStatsNotFoundMsg)
		}
		return fmt.Errorf("fetch profile: %v", err)
	}

	return m.send(chatID, renderProfile(u, profile))
}

// trySubmission treats a plain chat message as an answer list when it is
// shaped like one. Conversation in the chat during a round must never be
// swallowed, so every expected answer needs a line carrying a label or
// an ordinal before the message counts.
func (m *manager) trySubmission(u userModel.User, msg *tgbotapi.Message) error {
	session, ok := m.session(msg.Chat.ID)
	if !ok || session.State() != game.StateKindRunning {
		return nil
	}

	if !game.LooksLikeSubmission(msg.Text, session.RoundSize()) {
		return nil
	}

	err := session.Submit(u.ID, msg.Text)
	switch {
	case err == nil, errors.Is(err, game.ErrNoActiveRound), errors.Is(err, game.ErrRoomClosed):
		return nil
	case errors.Is(err, game.ErrAlreadySubmit):
		return m.send(msg.Chat.ID, resource.TextAlreadySubmitMsg)
	case errors.Is(err, game.ErrRoundClosed):
		return m.send(msg.Chat.ID, resource.TextRoundClosedMsg)
	case errors.Is(err, game.ErrNotJoined):
		return m.send(msg.Chat.ID, resource.TextNotJoinedMsg)
	default:
		return fmt.Errorf("submit: %v", err)
	}
}

// verdictText maps engine errors to user-facing replies; unexpected
// errors map to nothing and are left for the caller's logs.
func verdictText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, game.ErrNotLobby):
		return resource.TextLobbyClosedMsg
	case errors.Is(err, game.ErrLobbyFull):
		return resource.TextLobbyFullMsg
	case errors.Is(err, game.ErrAlreadyJoined):
		return resource.TextAlreadyJoinedMsg
	case errors.Is(err, game.ErrNotJoined):
		return resource.TextNotJoinedMsg
	case errors.Is(err, game.ErrNotAuthorized):
		return resource.TextNotAuthorizedMsg
	case errors.Is(err, game.ErrNoManualReview):
		return resource.TextNoReviewMsg
	case errors.Is(err, game.ErrRoomClosed), errors.Is(err, game.ErrRoomNotFound):
		return resource.TextRoomNotFoundMsg
	default:
		return ""
	}
}
