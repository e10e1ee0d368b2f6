package adedonhabot

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/adedonha-games/adedonha/internal/adedonhabot/game"
	statDb "github.com/adedonha-games/adedonha/internal/database/stat/database"
	userDb "github.com/adedonha-games/adedonha/internal/database/user/database"
	userModel "github.com/adedonha-games/adedonha/internal/database/user/model"
	"github.com/adedonha-games/adedonha/internal/logging"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

var ErrCommandNotFound = fmt.Errorf("command not found")

func NewManager(tg *tgbotapi.BotAPI, config *Config, userDb *userDb.DB, statDb *statDb.DB, oracle game.Oracle) *manager {
	return &manager{
		tg:       tg,
		config:   config,
		registry: game.NewRegistry(),
		gateway:  newTgGateway(tg),
		stats:    newStatStore(statDb),
		oracle:   oracle,
		userDb:   userDb,
		statDb:   statDb,
	}
}

type manager struct {
	tg     *tgbotapi.BotAPI
	config *Config

	// one live room per chat
	registry *game.Registry
	gateway  *tgGateway
	stats    game.StatStore
	oracle   game.Oracle

	userDb *userDb.DB
	statDb *statDb.DB

	cancel     func()
	ctxSess    context.Context
	cancelSess func()
}

func (m *manager) Stop() {
	m.cancel()
}

func (m *manager) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.ctxSess, m.cancelSess = context.WithCancel(
		logging.WithLogger(context.Background(), logging.FromContext(ctx)),
	)

	upd := tgbotapi.NewUpdate(0)
	upd.Timeout = int(m.config.TgBotPollTimeout.Seconds())
	updates, err := m.tg.GetUpdatesChan(upd)
	if err != nil {
		return fmt.Errorf("tg get updates chan: %v", err)
	}

	wg := &sync.WaitGroup{}
	poolWorkerNum := runtime.NumCPU()
	wg.Add(poolWorkerNum)

	for i := 0; i < poolWorkerNum; i++ {
		go m.pool(ctx, wg, updates)
	}

	wg.Wait()
	m.cancelSess()
	return nil
}

func (m *manager) pool(ctx context.Context, wg *sync.WaitGroup, updCh tgbotapi.UpdatesChannel) {
	defer wg.Done()
	logger := logging.FromContext(ctx).Named("manager.pool")
	for {
		select {
		case update := <-updCh:
			u, err := m.recvUser(update)
			if err != nil {
				if !errors.Is(err, ErrCommandNotFound) {
					logger.Errorf("recv user: %v", err)
				}
				continue
			}
			if update.Message != nil {
				if err := m.handleMessage(u, update); err != nil {
					logger.Errorf("handle message: %v", err)
				}
			}
			if update.CallbackQuery != nil {
				if err := m.handleCallbackQuery(u, update); err != nil {
					logger.Errorf("handle callback query: %v", err)
				}
			}
		case <-ctx.Done():
			// shutdown
			return
		}
	}
}

func (m *manager) session(chatID int64) (*game.Session, bool) {
	return m.registry.Get(chatID)
}

func (m *manager) isChatAdmin(chatID int64, u userModel.User) bool {
	if u.Owner {
		return true
	}

	member, err := m.tg.GetChatMember(tgbotapi.ChatConfigWithUser{ChatID: chatID, UserID: int(u.ID)})
	if err != nil {
		return false
	}

	return member.IsCreator() || member.IsAdministrator()
}

func (m *manager) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := m.tg.Send(msg); err != nil {
		return fmt.Errorf("send msg: %v", err)
	}
	return nil
}

func (m *manager) recvUser(upd tgbotapi.Update) (userModel.User, error) {
	var tgUser *tgbotapi.User
	var u userModel.User
	switch {
	case upd.CallbackQuery != nil:
		tgUser = upd.CallbackQuery.From
	case upd.Message != nil:
		tgUser = upd.Message.From
	default:
		return u, ErrCommandNotFound
	}

	u, err := m.userDb.Fetch(int64(tgUser.ID))
	if err != nil {
		if !errors.Is(err, userDb.ErrNotFound) {
			return u, fmt.Errorf("userdb fetch: %v", err)
		}

		username := strings.TrimPrefix(tgUser.UserName, "@")
		newUser := userModel.User{
			ID:           int64(tgUser.ID),
			FirstName:    tgUser.FirstName,
			LastName:     tgUser.LastName,
			LanguageCode: tgUser.LanguageCode,
			Username:     tgUser.UserName,
			Owner:        m.config.Owner != "" && strings.EqualFold(username, m.config.Owner),
			CreatedAt:    time.Now(),
		}

		if err := m.userDb.Store(newUser); err != nil {
			return u, fmt.Errorf("userdb store: %v", err)
		}
		u = newUser
	}

	return u, nil
}
