package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/adedonha-games/adedonha/internal/adedonhabot"
	"github.com/adedonha-games/adedonha/internal/adedonhabot/oracle"
	"github.com/adedonha-games/adedonha/internal/adedonhabot/resource"
	"github.com/adedonha-games/adedonha/internal/cache"
	"github.com/adedonha-games/adedonha/internal/database"
	statDb "github.com/adedonha-games/adedonha/internal/database/stat/database"
	userdb "github.com/adedonha-games/adedonha/internal/database/user/database"
	"github.com/adedonha-games/adedonha/internal/logging"
	"github.com/adedonha-games/adedonha/internal/server"
	"github.com/adedonha-games/adedonha/internal/shutdown"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	_, _ = fmt.Fprintf(os.Stdout, resource.GreetingCLI, resource.ProjectName, resource.ProjectVersion)

	ctx, done := shutdown.New()
	defer done()
	logger := logging.FromContext(ctx)
	if err := realMain(ctx, done); err != nil {
		logger.Fatalf("main.realMain: %v", err)
	}
}

func realMain(ctx context.Context, done func()) error {
	logger := logging.FromContext(ctx)
	config := adedonhabot.Config{}
	if err := envconfig.Process("", &config); err != nil {
		logger.Fatalf("processing the config: %v", err)
	}

	if config.BotToken == "" {
		return fmt.Errorf(
			"bot token not found, please visit %s to register your bot and get a token",
			resource.BotFatherURL,
		)
	}

	tg, err := tgbotapi.NewBotAPI(config.BotToken)
	if err != nil {
		return fmt.Errorf("bot api: %v", err)
	}

	tg.Debug = config.Debug

	_, _ = fmt.Fprint(os.Stdout, "Authorization in telegram was successful: ", tg.Self.UserName, "\n")

	db, err := database.NewFromEnv(ctx, &config.Db)
	if err != nil {
		return fmt.Errorf("new database from env: %v", err)
	}

	defer db.Close(ctx)

	userCache, err := cache.NewLRU(config.CacheSize)
	if err != nil {
		return fmt.Errorf("can not create lru cache: %v", err)
	}

	statCache, err := cache.NewLRU(config.CacheSize)
	if err != nil {
		return fmt.Errorf("can not create lru cache: %v", err)
	}

	srv, err := server.New(config.Port)
	if err != nil {
		return fmt.Errorf("server.New: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/health", server.HandleHealth(ctx))

	go func() {
		if err := srv.ServeHTTP(ctx, &http.Server{Handler: mux}); err != nil {
			logger.Fatalf("srv.ServeHTTP: %v", err)
			done()
		}
	}()

	go func() {
		if err := http.ListenAndServe(":"+config.ProfPort, nil); err != nil {
			logger.Fatalf("pprof default sever: %v", err)
			done()
		}
	}()

	manager := adedonhabot.NewManager(
		tg,
		&config,
		userdb.New(db, userCache),
		statDb.New(db, statCache),
		oracle.New(config.OpenAIToken, config.OpenAIModel),
	)
	if err := manager.Run(ctx); err != nil {
		return fmt.Errorf("run: %v", err)
	}

	return nil
}
