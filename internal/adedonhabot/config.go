package adedonhabot

import (
	"time"

	"github.com/adedonha-games/adedonha/internal/database"
)

type Config struct {
	// Username granted game admin powers in every chat
	Owner string `envconfig:"ADEDONHA_OWNER_USERNAME"`

	// Logging all requests and responses from telegram
	Debug bool `envconfig:"ADEDONHA_DEBUG" default:"false"`

	// Number of items in the user and stat caches
	CacheSize int `envconfig:"ADEDONHA_CACHE_SIZE" default:"1024"`

	// Port on which the health check is launched
	Port string `envconfig:"ADEDONHA_PORT" default:"1234"`

	// profile port
	ProfPort string `envconfig:"ADEDONHA_PROF_PORT" default:"8888"`

	// Telegram bot token
	BotToken string `envconfig:"ADEDONHA_BOT_TOKEN"`

	TgBotPollTimeout time.Duration `envconfig:"ADEDONHA_TG_BOT_POLL_TIMEOUT" default:"60s"`

	// OpenAI answer validation
	OpenAIToken string `envconfig:"ADEDONHA_OPENAI_TOKEN"`
	OpenAIModel string `envconfig:"ADEDONHA_OPENAI_MODEL"`

	// Oracle retry policy before a round falls back
	OracleRetries int           `envconfig:"ADEDONHA_ORACLE_RETRIES" default:"2"`
	OracleBackoff time.Duration `envconfig:"ADEDONHA_ORACLE_BACKOFF" default:"500ms"`

	// Accept pre-filtered answers instead of waiting for an admin when
	// the oracle is down
	OracleFailPermissive bool `envconfig:"ADEDONHA_ORACLE_FAIL_PERMISSIVE" default:"false"`

	Db database.Config
}
