package model

import (
	"time"

	"github.com/google/uuid"
)

// Counters are the additive per-player totals updated at round and game
// boundaries. All updates are plain increments so retries stay safe.
type Counters struct {
	UserID         int64     `json:"userID"`
	GamesPlayed    int       `json:"gamesPlayed"`
	ValidatedWords int       `json:"validatedWords"`
	WordlistsSent  int       `json:"wordlistsSent"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func NewGameRecord(userID int64) GameRecord {
	return GameRecord{ID: uuid.New(), UserID: userID, CreatedAt: time.Now()}
}

// GameRecord is an append-only snapshot of one finished game for one player.
type GameRecord struct {
	ID         uuid.UUID `json:"-"`
	UserID     int64     `json:"userID"`
	Points     int       `json:"points"`
	Mode       string    `json:"mode"`
	RoundsNum  int       `json:"roundsNum"`
	PlayersNum int       `json:"playersNum"`
	Winner     bool      `json:"winner"`
	Categories []string  `json:"categories"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Profile aggregates counters and game records for display.
type Profile struct {
	Counters
	GamesWon   int
	BestPoints int
}
