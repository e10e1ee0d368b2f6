package adedonhabot

import (
	"fmt"

	"github.com/adedonha-games/adedonha/internal/adedonhabot/game"
	statDb "github.com/adedonha-games/adedonha/internal/database/stat/database"
	statModel "github.com/adedonha-games/adedonha/internal/database/stat/model"
)

// statStore adapts the stat database to the engine's collaborator
// interface. Counter updates pass through; a finished game fans out into
// one append-only record per player.
type statStore struct {
	statDb *statDb.DB
}

func newStatStore(db *statDb.DB) *statStore {
	return &statStore{statDb: db}
}

func (s *statStore) IncrementGamesPlayed(userIDs []int64) error {
	return s.statDb.IncrementGamesPlayed(userIDs)
}

func (s *statStore) IncrementRoundStats(userID int64, validatedCount int, submittedAny bool) error {
	return s.statDb.IncrementRoundStats(userID, validatedCount, submittedAny)
}

func (s *statStore) RecordFinishedGame(fin game.FinishedGame) error {
	for _, result := range fin.Results {
		rec := statModel.NewGameRecord(result.PlayerID)
		rec.Points = result.Points
		rec.Mode = fin.Mode.String()
		rec.RoundsNum = fin.Rounds
		rec.PlayersNum = len(fin.Results)
		rec.Winner = result.Winner
		rec.Categories = make([]string, len(fin.Categories))
		copy(rec.Categories, fin.Categories)

		if err := s.statDb.AddGameRecord(rec); err != nil {
			return fmt.Errorf("add game record %d: %v", result.PlayerID, err)
		}
	}

	return nil
}
