package game

// GameResult is one player's final line in a finished game.
type GameResult struct {
	PlayerID int64
	Points   int
	Winner   bool
}

type FinishedGame struct {
	RoomID     int64
	Mode       Mode
	Rounds     int
	Categories []string
	Results    []GameResult
}

// StatStore is the durable per-player counter collaborator. All calls are
// additive and safe to retry; the engine never does read-modify-write.
type StatStore interface {
	IncrementGamesPlayed(playerIDs []int64) error
	IncrementRoundStats(playerID int64, validatedCount int, submittedAny bool) error
	RecordFinishedGame(g FinishedGame) error
}
