package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/adedonha-games/adedonha/internal/cache"
	db "github.com/adedonha-games/adedonha/internal/database"
	"github.com/adedonha-games/adedonha/internal/database/stat/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()

	ctx := context.Background()
	sDB, err := db.NewFromEnv(ctx, &db.Config{
		FilePath: filepath.Join(t.TempDir(), "stat-test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sDB.Close(ctx)
	})

	lru, err := cache.NewLRU(16)
	require.NoError(t, err)

	return New(sDB, lru)
}

func TestStatCounters(t *testing.T) {
	statDb := testDB(t)

	_, err := statDb.FetchProfile(1)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, statDb.IncrementGamesPlayed([]int64{1, 2}))
	require.NoError(t, statDb.IncrementGamesPlayed([]int64{1}))

	profile, err := statDb.FetchProfile(1)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.GamesPlayed)

	profile, err = statDb.FetchProfile(2)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.GamesPlayed)
}

func TestStatRoundIncrements(t *testing.T) {
	statDb := testDB(t)

	require.NoError(t, statDb.IncrementRoundStats(1, 3, true))
	require.NoError(t, statDb.IncrementRoundStats(1, 2, true))

	// a round without a submission changes nothing
	require.NoError(t, statDb.IncrementRoundStats(1, 0, false))

	profile, err := statDb.FetchProfile(1)
	require.NoError(t, err)
	assert.Equal(t, 5, profile.ValidatedWords)
	assert.Equal(t, 2, profile.WordlistsSent)
}

func TestStatGameRecords(t *testing.T) {
	statDb := testDB(t)

	first := model.NewGameRecord(1)
	first.Points = 40
	first.Winner = true
	first.Mode = "classic"
	require.NoError(t, statDb.AddGameRecord(first))

	second := model.NewGameRecord(1)
	second.Points = 65
	second.Mode = "fast"
	require.NoError(t, statDb.AddGameRecord(second))

	profile, err := statDb.FetchProfile(1)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.GamesWon)
	assert.Equal(t, 65, profile.BestPoints)
}

func TestStatCacheInvalidation(t *testing.T) {
	statDb := testDB(t)

	require.NoError(t, statDb.IncrementGamesPlayed([]int64{1}))

	profile, err := statDb.FetchProfile(1)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.GamesPlayed)

	// the second increment must not serve the cached snapshot
	require.NoError(t, statDb.IncrementGamesPlayed([]int64{1}))

	profile, err = statDb.FetchProfile(1)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.GamesPlayed)
}
