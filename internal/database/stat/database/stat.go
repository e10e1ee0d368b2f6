package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/adedonha-games/adedonha/internal/byteutil"
	"github.com/adedonha-games/adedonha/internal/cache"
	"github.com/adedonha-games/adedonha/internal/database"
	"github.com/adedonha-games/adedonha/internal/database/stat/model"
	bolt "go.etcd.io/bbolt"
)

const (
	countersBucket = "stat-counters"
	recordPrefix   = "stat-games"
)

var ErrNotFound = fmt.Errorf("not found")

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{sDB: db, cache: cache}
}

type DB struct {
	sDB *database.DB

	cache cache.Cache
}

func (db *DB) recordsBucket(userID int64) []byte {
	b := make([]byte, len(recordPrefix)+8)
	copy(b, recordPrefix)
	copy(b[len(recordPrefix):], byteutil.EncodeInt64ToBytes(userID))
	return b
}

func (db *DB) cacheKey(userID int64) string {
	return fmt.Sprintf("%s%d", countersBucket, userID)
}

// IncrementGamesPlayed bumps the games-played counter for every listed
// player in one write transaction.
func (db *DB) IncrementGamesPlayed(userIDs []int64) error {
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(countersBucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		for _, userID := range userIDs {
			counters, err := readCounters(b, userID)
			if err != nil {
				return err
			}

			counters.GamesPlayed++
			if err := writeCounters(b, counters); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	for _, userID := range userIDs {
		db.invalidate(userID)
	}

	return nil
}

// IncrementRoundStats bumps the validated-words total and, when the player
// submitted anything at all, the wordlists-sent counter.
func (db *DB) IncrementRoundStats(userID int64, validatedCount int, submittedAny bool) error {
	if !submittedAny {
		return nil
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(countersBucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		counters, err := readCounters(b, userID)
		if err != nil {
			return err
		}

		counters.WordlistsSent++
		counters.ValidatedWords += validatedCount

		return writeCounters(b, counters)
	}); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	db.invalidate(userID)

	return nil
}

// AddGameRecord appends a finished-game snapshot keyed by its uuid.
func (db *DB) AddGameRecord(rec model.GameRecord) error {
	binaryID, err := rec.ID.MarshalBinary()
	if err != nil {
		return fmt.Errorf("uuid binary: %w", err)
	}

	bytes, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(db.recordsBucket(rec.UserID))
		if err != nil {
			return fmt.Errorf("create bucket %d: %w", rec.UserID, err)
		}

		if err := b.Put(binaryID, bytes); err != nil {
			return fmt.Errorf("put to bucket: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	db.invalidate(rec.UserID)

	return nil
}

// FetchProfile assembles the player's counters and game aggregates.
func (db *DB) FetchProfile(userID int64) (model.Profile, error) {
	var profile model.Profile
	profile.UserID = userID

	key := db.cacheKey(userID)
	if db.cache != nil {
		if v, ok := db.cache.Get(key); ok {
			return v.(model.Profile), nil
		}
	}

	found := false
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket([]byte(countersBucket)); b != nil {
			bytes := b.Get(byteutil.EncodeInt64ToBytes(userID))
			if len(bytes) > 0 {
				if err := json.Unmarshal(bytes, &profile.Counters); err != nil {
					return fmt.Errorf("unmarshal counters: %w", err)
				}
				found = true
			}
		}

		b := tx.Bucket(db.recordsBucket(userID))
		if b == nil {
			return nil
		}

		found = true
		return b.ForEach(func(k, v []byte) error {
			var rec model.GameRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal record: %w", err)
			}

			if rec.Winner {
				profile.GamesWon++
			}
			if rec.Points > profile.BestPoints {
				profile.BestPoints = rec.Points
			}

			return nil
		})
	}); err != nil {
		return profile, fmt.Errorf("view transaction: %w", err)
	}

	if !found {
		return profile, ErrNotFound
	}

	if db.cache != nil {
		db.cache.Add(key, profile)
	}

	return profile, nil
}

func (db *DB) invalidate(userID int64) {
	if db.cache != nil {
		db.cache.Delete(db.cacheKey(userID))
	}
}

func readCounters(b *bolt.Bucket, userID int64) (model.Counters, error) {
	counters := model.Counters{UserID: userID}
	bytes := b.Get(byteutil.EncodeInt64ToBytes(userID))
	if len(bytes) > 0 {
		if err := json.Unmarshal(bytes, &counters); err != nil {
			return counters, fmt.Errorf("unmarshal counters: %w", err)
		}
	}

	return counters, nil
}

func writeCounters(b *bolt.Bucket, counters model.Counters) error {
	counters.UpdatedAt = time.Now()
	bytes, err := json.Marshal(counters)
	if err != nil {
		return fmt.Errorf("marshal counters: %w", err)
	}

	if err := b.Put(byteutil.EncodeInt64ToBytes(counters.UserID), bytes); err != nil {
		return fmt.Errorf("put counters: %w", err)
	}

	return nil
}
