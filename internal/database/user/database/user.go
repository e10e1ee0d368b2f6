package database

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adedonha-games/adedonha/internal/byteutil"
	"github.com/adedonha-games/adedonha/internal/cache"
	"github.com/adedonha-games/adedonha/internal/database"
	"github.com/adedonha-games/adedonha/internal/database/user/model"
	bolt "go.etcd.io/bbolt"
)

var ErrNotFound = fmt.Errorf("not found")

const bucket = "users"

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{sDB: db, cache: cache}
}

type DB struct {
	sDB *database.DB

	cache cache.Cache
}

func (db *DB) Fetch(id int64) (model.User, error) {
	var u model.User

	if db.cache != nil {
		if v, ok := db.cache.Get(id); ok {
			return v.(model.User), nil
		}
	}

	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return ErrNotFound
		}

		bytes := b.Get(byteutil.EncodeInt64ToBytes(id))
		if len(bytes) == 0 {
			return ErrNotFound
		}

		if err := json.Unmarshal(bytes, &u); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}

		return nil
	}); err != nil {
		return u, err
	}

	if db.cache != nil {
		db.cache.Add(id, u)
	}

	return u, nil
}

func (db *DB) FetchByUsername(username string) (model.User, error) {
	var u model.User
	username = strings.TrimPrefix(username, "@")

	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return ErrNotFound
		}

		if err := b.ForEach(func(k, v []byte) error {
			var candidate model.User
			if err := json.Unmarshal(v, &candidate); err != nil {
				return fmt.Errorf("unmarshal: %w", err)
			}

			if strings.EqualFold(candidate.Username, username) {
				u = candidate
			}

			return nil
		}); err != nil {
			return fmt.Errorf("bucket for each: %w", err)
		}

		if u.ID == 0 {
			return ErrNotFound
		}

		return nil
	})

	return u, err
}

func (db *DB) Store(u model.User) error {
	bytes, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		if err := b.Put(byteutil.EncodeInt64ToBytes(u.ID), bytes); err != nil {
			return fmt.Errorf("put to bucket: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	if db.cache != nil {
		db.cache.Delete(u.ID)
	}

	return nil
}
