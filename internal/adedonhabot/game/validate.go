package game

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/adedonha-games/adedonha/internal/logging"
	"golang.org/x/sync/errgroup"
)

type FailPolicy uint8

const (
	// FailManual suspends automatic scoring on oracle outage and waits
	// for an admin decision.
	FailManual FailPolicy = iota
	// FailPermissive accepts every answer surviving the letter pre-filter
	// when the oracle is down. Opt-in only.
	FailPermissive
)

type ValidationConfig struct {
	Retries int
	Backoff time.Duration
	Policy  FailPolicy
}

func (c *ValidationConfig) normalize() {
	if c.Retries == 0 {
		c.Retries = 2
	}
	if c.Backoff == 0 {
		c.Backoff = 500 * time.Millisecond
	}
}

func NewCoordinator(oracle Oracle, config ValidationConfig) *Coordinator {
	config.normalize()
	return &Coordinator{oracle: oracle, config: config}
}

// Coordinator turns raw per-player answers into per-slot verdicts. It
// applies the local letter check, batches the remaining slots into one
// oracle request per player, and normalizes oracle failures into either
// the permissive policy or ErrOracleUnavailable (manual mode).
type Coordinator struct {
	oracle Oracle
	config ValidationConfig
}

// Prefilter applies the local check: an answer must be non-empty and
// start with the round letter, case-insensitively. Slots failing it are
// invalid and the oracle is never consulted for them.
func Prefilter(letter rune, answers []string) []bool {
	record := make([]bool, len(answers))
	for i, answer := range answers {
		record[i] = startsWithLetter(answer, letter)
	}
	return record
}

func startsWithLetter(answer string, letter rune) bool {
	if answer == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(answer)
	return unicode.ToUpper(first) == unicode.ToUpper(letter)
}

// Validate judges every player's answers for one round, one oracle batch
// per player running concurrently. The returned records always have
// len(categories) entries per player. A whole-round oracle outage yields
// ErrOracleUnavailable under FailManual.
func (c *Coordinator) Validate(
	ctx context.Context,
	letter rune,
	categories []string,
	answers map[int64][]string,
) (map[int64][]bool, error) {
	var mtx sync.Mutex
	records := make(map[int64][]bool, len(answers))

	g, ctx := errgroup.WithContext(ctx)
	for playerID, list := range answers {
		playerID, list := playerID, list
		g.Go(func() error {
			record := Prefilter(letter, list)

			var items []BatchItem
			var slots []int
			for idx, ok := range record {
				if !ok || idx >= len(categories) {
					continue
				}
				items = append(items, BatchItem{Category: categories[idx], Answer: list[idx]})
				slots = append(slots, idx)
			}

			if len(items) > 0 {
				verdicts, err := c.validateBatch(ctx, letter, items)
				if err != nil {
					if c.config.Policy != FailPermissive {
						return fmt.Errorf("validate batch for player %d: %w", playerID, ErrOracleUnavailable)
					}
					logging.FromContext(ctx).Named("game.validate").
						Warnf("oracle unavailable, permissive accept for player %d: %v", playerID, err)
				} else {
					// unresolved slots stay invalid: a false negative costs one
					// player points, a false positive corrupts uniqueness for everyone
					for i, idx := range slots {
						record[idx] = verdicts[i]
					}
				}
			}

			mtx.Lock()
			records[playerID] = record
			mtx.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

func (c *Coordinator) validateBatch(ctx context.Context, letter rune, items []BatchItem) (map[int]bool, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.Retries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, c.config.Backoff); err != nil {
				return nil, err
			}
		}

		verdicts, err := c.oracle.ValidateBatch(ctx, letter, items)
		if err != nil {
			lastErr = err
			continue
		}

		return verdicts, nil
	}

	return nil, lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
