package game

import "context"

// BatchItem is one (category, answer) pair submitted to the oracle.
type BatchItem struct {
	Category string
	Answer   string
}

// Oracle judges whether answers genuinely belong to their categories.
// The response maps the index in items to a verdict; indices absent from
// the map are treated as unresolved by the caller.
type Oracle interface {
	ValidateBatch(ctx context.Context, letter rune, items []BatchItem) (map[int]bool, error)
}
