package data

import (
	"context"
	"errors"

	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
)

// ErrNotFound is returned by Get for an ASIN that was never stored
var ErrNotFound = errors.New("amazon item not found")

// Store persists normalized items keyed by ASIN. Save replaces any previous
// record for the ASIN, child rows included.
type Store interface {
	Save(ctx context.Context, item *types.ProductItem) error
	Get(ctx context.Context, asin string) (*types.ProductItem, error)
	// MarkInvalid flags a stored item. It reports false, and creates
	// nothing, when the ASIN has no record.
	MarkInvalid(ctx context.Context, asin string) (bool, error)
	Delete(ctx context.Context, asin string) error
}
