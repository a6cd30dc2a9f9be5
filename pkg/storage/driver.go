// Package storage
package storage

import (
	"context"

	"github.com/papercomputeco/crucible/pkg/element"
)

// Driver defines the interface for persisting and retrieving element
// combinations in a storage backend. Combinations are written under the
// forward key of the pair as first requested and are append-only from
// the resolver's perspective: no update or delete is exposed.
type Driver interface {
	// Put stores a combination under its forward key, unconditionally
	// overwriting any record already at that exact key.
	Put(ctx context.Context, combo *element.Combination) error

	// Get looks up the forward key for (element1, element2) and falls
	// back to the reversed key, so retrieval is order-independent even
	// though storage is order-sensitive. Returns ErrNotFound when
	// neither ordering has been resolved.
	Get(ctx context.Context, element1, element2 string) (*element.Combination, error)

	// ResultPrefix returns all combinations whose result begins with
	// prefix, in insertion order. The canonical-name index uses this to
	// narrow its scan to candidates that could share a canonical name.
	ResultPrefix(ctx context.Context, prefix string) ([]*element.Combination, error)

	// List returns all combinations in the store in insertion order.
	List(ctx context.Context) ([]*element.Combination, error)

	// Count returns the number of combinations in the store.
	Count(ctx context.Context) (int, error)

	// Close closes the store and releases any resources.
	Close() error
}
