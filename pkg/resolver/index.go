package resolver

import (
	"context"
	"fmt"

	"github.com/papercomputeco/crucible/pkg/element"
	"github.com/papercomputeco/crucible/pkg/storage"
)

// CanonicalIndex finds a previously stored result that names the same
// concept as a given canonical name, regardless of which element pair
// produced it. The generation service is non-deterministic and may pick
// a different decorative symbol for the same concept on different calls;
// this index makes sure the first symbol assigned to a concept is reused
// for every later pairing that resolves to it.
//
// The index is a live query over the store, not a separately maintained
// structure, so it can never go stale.
type CanonicalIndex struct {
	driver storage.Driver
}

// NewCanonicalIndex creates an index over the given store.
func NewCanonicalIndex(driver storage.Driver) *CanonicalIndex {
	return &CanonicalIndex{driver: driver}
}

// FindByCanonicalName returns the full decorated result of the first
// stored combination whose canonicalized result equals name. Candidates
// are narrowed by a result-prefix query (the canonical name is always a
// prefix of its decorated form, symbols being trailing-only) and ties
// break by insertion order. Returns ErrNotFound when no candidate
// matches after canonicalization.
func (i *CanonicalIndex) FindByCanonicalName(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", storage.ErrNotFound{}
	}

	candidates, err := i.driver.ResultPrefix(ctx, name)
	if err != nil {
		return "", fmt.Errorf("querying results with prefix %q: %w", name, err)
	}

	for _, combo := range candidates {
		if element.Canonicalize(combo.Result) == name {
			return combo.Result, nil
		}
	}

	return "", storage.ErrNotFound{Key: name}
}
