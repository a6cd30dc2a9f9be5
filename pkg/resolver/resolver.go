// Package resolver implements the combination resolution pipeline:
// cache lookup, generation on miss, output cleanup, canonical dedup,
// and persistence.
package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/papercomputeco/crucible/pkg/element"
	"github.com/papercomputeco/crucible/pkg/generate"
	"github.com/papercomputeco/crucible/pkg/storage"
)

// Resolver resolves "what do these two elements combine into" requests.
// It holds no mutable state of its own; the store and generator it is
// constructed with are safe for concurrent use, so a single Resolver
// serves any number of simultaneous requests. Two concurrent misses for
// the same pair may both generate and both write; the later write wins,
// which is an accepted, bounded inconsistency.
type Resolver struct {
	driver    storage.Driver
	generator generate.Generator
	index     *CanonicalIndex
	logger    *slog.Logger
}

// New creates a resolver over the given store and generator.
func New(driver storage.Driver, generator generate.Generator, logger *slog.Logger) *Resolver {
	return &Resolver{
		driver:    driver,
		generator: generator,
		index:     NewCanonicalIndex(driver),
		logger:    logger,
	}
}

// Resolve returns the combination for an ordered pair of element names.
//
// A stored record for either ordering is returned as-is. On a miss the
// generator is called once (no retries), its completion is cleaned, and
// the canonical-name index is consulted: when another pair has already
// produced the same concept, that stored decorated result replaces the
// fresh one. The final result is persisted under the forward key of the
// requested ordering and returned.
//
// A store read failure is treated as a cache miss and logged; a store
// write failure is logged and swallowed, so the resolved result still
// reaches the caller even when it was not persisted. Generation failures
// surface to the caller.
func (r *Resolver) Resolve(ctx context.Context, element1, element2 string) (*element.Combination, error) {
	combo, err := r.driver.Get(ctx, element1, element2)
	if err == nil {
		return combo, nil
	}
	if !storage.IsNotFound(err) {
		// Fail open: a broken store read must not take down the
		// user-facing path.
		r.logger.Warn("combination lookup failed, treating as miss",
			"element1", element1,
			"element2", element2,
			"error", err,
		)
	}

	raw, err := r.generator.Generate(ctx, generate.Prompt(element1, element2))
	if err != nil {
		return nil, fmt.Errorf("generating combination for %q + %q: %w", element1, element2, err)
	}

	result := element.CleanResult(raw)
	if result == "" {
		return nil, fmt.Errorf("generating combination for %q + %q: %w", element1, element2, generate.ErrEmptyCompletion)
	}

	result = r.dedup(ctx, result)

	combo = &element.Combination{
		Element1: element1,
		Element2: element2,
		Result:   result,
	}

	if err := r.driver.Put(ctx, combo); err != nil {
		// Durability traded for availability: the caller still gets
		// the resolved combination.
		r.logger.Error("persisting combination failed",
			"key", combo.Key(),
			"error", err,
		)
	}

	return combo, nil
}

// dedup swaps a freshly generated result for an already stored decorated
// result naming the same concept, if one exists. Index failures count as
// no-match so the fresh result still flows through.
func (r *Resolver) dedup(ctx context.Context, result string) string {
	name := element.Canonicalize(result)

	stored, err := r.index.FindByCanonicalName(ctx, name)
	if err != nil {
		if !storage.IsNotFound(err) {
			r.logger.Warn("canonical dedup lookup failed, keeping fresh result",
				"canonical_name", name,
				"error", err,
			)
		}
		return result
	}

	if stored != result {
		r.logger.Debug("reusing stored decorated result",
			"canonical_name", name,
			"stored", stored,
		)
	}

	return stored
}
