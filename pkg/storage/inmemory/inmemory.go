// Package inmemory provides a map-backed storage driver, used by tests
// and as the default backend when no database is configured.
package inmemory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/papercomputeco/crucible/pkg/element"
	"github.com/papercomputeco/crucible/pkg/storage"
)

// Driver implements storage.Driver using an in-memory map.
type Driver struct {
	// mu guards combos and order.
	mu sync.RWMutex

	// combos maps the forward key to its combination.
	combos map[string]*element.Combination

	// order records forward keys in first-insertion order so prefix
	// scans and listings are deterministic, matching how a database
	// backend returns rows.
	order []string
}

// NewDriver creates a new in-memory storer.
func NewDriver() *Driver {
	return &Driver{
		combos: make(map[string]*element.Combination),
	}
}

// Put stores a combination under its forward key, overwriting any
// record already held at that key.
func (s *Driver) Put(_ context.Context, combo *element.Combination) error {
	if combo == nil {
		return errors.New("cannot store nil combination")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := combo.Key()
	if _, ok := s.combos[key]; !ok {
		s.order = append(s.order, key)
	}
	s.combos[key] = combo

	return nil
}

// Get retrieves a combination by forward key, then by reversed key.
func (s *Driver) Get(_ context.Context, element1, element2 string) (*element.Combination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if combo, ok := s.combos[element.Key(element1, element2)]; ok {
		return combo, nil
	}
	if combo, ok := s.combos[element.Key(element2, element1)]; ok {
		return combo, nil
	}

	return nil, storage.ErrNotFound{Key: element.Key(element1, element2)}
}

// ResultPrefix returns all combinations whose result begins with prefix,
// in insertion order.
func (s *Driver) ResultPrefix(_ context.Context, prefix string) ([]*element.Combination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*element.Combination
	for _, key := range s.order {
		if combo := s.combos[key]; strings.HasPrefix(combo.Result, prefix) {
			matches = append(matches, combo)
		}
	}

	return matches, nil
}

// List returns all combinations in insertion order.
func (s *Driver) List(_ context.Context) ([]*element.Combination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	combos := make([]*element.Combination, 0, len(s.order))
	for _, key := range s.order {
		combos = append(combos, s.combos[key])
	}

	return combos, nil
}

// Count returns the number of stored combinations.
func (s *Driver) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.combos), nil
}

// Close is a no-op for the in-memory storer.
func (s *Driver) Close() error {
	return nil
}

var _ storage.Driver = (*Driver)(nil)
