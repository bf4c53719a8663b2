package badger

import (
	"fmt"
	"sync"

	"github.com/timshannon/badgerhold/v4"
)

// ordinalCounter is a persisted per-collection counter used to assign
// insertion ordinals. Persisting it keeps list order stable across
// restarts even after deletions.
type ordinalCounter struct {
	Name string `badgerhold:"key"`
	Next uint64
}

var counterMu sync.Mutex

// nextOrdinal returns the next insertion ordinal for the named collection.
// Serialized process-wide so concurrent writers never share an ordinal.
func nextOrdinal(store *badgerhold.Store, name string) (uint64, error) {
	counterMu.Lock()
	defer counterMu.Unlock()

	var c ordinalCounter
	err := store.Get(name, &c)
	if err != nil && err != badgerhold.ErrNotFound {
		return 0, fmt.Errorf("failed to read ordinal counter %s: %w", name, err)
	}
	if err == badgerhold.ErrNotFound {
		c = ordinalCounter{Name: name, Next: 1}
	}

	ordinal := c.Next
	c.Next++
	if err := store.Upsert(name, &c); err != nil {
		return 0, fmt.Errorf("failed to advance ordinal counter %s: %w", name, err)
	}
	return ordinal, nil
}
