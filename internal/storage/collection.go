package storage

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
)

// Collection binds a store key to a JSON-encoded slice of T. Load never
// fails: an absent key or undecodable state yields an empty slice, so
// storage corruption is invisible to the user. Corruption is still logged
// for diagnosis.
type Collection[T any] struct {
	store  *Store
	key    string
	logger zerolog.Logger
}

// NewCollection creates a collection persisted under key.
func NewCollection[T any](store *Store, key string, logger zerolog.Logger) *Collection[T] {
	return &Collection[T]{
		store:  store,
		key:    key,
		logger: logger.With().Str("component", "storage").Str("key", key).Logger(),
	}
}

// Load returns the persisted items, or an empty slice when nothing usable is
// stored.
func (c *Collection[T]) Load() []T {
	data, err := c.store.Read(c.key)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to read persisted state, starting empty")
		return []T{}
	}

	if len(data) == 0 {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		c.logger.Warn().Err(err).Msg("discarding undecodable persisted state")
		return []T{}
	}

	return items
}

// Save persists items, replacing any previous state for the key.
func (c *Collection[T]) Save(items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode state for %q: %w", c.key, err)
	}

	return c.store.Write(c.key, data)
}
