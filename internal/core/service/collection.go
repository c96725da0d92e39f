package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/rl1809/invstrar/internal/port"
)

// Options are shared by every entity service.
type Options struct {
	// LowStockThreshold applies to items without a reorder point.
	LowStockThreshold int
	// SampleData makes reads of an absent key return built-in sample records.
	SampleData bool
}

// collection is the read-modify-write helper over one storage key holding a
// JSON array. Defaults are returned for an absent key but never written back
// by a read.
type collection[T any] struct {
	store    port.KeyValueStore
	key      string
	idOf     func(T) string
	defaults func() []T

	mu sync.Mutex
}

func newCollection[T any](store port.KeyValueStore, key string, idOf func(T) string, defaults func() []T, opts Options) *collection[T] {
	c := &collection[T]{store: store, key: key, idOf: idOf}
	if opts.SampleData {
		c.defaults = defaults
	}
	return c
}

func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	raw, found, err := c.store.GetItem(ctx, c.key)
	if err != nil {
		log.Printf("storage: failed to read %s: %v", c.key, err)
		return nil, fmt.Errorf("read %s: %w", c.key, err)
	}
	if !found {
		if c.defaults == nil {
			return []T{}, nil
		}
		return c.defaults(), nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("storage: failed to decode %s: %v", c.key, err)
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *collection[T]) save(ctx context.Context, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.SetItem(ctx, c.key, string(raw)); err != nil {
		log.Printf("storage: failed to write %s: %v", c.key, err)
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	return nil
}

func (c *collection[T]) list(ctx context.Context) ([]T, error) {
	return c.load(ctx)
}

func (c *collection[T]) find(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	for _, item := range items {
		if c.idOf(item) == id {
			return item, nil
		}
	}
	return zero, fmt.Errorf("%s %s: %w", c.key, id, ErrNotFound)
}

func (c *collection[T]) filter(ctx context.Context, keep func(T) bool) ([]T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (c *collection[T]) add(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	return c.save(ctx, append(items, item))
}

// update applies fn to the record with id in place. fn may reject the change.
func (c *collection[T]) update(ctx context.Context, id string, fn func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	items, err := c.load(ctx)
	if err != nil {
		return zero, err
	}

	for i := range items {
		if c.idOf(items[i]) != id {
			continue
		}
		if err := fn(&items[i]); err != nil {
			return zero, err
		}
		if err := c.save(ctx, items); err != nil {
			return zero, err
		}
		return items[i], nil
	}

	return zero, fmt.Errorf("%s %s: %w", c.key, id, ErrNotFound)
}

// remove reports false without error when id is unknown.
func (c *collection[T]) remove(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]T, 0, len(items))
	for _, item := range items {
		if c.idOf(item) != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}

	return true, c.save(ctx, kept)
}

// matches reports whether any field contains query, ignoring case.
// An empty query matches everything.
func matches(query string, fields ...string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
