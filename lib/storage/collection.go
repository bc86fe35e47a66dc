package storage

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
)

// Record is anything stored in a collection; ids are unique within a key
type Record interface {
	GetID() string
}

// Ordered records carry a per-parent display order
type Ordered interface {
	GetOrder() int
}

var errNotArray = errors.New("stored value is not a JSON array")

// ErrInvalidFields is returned by Update when a field cannot be decoded into
// the record type, e.g. a string where a number belongs.
var ErrInvalidFields = errors.New("invalid field value")

// Collection is a typed JSON array stored under one key.
//
// Every mutation reads the whole array, changes it and writes the whole array
// back. There is no locking: two writers racing on the same key resolve as
// last-writer-wins.
//
// All, Save and the mutators never return storage errors. Failures are logged
// and treated as "no data" or "write skipped". Load is the strict variant.
type Collection[T Record] struct {
	store Store
	key   string
	now   func() time.Time
}

// NewCollection binds a record type to a storage key
func NewCollection[T Record](store Store, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key, now: time.Now}
}

// Key returns the storage key of the collection
func (c *Collection[T]) Key() string {
	return c.key
}

// Load reads and decodes the whole collection, reporting any failure
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}

	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errNotArray
	}

	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// All returns every record, or an empty slice when the value is absent or unreadable
func (c *Collection[T]) All(ctx context.Context) []T {
	items, err := c.Load(ctx)
	if err != nil {
		zap.L().Error("Error reading collection", zap.String("key", c.key), zap.Error(err))
		return []T{}
	}
	return items
}

// Save replaces the whole collection. A failed write is logged and skipped.
func (c *Collection[T]) Save(ctx context.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		zap.L().Error("Error encoding collection", zap.String("key", c.key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, c.key, string(data)); err != nil {
		zap.L().Error("Error saving collection", zap.String("key", c.key), zap.Error(err))
	}
}

// Add appends a record and persists the collection
func (c *Collection[T]) Add(ctx context.Context, item T) {
	all := c.All(ctx)
	all = append(all, item)
	c.Save(ctx, all)
}

// FindByID returns the record with the given id
func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, bool) {
	for _, item := range c.All(ctx) {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the records matching pred, in stored order
func (c *Collection[T]) Filter(ctx context.Context, pred func(T) bool) []T {
	result := make([]T, 0)
	for _, item := range c.All(ctx) {
		if pred(item) {
			result = append(result, item)
		}
	}
	return result
}

// Update overlays fields on the record with the given id, stamps updated_at
// and persists. An unknown id is a no-op and reports false. Fields that do
// not decode leave the record untouched and return ErrInvalidFields.
func (c *Collection[T]) Update(ctx context.Context, id string, fields map[string]any) (T, bool, error) {
	var zero T
	all := c.All(ctx)
	index := slices.IndexFunc(all, func(item T) bool { return item.GetID() == id })
	if index == -1 {
		return zero, false, nil
	}

	merged, err := mergeFields(all[index], fields, c.now())
	if err != nil {
		return zero, true, fmt.Errorf("%w: %v", ErrInvalidFields, err)
	}

	all[index] = merged
	c.Save(ctx, all)
	return merged, true, nil
}

// Delete removes the record with the given id and persists
func (c *Collection[T]) Delete(ctx context.Context, id string) {
	c.DeleteWhere(ctx, func(item T) bool { return item.GetID() == id })
}

// DeleteWhere removes every record matching pred and reports how many went
func (c *Collection[T]) DeleteWhere(ctx context.Context, pred func(T) bool) int {
	all := c.All(ctx)
	kept := slices.DeleteFunc(slices.Clone(all), pred)
	c.Save(ctx, kept)
	return len(all) - len(kept)
}

// mergeFields is a shallow JSON merge: top-level keys in fields replace the
// record's keys, everything else is kept.
func mergeFields[T any](existing T, fields map[string]any, now time.Time) (T, error) {
	var merged T

	raw, err := json.Marshal(existing)
	if err != nil {
		return merged, err
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	values := make(map[string]any)
	if err := decoder.Decode(&values); err != nil {
		return merged, err
	}

	for k, v := range fields {
		values[k] = v
	}
	values["updated_at"] = now.UTC().Format(time.RFC3339Nano)

	raw, err = json.Marshal(values)
	if err != nil {
		return merged, err
	}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return merged, err
	}
	return merged, nil
}

// SortByOrder sorts records ascending by their order, keeping ties stable
func SortByOrder[T Ordered](items []T) []T {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(a.GetOrder(), b.GetOrder())
	})
	return items
}

// NextOrder returns 1 for no siblings, otherwise the highest order plus one.
// Gaps left by deletes are not reused.
func NextOrder[T Ordered](siblings []T) int {
	if len(siblings) == 0 {
		return 1
	}
	highest := siblings[0].GetOrder()
	for _, s := range siblings[1:] {
		highest = max(highest, s.GetOrder())
	}
	return highest + 1
}
