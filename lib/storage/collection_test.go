package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Order     int       `json:"order"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r testRecord) GetID() string { return r.ID }
func (r testRecord) GetOrder() int { return r.Order }

// failingStore rejects every write and optionally every read
type failingStore struct {
	*MemoryStore
	failReads bool
}

func (s *failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.failReads {
		return "", false, errors.New("disk on fire")
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *failingStore) Set(context.Context, string, string) error {
	return errors.New("quota exceeded")
}

func TestCollection_AllAbsorbsBadValues(t *testing.T) {
	ctx := context.Background()
	cases := map[string]string{
		"object":  `{"id":"a"}`,
		"null":    `null`,
		"garbage": `[{"id":`,
		"number":  `42`,
		"empty":   ``,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			store := NewMemoryStore()
			require.NoError(t, store.Set(ctx, "k", raw))

			coll := NewCollection[testRecord](store, "k")
			items := coll.All(ctx)
			assert.NotNil(t, items)
			assert.Empty(t, items)

			_, err := coll.Load(ctx)
			assert.Error(t, err)
		})
	}
}

func TestCollection_AllOnMissingKeyAndReadFailure(t *testing.T) {
	ctx := context.Background()

	coll := NewCollection[testRecord](NewMemoryStore(), "missing")
	assert.Empty(t, coll.All(ctx))

	broken := NewCollection[testRecord](&failingStore{MemoryStore: NewMemoryStore(), failReads: true}, "k")
	assert.Empty(t, broken.All(ctx))
}

func TestCollection_SaveFailureIsSkipped(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: NewMemoryStore()}
	coll := NewCollection[testRecord](store, "k")

	assert.NotPanics(t, func() {
		coll.Add(ctx, testRecord{ID: "a"})
	})
	assert.Empty(t, coll.All(ctx))
}

func TestCollection_AddFindDelete(t *testing.T) {
	ctx := context.Background()
	coll := NewCollection[testRecord](NewMemoryStore(), "k")

	coll.Add(ctx, testRecord{ID: "a", Name: "first"})
	coll.Add(ctx, testRecord{ID: "b", Name: "second"})

	found, ok := coll.FindByID(ctx, "b")
	require.True(t, ok)
	assert.Equal(t, "second", found.Name)

	_, ok = coll.FindByID(ctx, "zzz")
	assert.False(t, ok)

	coll.Delete(ctx, "a")
	all := coll.All(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].ID)

	// deleting an unknown id leaves the rest alone
	coll.Delete(ctx, "nope")
	assert.Len(t, coll.All(ctx), 1)
}

func TestCollection_UpdateMergesAndStamps(t *testing.T) {
	ctx := context.Background()
	coll := NewCollection[testRecord](NewMemoryStore(), "k")
	stamp := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	coll.now = func() time.Time { return stamp }

	coll.Add(ctx, testRecord{ID: "a", ParentID: "p1", Name: "old", Amount: 12.5, Order: 3})

	updated, ok, err := coll.Update(ctx, "a", map[string]any{"name": "new"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", updated.Name)
	assert.Equal(t, "p1", updated.ParentID)
	assert.Equal(t, 12.5, updated.Amount)
	assert.Equal(t, 3, updated.Order)
	assert.True(t, stamp.Equal(updated.UpdatedAt))

	stored, _ := coll.FindByID(ctx, "a")
	assert.Equal(t, updated, stored)
}

func TestCollection_UpdateUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	coll := NewCollection[testRecord](store, "k")
	coll.Add(ctx, testRecord{ID: "a"})
	before, _, _ := store.Get(ctx, "k")

	_, ok, err := coll.Update(ctx, "b", map[string]any{"name": "x"})
	assert.NoError(t, err)
	assert.False(t, ok)

	after, _, _ := store.Get(ctx, "k")
	assert.Equal(t, before, after)
}

func TestCollection_UpdateRejectsMistypedField(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	coll := NewCollection[testRecord](store, "k")
	coll.Add(ctx, testRecord{ID: "a", Amount: 4})
	before, _, _ := store.Get(ctx, "k")

	_, ok, err := coll.Update(ctx, "a", map[string]any{"amount": "abc"})
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrInvalidFields)

	after, _, _ := store.Get(ctx, "k")
	assert.Equal(t, before, after)
}

func TestCollection_DeleteWhereCounts(t *testing.T) {
	ctx := context.Background()
	coll := NewCollection[testRecord](NewMemoryStore(), "k")
	coll.Save(ctx, []testRecord{
		{ID: "1", ParentID: "x"},
		{ID: "2", ParentID: "y"},
		{ID: "3", ParentID: "x"},
	})

	removed := coll.DeleteWhere(ctx, func(r testRecord) bool { return r.ParentID == "x" })
	assert.Equal(t, 2, removed)
	assert.Len(t, coll.All(ctx), 1)
}

func TestSortByOrder_Stable(t *testing.T) {
	items := []testRecord{
		{ID: "c", Order: 3},
		{ID: "a1", Order: 1},
		{ID: "b", Order: 2},
		{ID: "a2", Order: 1},
	}
	SortByOrder(items)

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"a1", "a2", "b", "c"}, ids)
}

func TestNextOrder(t *testing.T) {
	assert.Equal(t, 1, NextOrder([]testRecord{}))
	assert.Equal(t, 2, NextOrder([]testRecord{{Order: 1}}))
	assert.Equal(t, 10, NextOrder([]testRecord{{Order: 2}, {Order: 9}, {Order: 4}}))
	assert.Equal(t, 1, NextOrder([]testRecord{{Order: -3}, {Order: 0}}))
}
