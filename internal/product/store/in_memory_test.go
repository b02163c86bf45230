package store

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	producterrors "github.com/abgdnv/gocrud/internal/product/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock always reports the same instant, so ids come from the monotonic fallback.
func fixedClock(ms int64) func() time.Time {
	return func() time.Time {
		return time.UnixMilli(ms)
	}
}

func seed() []Product {
	return []Product{
		{"id": int64(1), "name": "A", "price": 10},
		{"id": int64(2), "name": "B", "price": 5},
	}
}

func Test_InMemory_FindAll(t *testing.T) {
	testCases := []struct {
		name     string
		seed     []Product
		expected []Product
	}{
		{
			name:     "Success - seeded products in order",
			seed:     seed(),
			expected: seed(),
		},
		{
			name:     "Success - empty collection",
			seed:     nil,
			expected: []Product{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := NewInMemoryStore(tc.seed)
			// when
			list, err := s.FindAll(context.Background())
			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expected, list)
		})
	}
}

func Test_InMemory_FindByID(t *testing.T) {
	testCases := []struct {
		name        string
		id          int64
		expected    Product
		expectError error
	}{
		{
			name:     "Success - product found",
			id:       2,
			expected: Product{"id": int64(2), "name": "B", "price": 5},
		},
		{
			name:        "Error - product not found",
			id:          99,
			expectError: producterrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := NewInMemoryStore(seed())
			// when
			found, err := s.FindByID(context.Background(), tc.id)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_InMemory_Create(t *testing.T) {
	// given
	s := NewInMemoryStore(seed(), WithClock(fixedClock(1_000)))
	ctx := context.Background()
	// when
	created, err := s.Create(ctx, Product{"id": "caller", "name": "C", "price": json.Number("3")})
	// then
	require.NoError(t, err)
	assert.Equal(t, Product{"id": int64(1_000), "name": "C", "price": json.Number("3")}, created)

	found, err := s.FindByID(ctx, 1_000)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	list, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, created, list[2])
}

func Test_InMemory_Create_UniqueIDs(t *testing.T) {
	testCases := []struct {
		name  string
		clock func() time.Time
		seed  []Product
	}{
		{
			name:  "same millisecond",
			clock: fixedClock(1_000),
		},
		{
			name:  "clock behind seeded ids",
			clock: fixedClock(1),
			seed:  []Product{{"id": int64(5_000)}},
		},
		{
			name:  "wall clock",
			clock: time.Now,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := NewInMemoryStore(tc.seed, WithClock(tc.clock))
			seen := map[int64]bool{}
			for _, p := range tc.seed {
				seen[p[IDField].(int64)] = true
			}
			var last int64
			// when
			for range 100 {
				p, err := s.Create(context.Background(), Product{})
				require.NoError(t, err)
				// then
				id := p[IDField].(int64)
				assert.False(t, seen[id], "id %d reused", id)
				assert.Greater(t, id, last)
				seen[id] = true
				last = id
			}
		})
	}
}

func Test_InMemory_Create_DoesNotAliasInput(t *testing.T) {
	// given
	s := NewInMemoryStore(nil, WithClock(fixedClock(1)))
	fields := Product{"name": "A"}
	// when
	created, err := s.Create(context.Background(), fields)
	require.NoError(t, err)
	fields["name"] = "changed"
	created["name"] = "changed too"
	// then
	found, err := s.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "A", found["name"])
	assert.NotContains(t, fields, IDField)
}

func Test_InMemory_Update(t *testing.T) {
	testCases := []struct {
		name        string
		id          int64
		fields      Product
		expected    Product
		expectError error
	}{
		{
			name:     "Success - merges fields",
			id:       1,
			fields:   Product{"price": 20},
			expected: Product{"id": int64(1), "name": "A", "price": 20},
		},
		{
			name:     "Success - adds new fields",
			id:       2,
			fields:   Product{"stock": 7},
			expected: Product{"id": int64(2), "name": "B", "price": 5, "stock": 7},
		},
		{
			name:     "Success - id in payload is ignored",
			id:       1,
			fields:   Product{"id": int64(2), "name": "Z"},
			expected: Product{"id": int64(1), "name": "Z", "price": 10},
		},
		{
			name:     "Success - empty payload",
			id:       1,
			fields:   Product{},
			expected: Product{"id": int64(1), "name": "A", "price": 10},
		},
		{
			name:        "Error - product not found",
			id:          99,
			fields:      Product{"price": 1},
			expectError: producterrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := NewInMemoryStore(seed())
			ctx := context.Background()
			// when
			updated, err := s.Update(ctx, tc.id, tc.fields)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
				list, err := s.FindAll(ctx)
				require.NoError(t, err)
				assert.Equal(t, seed(), list)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, updated)
			found, err := s.FindByID(ctx, tc.id)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_InMemory_Update_KeepsHandedOutCopies(t *testing.T) {
	// given
	s := NewInMemoryStore(seed())
	ctx := context.Background()
	before, err := s.FindByID(ctx, 1)
	require.NoError(t, err)
	// when
	_, err = s.Update(ctx, 1, Product{"price": 99})
	// then
	require.NoError(t, err)
	assert.Equal(t, 10, before["price"])
}

func Test_InMemory_DeleteByID(t *testing.T) {
	testCases := []struct {
		name        string
		id          int64
		expected    Product
		remaining   []Product
		expectError error
	}{
		{
			name:      "Success - returns removed product",
			id:        1,
			expected:  Product{"id": int64(1), "name": "A", "price": 10},
			remaining: []Product{{"id": int64(2), "name": "B", "price": 5}},
		},
		{
			name:        "Error - product not found",
			id:          99,
			remaining:   seed(),
			expectError: producterrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := NewInMemoryStore(seed())
			ctx := context.Background()
			// when
			removed, err := s.DeleteByID(ctx, tc.id)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, removed)
				_, err = s.FindByID(ctx, tc.id)
				assert.ErrorIs(t, err, producterrors.ErrProductNotFound)
			}
			list, err := s.FindAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.remaining, list)
		})
	}
}

func Test_InMemory_DeletedIDNotReused(t *testing.T) {
	// given
	s := NewInMemoryStore(nil, WithClock(fixedClock(10)))
	ctx := context.Background()
	first, err := s.Create(ctx, Product{})
	require.NoError(t, err)
	_, err = s.DeleteByID(ctx, first[IDField].(int64))
	require.NoError(t, err)
	// when
	second, err := s.Create(ctx, Product{})
	// then
	require.NoError(t, err)
	assert.NotEqual(t, first[IDField], second[IDField])
}

func Test_InMemory_Concurrent(t *testing.T) {
	// given
	s := NewInMemoryStore(seed())
	ctx := context.Background()
	const workers = 20
	var wg sync.WaitGroup
	ids := make(chan int64, workers*10)
	// when
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				p, err := s.Create(ctx, Product{"worker": w})
				if err != nil {
					t.Error(err)
					return
				}
				ids <- p[IDField].(int64)
				_, _ = s.Update(ctx, 1, Product{"touched": w})
				_, _ = s.FindAll(ctx)
			}
		}()
	}
	wg.Wait()
	close(ids)
	// then
	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	list, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2+workers*10)
}
