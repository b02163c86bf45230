package store

import (
	"context"
	"slices"
	"sync"
	"time"

	producterrors "github.com/abgdnv/gocrud/internal/product/errors"
	"github.com/abgdnv/gocrud/pkg/record"
)

// inMemory implements ProductStore on an ordered slice. Lookups are linear scans.
// Stored records are never modified in place: an update swaps in a merged copy.
type inMemory struct {
	mu       sync.RWMutex
	products []Product
	lastID   int64
	now      func() time.Time
}

// Option configures the in-memory store.
type Option func(*inMemory)

// WithClock sets the clock ids are derived from.
func WithClock(now func() time.Time) Option {
	return func(s *inMemory) {
		s.now = now
	}
}

// NewInMemoryStore creates a store seeded with products, which must carry unique int64 ids
// (LoadSnapshot guarantees that).
func NewInMemoryStore(seed []Product, opts ...Option) ProductStore {
	s := &inMemory{
		products: make([]Product, 0, len(seed)),
		now:      time.Now,
	}
	for _, p := range seed {
		if id := p[IDField].(int64); id > s.lastID {
			s.lastID = id
		}
		s.products = append(s.products, p.Clone())
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindAll returns a copy of the collection.
func (s *inMemory) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, len(s.products))
	for i, p := range s.products {
		list[i] = p.Clone()
	}
	return list, nil
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id int64) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, producterrors.ErrProductNotFound
	}
	return s.products[i].Clone(), nil
}

// Create stores fields under a new id and returns the stored product.
func (s *inMemory) Create(_ context.Context, fields Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := record.Merge(fields, Product{IDField: s.nextID()})
	s.products = append(s.products, product)
	return product.Clone(), nil
}

// Update merges fields into the stored product.
func (s *inMemory) Update(_ context.Context, id int64, fields Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, producterrors.ErrProductNotFound
	}
	updated := record.Merge(s.products[i], fields)
	updated[IDField] = id
	s.products[i] = updated
	return updated.Clone(), nil
}

// DeleteByID removes a product and returns it.
func (s *inMemory) DeleteByID(_ context.Context, id int64) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, producterrors.ErrProductNotFound
	}
	removed := s.products[i]
	s.products = slices.Delete(s.products, i, i+1)
	return removed, nil
}

// indexOf returns the position of the first product with the given id, or -1.
// The caller must hold the lock.
func (s *inMemory) indexOf(id int64) int {
	return slices.IndexFunc(s.products, func(p Product) bool {
		return p[IDField] == id
	})
}

// nextID returns a time-derived id that is strictly greater than every id handed out or seeded
// so far. The caller must hold the write lock.
func (s *inMemory) nextID() int64 {
	id := max(s.now().UnixMilli(), s.lastID+1)
	s.lastID = id
	return id
}
