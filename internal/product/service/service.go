// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/gocrud/internal/product/store"
	"github.com/abgdnv/gocrud/pkg/messaging"
	"github.com/abgdnv/gocrud/pkg/messaging/events"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (store.Product, error)

	// FindAll returns all available products.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]store.Product, error)

	// Create adds a new product under a generated id.
	Create(ctx context.Context, fields store.Product) (store.Product, error)

	// Update merges fields into an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, fields store.Product) (store.Product, error)

	// DeleteByID removes a product by its ID and returns it.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) (store.Product, error)
}

// service implements ProductService and provides methods to manage products.
type service struct {
	store     store.ProductStore
	publisher messaging.Publisher
	logger    *slog.Logger
	now       func() time.Time
	mutations metric.Int64Counter
	size      metric.Int64UpDownCounter
}

// NewService creates a new instance of ProductService. initialSize is the number of seeded
// products, used as the starting value of the collection size gauge.
func NewService(s store.ProductStore, publisher messaging.Publisher, logger *slog.Logger, meter metric.Meter, initialSize int) (ProductService, error) {
	mutations, err := meter.Int64Counter("product_mutations_total",
		metric.WithDescription("Number of successful product mutations."))
	if err != nil {
		return nil, fmt.Errorf("failed to create mutations counter: %w", err)
	}
	size, err := meter.Int64UpDownCounter("products_in_collection",
		metric.WithDescription("Number of products currently held in the collection."))
	if err != nil {
		return nil, fmt.Errorf("failed to create collection size counter: %w", err)
	}
	size.Add(context.Background(), int64(initialSize))

	return &service{
		store:     s,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		mutations: mutations,
		size:      size,
	}, nil
}

// FindByID retrieves a product by its ID.
func (s *service) FindByID(ctx context.Context, id int64) (store.Product, error) {
	product, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return product, nil
}

// FindAll retrieves a list of all products.
func (s *service) FindAll(ctx context.Context) ([]store.Product, error) {
	products, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// Create stores a new product and announces it.
func (s *service) Create(ctx context.Context, fields store.Product) (store.Product, error) {
	product, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.size.Add(ctx, 1)
	s.changed(ctx, events.ProductCreated, product)
	return product, nil
}

// Update merges fields into a product and announces the result.
func (s *service) Update(ctx context.Context, id int64, fields store.Product) (store.Product, error) {
	product, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	s.changed(ctx, events.ProductUpdated, product)
	return product, nil
}

// DeleteByID deletes a product and announces the removal.
func (s *service) DeleteByID(ctx context.Context, id int64) (store.Product, error) {
	product, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	s.size.Add(ctx, -1)
	s.changed(ctx, events.ProductDeleted, product)
	return product, nil
}

// changed records a mutation and publishes its event. Publishing is best effort: the
// collection is already updated, so a failure is only logged.
func (s *service) changed(ctx context.Context, eventType string, product store.Product) {
	s.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", eventType)))

	id, _ := product[store.IDField].(int64)
	event := events.ProductEvent{
		Type:       eventType,
		ProductID:  id,
		Product:    product.Clone(),
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish product event",
			"subject", event.Subject(), "product_id", id, "error", err)
	}
}
