// Package store provides the product collection storage.
package store

import (
	"context"

	"github.com/abgdnv/gocrud/pkg/record"
)

// Product is an open-ended product record. It always carries an int64 "id" field.
type Product = record.Record

// IDField is the name of the product identifier field.
const IDField = "id"

// ProductStore is an interface for product storage operations.
// Products are kept in insertion order and looked up by id.
type ProductStore interface {
	// FindAll returns every product in insertion order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// FindByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (Product, error)

	// Create appends a new product built from fields under a freshly generated id.
	// A caller supplied id is overwritten.
	Create(ctx context.Context, fields Product) (Product, error)

	// Update shallow-merges fields into the product with the given id. An id field in
	// fields is ignored.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, fields Product) (Product, error)

	// DeleteByID removes a product by its ID and returns the removed product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) (Product, error)
}
