package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/groceryworks/catalog-service/internal/models"
)

// Database is the transaction-starting surface of pgxpool.Pool that the
// services need. pgxmock satisfies it in tests.
type Database interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CategoryService defines the business logic interface for category management.
//
// Mutations return a Result envelope instead of an error for business-rule
// failures (not found, invalid reference); storage faults are caught here and
// converted to a failed envelope as well. Every successful mutation commits
// as a single transaction and invalidates the affected list-cache keys.
type CategoryService interface {
	// List returns all categories, served through the list cache
	List(ctx context.Context) ([]models.Category, error)

	// Save creates a new category
	Save(ctx context.Context, category *models.Category) CategoryResult

	// Update renames an existing category
	// Only the mutable fields of patch are applied
	Update(ctx context.Context, id int, patch *models.Category) CategoryResult

	// Delete soft-deletes an existing category
	Delete(ctx context.Context, id int) CategoryResult
}

// ProductService defines the business logic interface for product management.
type ProductService interface {
	// List returns products, served through the list cache
	// categoryID <= 0 means no category filter
	List(ctx context.Context, categoryID int) ([]models.Product, error)

	// Save creates a new product; the referenced category must exist
	Save(ctx context.Context, product *models.Product) ProductResult

	// Update applies the mutable fields of patch onto an existing product,
	// re-validating the (possibly changed) category reference
	Update(ctx context.Context, id int, patch *models.Product) ProductResult

	// Delete removes an existing product
	Delete(ctx context.Context, id int) ProductResult
}
