package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/groceryworks/catalog-service/internal/models"
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	// List retrieves products, optionally filtered by category
	// categoryID <= 0 means no filter
	List(ctx context.Context, categoryID int) ([]models.Product, error)

	// FindByID retrieves a product by ID
	// Returns ErrProductNotFound if the product doesn't exist
	FindByID(ctx context.Context, id int) (*models.Product, error)

	// Create inserts a new product and fills in the generated ID
	// MUST be called within a transaction
	Create(ctx context.Context, tx pgx.Tx, product *models.Product) error

	// Update persists the mutable fields of an existing product
	// MUST be called within a transaction
	// Returns ErrProductNotFound if the product doesn't exist
	Update(ctx context.Context, tx pgx.Tx, product *models.Product) error

	// Delete removes a product
	// MUST be called within a transaction
	// Returns ErrProductNotFound if the product doesn't exist
	Delete(ctx context.Context, tx pgx.Tx, id int) error
}
