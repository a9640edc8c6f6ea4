package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/groceryworks/catalog-service/internal/models"
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// List retrieves all categories that are not soft-deleted
	List(ctx context.Context) ([]models.Category, error)

	// FindByID retrieves a category by ID, excluding soft-deleted rows
	// Returns ErrCategoryNotFound if the category doesn't exist
	FindByID(ctx context.Context, id int) (*models.Category, error)

	// Create inserts a new category and fills in the generated ID
	// MUST be called within a transaction
	Create(ctx context.Context, tx pgx.Tx, category *models.Category) error

	// Update persists the mutable fields of an existing category
	// MUST be called within a transaction
	// Returns ErrCategoryNotFound if the category doesn't exist
	Update(ctx context.Context, tx pgx.Tx, category *models.Category) error

	// Delete soft-deletes a category
	// MUST be called within a transaction
	// Returns ErrCategoryNotFound if the category doesn't exist
	Delete(ctx context.Context, tx pgx.Tx, id int) error
}
