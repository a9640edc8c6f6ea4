package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/groceryworks/catalog-service/internal/models"
)

// PostgresCategoryRepository implements CategoryRepository using PostgreSQL
type PostgresCategoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresCategoryRepository creates a new PostgreSQL category repository
func NewPostgresCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{
		pool:   pool,
		logger: logger.With().Str("component", "postgres_category_repository").Logger(),
	}
}

// List retrieves all categories that are not soft-deleted
func (r *PostgresCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	query := `
		SELECT id, name, is_deleted, created_at, created_by, modified_at, modified_by
		FROM categories
		WHERE is_deleted = FALSE
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.IsDeleted, &c.CreatedAt, &c.CreatedBy, &c.ModifiedAt, &c.ModifiedBy); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category")
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return categories, nil
}

// FindByID retrieves a category by ID, excluding soft-deleted rows
func (r *PostgresCategoryRepository) FindByID(ctx context.Context, id int) (*models.Category, error) {
	query := `
		SELECT id, name, is_deleted, created_at, created_by, modified_at, modified_by
		FROM categories
		WHERE id = $1 AND is_deleted = FALSE
	`

	var c models.Category
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.IsDeleted, &c.CreatedAt, &c.CreatedBy, &c.ModifiedAt, &c.ModifiedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCategoryNotFound
		}
		r.logger.Error().Err(err).Int("category_id", id).Msg("failed to find category")
		return nil, fmt.Errorf("find category: %w", err)
	}

	return &c, nil
}

// Create inserts a new category and fills in the generated ID
func (r *PostgresCategoryRepository) Create(ctx context.Context, tx pgx.Tx, category *models.Category) error {
	query := `
		INSERT INTO categories (name, is_deleted, created_at, created_by)
		VALUES ($1, FALSE, $2, $3)
		RETURNING id
	`

	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}

	err := tx.QueryRow(ctx, query, category.Name, category.CreatedAt, category.CreatedBy).
		Scan(&category.ID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("name", category.Name).
			Msg("failed to create category")
		return fmt.Errorf("create category: %w", err)
	}

	r.logger.Info().
		Int("category_id", category.ID).
		Str("name", category.Name).
		Msg("category created")

	return nil
}

// Update persists the mutable fields of an existing category
func (r *PostgresCategoryRepository) Update(ctx context.Context, tx pgx.Tx, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, modified_at = $2, modified_by = $3
		WHERE id = $4 AND is_deleted = FALSE
	`

	result, err := tx.Exec(ctx, query, category.Name, category.ModifiedAt, category.ModifiedBy, category.ID)
	if err != nil {
		r.logger.Error().Err(err).
			Int("category_id", category.ID).
			Msg("failed to update category")
		return fmt.Errorf("update category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrCategoryNotFound
	}

	r.logger.Debug().
		Int("category_id", category.ID).
		Str("name", category.Name).
		Msg("category updated")

	return nil
}

// Delete soft-deletes a category so product history stays resolvable
func (r *PostgresCategoryRepository) Delete(ctx context.Context, tx pgx.Tx, id int) error {
	query := `
		UPDATE categories
		SET is_deleted = TRUE, modified_at = $1
		WHERE id = $2 AND is_deleted = FALSE
	`

	result, err := tx.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		r.logger.Error().Err(err).
			Int("category_id", id).
			Msg("failed to delete category")
		return fmt.Errorf("delete category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrCategoryNotFound
	}

	r.logger.Info().
		Int("category_id", id).
		Msg("category deleted")

	return nil
}
