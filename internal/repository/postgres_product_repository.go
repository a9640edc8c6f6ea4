package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/groceryworks/catalog-service/internal/models"
)

// PostgresProductRepository implements ProductRepository using PostgreSQL
type PostgresProductRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresProductRepository creates a new PostgreSQL product repository
func NewPostgresProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) *PostgresProductRepository {
	return &PostgresProductRepository{
		pool:   pool,
		logger: logger.With().Str("component", "postgres_product_repository").Logger(),
	}
}

// List retrieves products, optionally filtered by category
func (r *PostgresProductRepository) List(ctx context.Context, categoryID int) ([]models.Product, error) {
	query := `
		SELECT id, name, quantity_in_package, unit_of_measurement, category_id
		FROM products
		WHERE $1 <= 0 OR category_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		r.logger.Error().Err(err).
			Int("category_id", categoryID).
			Msg("failed to list products")
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.QuantityInPackage, &p.UnitOfMeasurement, &p.CategoryID); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product")
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}

// FindByID retrieves a product by ID
func (r *PostgresProductRepository) FindByID(ctx context.Context, id int) (*models.Product, error) {
	query := `
		SELECT id, name, quantity_in_package, unit_of_measurement, category_id
		FROM products
		WHERE id = $1
	`

	var p models.Product
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.QuantityInPackage, &p.UnitOfMeasurement, &p.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrProductNotFound
		}
		r.logger.Error().Err(err).Int("product_id", id).Msg("failed to find product")
		return nil, fmt.Errorf("find product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product and fills in the generated ID
func (r *PostgresProductRepository) Create(ctx context.Context, tx pgx.Tx, product *models.Product) error {
	query := `
		INSERT INTO products (name, quantity_in_package, unit_of_measurement, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		product.Name,
		product.QuantityInPackage,
		product.UnitOfMeasurement,
		product.CategoryID,
	).Scan(&product.ID)

	if err != nil {
		// The service checks the category reference first; the FK constraint
		// is the backstop against a concurrent category delete.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			r.logger.Warn().
				Int("category_id", product.CategoryID).
				Msg("product references missing category")
			return models.ErrCategoryNotFound
		}
		r.logger.Error().Err(err).
			Str("name", product.Name).
			Int("category_id", product.CategoryID).
			Msg("failed to create product")
		return fmt.Errorf("create product: %w", err)
	}

	r.logger.Info().
		Int("product_id", product.ID).
		Str("name", product.Name).
		Int("category_id", product.CategoryID).
		Msg("product created")

	return nil
}

// Update persists the mutable fields of an existing product
func (r *PostgresProductRepository) Update(ctx context.Context, tx pgx.Tx, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, quantity_in_package = $2, unit_of_measurement = $3, category_id = $4
		WHERE id = $5
	`

	result, err := tx.Exec(ctx, query,
		product.Name,
		product.QuantityInPackage,
		product.UnitOfMeasurement,
		product.CategoryID,
		product.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return models.ErrCategoryNotFound
		}
		r.logger.Error().Err(err).
			Int("product_id", product.ID).
			Msg("failed to update product")
		return fmt.Errorf("update product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrProductNotFound
	}

	r.logger.Debug().
		Int("product_id", product.ID).
		Str("name", product.Name).
		Msg("product updated")

	return nil
}

// Delete removes a product
func (r *PostgresProductRepository) Delete(ctx context.Context, tx pgx.Tx, id int) error {
	query := `
		DELETE FROM products
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).
			Int("product_id", id).
			Msg("failed to delete product")
		return fmt.Errorf("delete product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrProductNotFound
	}

	r.logger.Info().
		Int("product_id", id).
		Msg("product deleted")

	return nil
}
