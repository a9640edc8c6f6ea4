package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/groceryworks/catalog-service/internal/cache"
	"github.com/groceryworks/catalog-service/internal/models"
	"github.com/groceryworks/catalog-service/internal/observability"
	"github.com/groceryworks/catalog-service/internal/repository"
)

// ProductsListKey is the base cache key for product lists. Filtered lists
// append the category ID to the base key.
const ProductsListKey = "products-list"

// ProductsListKeyFor derives the cache key for an optional category filter.
func ProductsListKeyFor(categoryID int) string {
	if categoryID > 0 {
		return ProductsListKey + strconv.Itoa(categoryID)
	}
	return ProductsListKey
}

// ProductServiceImpl implements the ProductService interface
type ProductServiceImpl struct {
	db         Database
	products   repository.ProductRepository
	categories repository.CategoryRepository
	outbox     repository.OutboxRepository
	listCache  *cache.Cache[[]models.Product]
	metrics    *observability.Metrics
	logger     zerolog.Logger
}

// NewProductService creates a new product service instance
func NewProductService(
	db Database,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	outbox repository.OutboxRepository,
	listCache *cache.Cache[[]models.Product],
	metrics *observability.Metrics,
	logger zerolog.Logger,
) ProductService {
	return &ProductServiceImpl{
		db:         db,
		products:   products,
		categories: categories,
		outbox:     outbox,
		listCache:  listCache,
		metrics:    metrics,
		logger:     logger.With().Str("component", "product_service").Logger(),
	}
}

// List returns products, served through the list cache. The cache key varies
// with the category filter so filtered and unfiltered results never mix.
func (s *ProductServiceImpl) List(ctx context.Context, categoryID int) ([]models.Product, error) {
	s.metrics.CacheRequestsTotal.WithLabelValues("products").Inc()

	return s.listCache.GetOrLoad(ctx, ProductsListKeyFor(categoryID), func(ctx context.Context) ([]models.Product, error) {
		s.metrics.CacheMissesTotal.WithLabelValues("products").Inc()
		return s.products.List(ctx, categoryID)
	})
}

// Save creates a new product. The referenced category must exist; the check
// runs before any write so an invalid reference never opens a transaction.
func (s *ProductServiceImpl) Save(ctx context.Context, product *models.Product) ProductResult {
	if _, err := s.categories.FindByID(ctx, product.CategoryID); err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			return Failed[models.Product]("Invalid category.")
		}
		return s.saveFailed(err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return s.saveFailed(err)
	}
	defer tx.Rollback(ctx)

	if err := s.products.Create(ctx, tx, product); err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			// Category vanished between the check and the insert.
			return Failed[models.Product]("Invalid category.")
		}
		return s.saveFailed(err)
	}

	if err := s.outbox.Create(ctx, tx, productEvent(models.EventTypeProductSaved, product)); err != nil {
		return s.saveFailed(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return s.saveFailed(err)
	}

	s.listCache.Invalidate(ProductsListKey, ProductsListKeyFor(product.CategoryID))
	s.metrics.CatalogWritesTotal.WithLabelValues("product", "save").Inc()

	s.logger.Info().
		Int("product_id", product.ID).
		Str("name", product.Name).
		Int("category_id", product.CategoryID).
		Msg("product saved")

	return Succeeded(product)
}

// Update applies the mutable fields of patch onto an existing product.
// Identity is never replaced; the category reference is re-validated because
// the patch may move the product to another category.
func (s *ProductServiceImpl) Update(ctx context.Context, id int, patch *models.Product) ProductResult {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return Failed[models.Product]("Product not found.")
		}
		return s.updateFailed(err)
	}

	if _, err := s.categories.FindByID(ctx, patch.CategoryID); err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			return Failed[models.Product]("Invalid category.")
		}
		return s.updateFailed(err)
	}

	previousCategoryID := existing.CategoryID
	existing.Name = patch.Name
	existing.QuantityInPackage = patch.QuantityInPackage
	existing.UnitOfMeasurement = patch.UnitOfMeasurement
	existing.CategoryID = patch.CategoryID

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return s.updateFailed(err)
	}
	defer tx.Rollback(ctx)

	if err := s.products.Update(ctx, tx, existing); err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			return Failed[models.Product]("Product not found.")
		case errors.Is(err, models.ErrCategoryNotFound):
			return Failed[models.Product]("Invalid category.")
		}
		return s.updateFailed(err)
	}

	if err := s.outbox.Create(ctx, tx, productEvent(models.EventTypeProductUpdated, existing)); err != nil {
		return s.updateFailed(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return s.updateFailed(err)
	}

	// Both the old and the new category list can be affected by the move.
	s.listCache.Invalidate(
		ProductsListKey,
		ProductsListKeyFor(previousCategoryID),
		ProductsListKeyFor(existing.CategoryID),
	)
	s.metrics.CatalogWritesTotal.WithLabelValues("product", "update").Inc()

	s.logger.Info().
		Int("product_id", existing.ID).
		Str("name", existing.Name).
		Msg("product updated")

	return Succeeded(existing)
}

// Delete removes an existing product
func (s *ProductServiceImpl) Delete(ctx context.Context, id int) ProductResult {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return Failed[models.Product]("Product not found.")
		}
		return s.deleteFailed(err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return s.deleteFailed(err)
	}
	defer tx.Rollback(ctx)

	if err := s.products.Delete(ctx, tx, id); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return Failed[models.Product]("Product not found.")
		}
		return s.deleteFailed(err)
	}

	if err := s.outbox.Create(ctx, tx, productEvent(models.EventTypeProductDeleted, existing)); err != nil {
		return s.deleteFailed(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return s.deleteFailed(err)
	}

	s.listCache.Invalidate(ProductsListKey, ProductsListKeyFor(existing.CategoryID))
	s.metrics.CatalogWritesTotal.WithLabelValues("product", "delete").Inc()

	s.logger.Info().
		Int("product_id", id).
		Msg("product deleted")

	return Succeeded(existing)
}

func (s *ProductServiceImpl) saveFailed(err error) ProductResult {
	s.logger.Error().Err(err).Msg("failed to save product")
	s.metrics.CatalogWriteFailuresTotal.WithLabelValues("product", "save").Inc()
	return Failed[models.Product](fmt.Sprintf("An error occurred when saving the product: %s", err.Error()))
}

func (s *ProductServiceImpl) updateFailed(err error) ProductResult {
	s.logger.Error().Err(err).Msg("failed to update product")
	s.metrics.CatalogWriteFailuresTotal.WithLabelValues("product", "update").Inc()
	return Failed[models.Product](fmt.Sprintf("An error occurred when updating the product: %s", err.Error()))
}

func (s *ProductServiceImpl) deleteFailed(err error) ProductResult {
	s.logger.Error().Err(err).Msg("failed to delete product")
	s.metrics.CatalogWriteFailuresTotal.WithLabelValues("product", "delete").Inc()
	return Failed[models.Product](fmt.Sprintf("An error occurred when deleting the product: %s", err.Error()))
}

func productEvent(eventType string, product *models.Product) *models.OutboxEvent {
	return &models.OutboxEvent{
		AggregateID:   fmt.Sprintf("%d", product.ID),
		AggregateType: models.AggregateTypeProduct,
		EventType:     eventType,
		EventPayload: map[string]interface{}{
			"product_id":          product.ID,
			"name":                product.Name,
			"quantity_in_package": product.QuantityInPackage,
			"unit_of_measurement": product.UnitOfMeasurement.Description(),
			"category_id":         product.CategoryID,
		},
	}
}
