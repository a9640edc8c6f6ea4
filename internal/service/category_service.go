package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/groceryworks/catalog-service/internal/cache"
	"github.com/groceryworks/catalog-service/internal/models"
	"github.com/groceryworks/catalog-service/internal/observability"
	"github.com/groceryworks/catalog-service/internal/repository"
)

// CategoriesListKey is the single cache key for the category list.
const CategoriesListKey = "categories-list"

// CategoryServiceImpl implements the CategoryService interface
type CategoryServiceImpl struct {
	db         Database
	categories repository.CategoryRepository
	outbox     repository.OutboxRepository
	listCache  *cache.Cache[[]models.Category]
	metrics    *observability.Metrics
	logger     zerolog.Logger
}

// NewCategoryService creates a new category service instance
func NewCategoryService(
	db Database,
	categories repository.CategoryRepository,
	outbox repository.OutboxRepository,
	listCache *cache.Cache[[]models.Category],
	metrics *observability.Metrics,
	logger zerolog.Logger,
) CategoryService {
	return &CategoryServiceImpl{
		db:         db,
		categories: categories,
		outbox:     outbox,
		listCache:  listCache,
		metrics:    metrics,
		logger:     logger.With().Str("component", "category_service").Logger(),
	}
}

// List returns all categories, served through the list cache
func (s *CategoryServiceImpl) List(ctx context.Context) ([]models.Category, error) {
	s.metrics.CacheRequestsTotal.WithLabelValues("categories").Inc()

	return s.listCache.GetOrLoad(ctx, CategoriesListKey, func(ctx context.Context) ([]models.Category, error) {
		s.metrics.CacheMissesTotal.WithLabelValues("categories").Inc()
		return s.categories.List(ctx)
	})
}

// Save creates a new category inside a single transaction together with its
// outbox event, then invalidates the category list cache.
func (s *CategoryServiceImpl) Save(ctx context.Context, category *models.Category) CategoryResult {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return s.saveFailed(err)
	}
	defer tx.Rollback(ctx)

	if err := s.categories.Create(ctx, tx, category); err != nil {
		return s.saveFailed(err)
	}

	if err := s.outbox.Create(ctx, tx, categoryEvent(models.EventTypeCategorySaved, category)); err != nil {
		return s.saveFailed(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return s.saveFailed(err)
	}

	s.listCache.Invalidate(CategoriesListKey)
	s.metrics.CatalogWritesTotal.WithLabelValues("category", "save").Inc()

	s.logger.Info().
		Int("category_id", category.ID).
		Str("name", category.Name).
		Msg("category saved")

	return Succeeded(category)
}

// Update renames an existing category
func (s *CategoryServiceImpl) Update(ctx context.Context, id int, patch *models.Category) CategoryResult {
	existing, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			return Failed[models.Category]("Category not found.")
		}
		return s.updateFailed(err)
	}

	now := time.Now().UTC()
	existing.Name = patch.Name
	existing.ModifiedAt = &now
	existing.ModifiedBy = patch.ModifiedBy

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return s.updateFailed(err)
	}
	defer tx.Rollback(ctx)

	if err := s.categories.Update(ctx, tx, existing); err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			return Failed[models.Category]("Category not found.")
		}
		return s.updateFailed(err)
	}

	if err := s.outbox.Create(ctx, tx, categoryEvent(models.EventTypeCategoryUpdated, existing)); err != nil {
		return s.updateFailed(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return s.updateFailed(err)
	}

	s.listCache.Invalidate(CategoriesListKey)
	s.metrics.CatalogWritesTotal.WithLabelValues("category", "update").Inc()

	s.logger.Info().
		Int("category_id", existing.ID).
		Str("name", existing.Name).
		Msg("category updated")

	return Succeeded(existing)
}

// Delete soft-deletes an existing category
func (s *CategoryServiceImpl) Delete(ctx context.Context, id int) CategoryResult {
	existing, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			return Failed[models.Category]("Category not found.")
		}
		return s.deleteFailed(err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return s.deleteFailed(err)
	}
	defer tx.Rollback(ctx)

	if err := s.categories.Delete(ctx, tx, id); err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			return Failed[models.Category]("Category not found.")
		}
		return s.deleteFailed(err)
	}

	if err := s.outbox.Create(ctx, tx, categoryEvent(models.EventTypeCategoryDeleted, existing)); err != nil {
		return s.deleteFailed(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return s.deleteFailed(err)
	}

	s.listCache.Invalidate(CategoriesListKey)
	s.metrics.CatalogWritesTotal.WithLabelValues("category", "delete").Inc()

	s.logger.Info().
		Int("category_id", id).
		Msg("category deleted")

	return Succeeded(existing)
}

func (s *CategoryServiceImpl) saveFailed(err error) CategoryResult {
	s.logger.Error().Err(err).Msg("failed to save category")
	s.metrics.CatalogWriteFailuresTotal.WithLabelValues("category", "save").Inc()
	return Failed[models.Category](fmt.Sprintf("An error occurred when saving the category: %s", err.Error()))
}

func (s *CategoryServiceImpl) updateFailed(err error) CategoryResult {
	s.logger.Error().Err(err).Msg("failed to update category")
	s.metrics.CatalogWriteFailuresTotal.WithLabelValues("category", "update").Inc()
	return Failed[models.Category](fmt.Sprintf("An error occurred when updating the category: %s", err.Error()))
}

func (s *CategoryServiceImpl) deleteFailed(err error) CategoryResult {
	s.logger.Error().Err(err).Msg("failed to delete category")
	s.metrics.CatalogWriteFailuresTotal.WithLabelValues("category", "delete").Inc()
	return Failed[models.Category](fmt.Sprintf("An error occurred when deleting the category: %s", err.Error()))
}

func categoryEvent(eventType string, category *models.Category) *models.OutboxEvent {
	return &models.OutboxEvent{
		AggregateID:   fmt.Sprintf("%d", category.ID),
		AggregateType: models.AggregateTypeCategory,
		EventType:     eventType,
		EventPayload: map[string]interface{}{
			"category_id": category.ID,
			"name":        category.Name,
		},
	}
}
