package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/groceryworks/catalog-service/internal/cache"
	"github.com/groceryworks/catalog-service/internal/mocks"
	"github.com/groceryworks/catalog-service/internal/models"
	"github.com/groceryworks/catalog-service/internal/observability"
	"github.com/groceryworks/catalog-service/internal/service"
)

type productFixture struct {
	db         pgxmock.PgxPoolIface
	products   *mocks.MockProductRepository
	categories *mocks.MockCategoryRepository
	outbox     *mocks.MockOutboxRepository
	svc        service.ProductService
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	products := mocks.NewMockProductRepository(ctrl)
	categories := mocks.NewMockCategoryRepository(ctrl)
	outbox := mocks.NewMockOutboxRepository(ctrl)
	metrics := observability.NewMetricsWithRegistry(prometheus.NewRegistry())

	svc := service.NewProductService(
		db,
		products,
		categories,
		outbox,
		cache.New[[]models.Product](time.Minute),
		metrics,
		zerolog.Nop(),
	)

	return &productFixture{db: db, products: products, categories: categories, outbox: outbox, svc: svc}
}

func TestProductServiceSave(t *testing.T) {
	f := newProductFixture(t)

	f.categories.EXPECT().FindByID(gomock.Any(), 100).Return(&models.Category{ID: 100, Name: "Fruits and Vegetables"}, nil)
	f.db.ExpectBegin()
	f.products.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.outbox.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.db.ExpectCommit()

	result := f.svc.Save(context.Background(), &models.Product{
		Name:              "Apple",
		QuantityInPackage: 1,
		UnitOfMeasurement: models.UnitOfMeasurementUnity,
		CategoryID:        100,
	})

	assert.True(t, result.Success)
	require.NotNil(t, result.Payload)
	assert.Equal(t, "Apple", result.Payload.Name)
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestProductServiceSaveInvalidCategory(t *testing.T) {
	f := newProductFixture(t)

	f.categories.EXPECT().FindByID(gomock.Any(), 999).Return(nil, models.ErrCategoryNotFound)

	result := f.svc.Save(context.Background(), &models.Product{
		Name:              "Apple",
		QuantityInPackage: 1,
		UnitOfMeasurement: models.UnitOfMeasurementUnity,
		CategoryID:        999,
	})

	assert.False(t, result.Success)
	assert.Equal(t, "Invalid category.", result.Message)
	// No transaction may be opened for an invalid category reference.
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestProductServiceSaveFault(t *testing.T) {
	f := newProductFixture(t)

	f.categories.EXPECT().FindByID(gomock.Any(), 100).Return(&models.Category{ID: 100}, nil)
	f.db.ExpectBegin()
	f.products.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
	f.db.ExpectRollback()

	result := f.svc.Save(context.Background(), &models.Product{Name: "Apple", CategoryID: 100})

	assert.False(t, result.Success)
	assert.Equal(t, "An error occurred when saving the product: connection reset", result.Message)
}

func TestProductServiceUpdateNotFound(t *testing.T) {
	f := newProductFixture(t)

	f.products.EXPECT().FindByID(gomock.Any(), 999).Return(nil, models.ErrProductNotFound)

	result := f.svc.Update(context.Background(), 999, &models.Product{Name: "Apple", CategoryID: 100})

	assert.False(t, result.Success)
	assert.Equal(t, "Product not found.", result.Message)
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestProductServiceUpdateAppliesMutableFields(t *testing.T) {
	f := newProductFixture(t)

	existing := &models.Product{ID: 101, Name: "Milk", QuantityInPackage: 2, UnitOfMeasurement: models.UnitOfMeasurementLiter, CategoryID: 101}
	f.products.EXPECT().FindByID(gomock.Any(), 101).Return(existing, nil)
	f.categories.EXPECT().FindByID(gomock.Any(), 101).Return(&models.Category{ID: 101, Name: "Dairy"}, nil)
	f.db.ExpectBegin()
	f.products.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ interface{}, p *models.Product) error {
			assert.Equal(t, 101, p.ID)
			assert.Equal(t, "Whole Milk", p.Name)
			assert.Equal(t, 6, p.QuantityInPackage)
			return nil
		})
	f.outbox.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.db.ExpectCommit()

	result := f.svc.Update(context.Background(), 101, &models.Product{
		Name:              "Whole Milk",
		QuantityInPackage: 6,
		UnitOfMeasurement: models.UnitOfMeasurementLiter,
		CategoryID:        101,
	})

	assert.True(t, result.Success)
	require.NotNil(t, result.Payload)
	assert.Equal(t, 101, result.Payload.ID)
	assert.Equal(t, "Whole Milk", result.Payload.Name)
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestProductServiceDeleteNotFound(t *testing.T) {
	f := newProductFixture(t)

	f.products.EXPECT().FindByID(gomock.Any(), 999).Return(nil, models.ErrProductNotFound)

	result := f.svc.Delete(context.Background(), 999)

	assert.False(t, result.Success)
	assert.Equal(t, "Product not found.", result.Message)
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestProductServiceDeleteInvalidatesFilteredList(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	apple := models.Product{ID: 100, Name: "Apple", QuantityInPackage: 1, UnitOfMeasurement: models.UnitOfMeasurementUnity, CategoryID: 100}
	f.products.EXPECT().List(gomock.Any(), 100).Return([]models.Product{apple}, nil).Times(1)

	before, err := f.svc.List(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, before, 1)

	// Served from cache, no second repository call expected.
	_, err = f.svc.List(ctx, 100)
	require.NoError(t, err)

	f.products.EXPECT().FindByID(gomock.Any(), 100).Return(&apple, nil)
	f.db.ExpectBegin()
	f.products.EXPECT().Delete(gomock.Any(), gomock.Any(), 100).Return(nil)
	f.outbox.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.db.ExpectCommit()
	result := f.svc.Delete(ctx, 100)
	require.True(t, result.Success)

	f.products.EXPECT().List(gomock.Any(), 100).Return(nil, nil).Times(1)
	after, err := f.svc.List(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestProductsListKeyFor(t *testing.T) {
	assert.Equal(t, service.ProductsListKey, service.ProductsListKeyFor(0))
	assert.Equal(t, service.ProductsListKey, service.ProductsListKeyFor(-1))
	assert.Equal(t, service.ProductsListKey+"100", service.ProductsListKeyFor(100))
}
