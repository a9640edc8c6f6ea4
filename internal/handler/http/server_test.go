package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/groceryworks/catalog-service/internal/auth"
	"github.com/groceryworks/catalog-service/internal/mocks"
	"github.com/groceryworks/catalog-service/internal/models"
	"github.com/groceryworks/catalog-service/internal/observability"
	"github.com/groceryworks/catalog-service/internal/service"
)

type serverFixture struct {
	categories *mocks.MockCategoryService
	products   *mocks.MockProductService
	issuer     *auth.Issuer
	router     http.Handler
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	categories := mocks.NewMockCategoryService(ctrl)
	products := mocks.NewMockProductService(ctrl)
	issuer := auth.NewIssuer("test-secret", 10*time.Minute, "catalog-service", "catalog-clients")
	metrics := observability.NewMetricsWithRegistry(prometheus.NewRegistry())

	server := NewServer(categories, products, issuer, nil, nil, metrics, zerolog.Nop(), "catalog-service")

	return &serverFixture{
		categories: categories,
		products:   products,
		issuer:     issuer,
		router:     server.Router(),
	}
}

func (f *serverFixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestListProducts(t *testing.T) {
	f := newServerFixture(t)

	f.products.EXPECT().List(gomock.Any(), 0).Return([]models.Product{
		{ID: 100, Name: "Apple", QuantityInPackage: 1, UnitOfMeasurement: models.UnitOfMeasurementUnity, CategoryID: 100},
	}, nil)

	rec := f.do(http.MethodGet, "/api/products", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var views []productView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&views))
	require.Len(t, views, 1)
	assert.Equal(t, "Apple", views[0].Name)
	assert.Equal(t, "UN", views[0].UnitOfMeasurement)
	assert.Equal(t, 100, views[0].CategoryID)
}

func TestListProductsWithCategoryFilter(t *testing.T) {
	f := newServerFixture(t)

	f.products.EXPECT().List(gomock.Any(), 101).Return(nil, nil)

	rec := f.do(http.MethodGet, "/api/products?categoryId=101", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListProductsInvalidCategoryFilter(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/api/products?categoryId=abc", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body simpleError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, []string{"Invalid category id."}, body.Messages)
}

func TestSaveProduct(t *testing.T) {
	f := newServerFixture(t)

	saved := &models.Product{ID: 100, Name: "Apple", QuantityInPackage: 1, UnitOfMeasurement: models.UnitOfMeasurementUnity, CategoryID: 100}
	f.products.EXPECT().Save(gomock.Any(), gomock.Any()).Return(service.Succeeded(saved))

	rec := f.do(http.MethodPost, "/api/products", `{"categoryId":100,"name":"Apple","quantityInPackage":1,"unitOfMeasurement":1}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var view productView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, 100, view.ID)
	assert.Equal(t, "UN", view.UnitOfMeasurement)
}

func TestSaveProductValidationFailure(t *testing.T) {
	f := newServerFixture(t)

	// categoryId <= 0 must be rejected before the service is invoked.
	rec := f.do(http.MethodPost, "/api/products", `{"categoryId":0,"name":"Apple","quantityInPackage":1,"unitOfMeasurement":1}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var doc errorDocument
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&doc))
	assert.Equal(t, "SaveProductResource", doc.Error.Target)
	assert.Equal(t, "0", doc.Error.Code)
	assert.Equal(t, "Validation errors occurred.", doc.Error.Message)
	require.Len(t, doc.Error.Details, 1)
	assert.Equal(t, "CategoryId", doc.Error.Details[0].Field)
	assert.Equal(t, "6", doc.Error.Details[0].Code)
	assert.Equal(t, "Field value has to be greater than 0.", doc.Error.Details[0].Message)
}

func TestSaveProductNullBody(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodPost, "/api/products", "null")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var doc errorDocument
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&doc))
	require.Len(t, doc.Error.Details, 1)
	assert.Empty(t, doc.Error.Details[0].Field)
	assert.Equal(t, "Model cannot be null.", doc.Error.Details[0].Message)
	assert.Equal(t, "2", doc.Error.Details[0].Code)
}

func TestSaveProductMalformedBody(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodPost, "/api/products", `{"categoryId":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body simpleError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Messages)
}

func TestSaveProductBusinessFailure(t *testing.T) {
	f := newServerFixture(t)

	f.products.EXPECT().Save(gomock.Any(), gomock.Any()).Return(service.Failed[models.Product]("Invalid category."))

	rec := f.do(http.MethodPost, "/api/products", `{"categoryId":999,"name":"Apple","quantityInPackage":1,"unitOfMeasurement":1}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body simpleError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, []string{"Invalid category."}, body.Messages)
}

func TestDeleteProductNotFound(t *testing.T) {
	f := newServerFixture(t)

	f.products.EXPECT().Delete(gomock.Any(), 999).Return(service.Failed[models.Product]("Product not found."))

	rec := f.do(http.MethodDelete, "/api/products/999", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body simpleError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, []string{"Product not found."}, body.Messages)
}

func TestUpdateProductInvalidID(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodPut, "/api/products/abc", `{"categoryId":100,"name":"Apple","quantityInPackage":1,"unitOfMeasurement":1}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body simpleError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, []string{"Invalid product id."}, body.Messages)
}

func TestSaveCategoryValidationFailure(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodPost, "/api/categories", `{"name":""}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var doc errorDocument
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&doc))
	assert.Equal(t, "SaveCategoryResource", doc.Error.Target)
	// Rules fail in declaration order: not-empty first, then length.
	require.Len(t, doc.Error.Details, 2)
	assert.Equal(t, "1", doc.Error.Details[0].Code)
	assert.Equal(t, "InvalidValue", doc.Error.Details[1].Code)
}

func TestUpdateCategory(t *testing.T) {
	f := newServerFixture(t)

	updated := &models.Category{ID: 101, Name: "Dairy Products"}
	f.categories.EXPECT().Update(gomock.Any(), 101, gomock.Any()).Return(service.Succeeded(updated))

	rec := f.do(http.MethodPut, "/api/categories/101", `{"name":"Dairy Products"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var view categoryView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, 101, view.ID)
	assert.Equal(t, "Dairy Products", view.Name)
}

func TestListCategories(t *testing.T) {
	f := newServerFixture(t)

	f.categories.EXPECT().List(gomock.Any()).Return([]models.Category{
		{ID: 100, Name: "Fruits and Vegetables"},
		{ID: 101, Name: "Dairy"},
	}, nil)

	rec := f.do(http.MethodGet, "/api/categories", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var views []categoryView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&views))
	assert.Len(t, views, 2)
}

func TestCreateToken(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodPost, "/token/new", `{"username":"amanda","password":"12345"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body tokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotEmpty(t, body.Token)

	claims, err := f.issuer.Verify(body.Token)
	require.NoError(t, err)
	assert.Equal(t, "amanda", claims["unique_name"])
}

func TestHealth(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}
