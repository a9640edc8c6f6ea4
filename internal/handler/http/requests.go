package http

import (
	"github.com/groceryworks/catalog-service/internal/models"
	"github.com/groceryworks/catalog-service/internal/validation"
)

// saveProductRequest is the body of POST/PUT /api/products.
type saveProductRequest struct {
	CategoryID        int    `json:"categoryId"`
	Name              string `json:"name"`
	QuantityInPackage int    `json:"quantityInPackage"`
	UnitOfMeasurement int16  `json:"unitOfMeasurement"`
}

const saveProductTarget = "SaveProductResource"

var saveProductValidator = validation.New(
	validation.GreaterThan("CategoryId", func(r saveProductRequest) int { return r.CategoryID }, 0),
	validation.NotEmpty("Name", func(r saveProductRequest) string { return r.Name }),
	validation.LengthBetween("Name", func(r saveProductRequest) string { return r.Name }, 1, 50),
	validation.Between("QuantityInPackage", func(r saveProductRequest) int { return r.QuantityInPackage }, 0, 100),
	validation.Between("UnitOfMeasurement", func(r saveProductRequest) int { return int(r.UnitOfMeasurement) }, 1, 5),
)

func (r *saveProductRequest) toModel() *models.Product {
	return &models.Product{
		Name:              r.Name,
		QuantityInPackage: r.QuantityInPackage,
		UnitOfMeasurement: models.UnitOfMeasurement(r.UnitOfMeasurement),
		CategoryID:        r.CategoryID,
	}
}

// saveCategoryRequest is the body of POST/PUT /api/categories.
type saveCategoryRequest struct {
	Name string `json:"name"`
}

const saveCategoryTarget = "SaveCategoryResource"

var saveCategoryValidator = validation.New(
	validation.NotEmpty("Name", func(r saveCategoryRequest) string { return r.Name }),
	validation.LengthBetween("Name", func(r saveCategoryRequest) string { return r.Name }, 1, 30),
)

func (r *saveCategoryRequest) toModel() *models.Category {
	return &models.Category{Name: r.Name}
}

// tokenRequest is the body of POST /token/new.
type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// productView is the wire form of a product. The unit of measurement is
// rendered as its description string.
type productView struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	QuantityInPackage int    `json:"quantityInPackage"`
	UnitOfMeasurement string `json:"unitOfMeasurement"`
	CategoryID        int    `json:"categoryId"`
}

func newProductView(p *models.Product) productView {
	return productView{
		ID:                p.ID,
		Name:              p.Name,
		QuantityInPackage: p.QuantityInPackage,
		UnitOfMeasurement: p.UnitOfMeasurement.Description(),
		CategoryID:        p.CategoryID,
	}
}

func newProductViews(products []models.Product) []productView {
	views := make([]productView, 0, len(products))
	for i := range products {
		views = append(views, newProductView(&products[i]))
	}
	return views
}

// categoryView is the wire form of a category.
type categoryView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func newCategoryView(c *models.Category) categoryView {
	return categoryView{ID: c.ID, Name: c.Name}
}

func newCategoryViews(categories []models.Category) []categoryView {
	views := make([]categoryView, 0, len(categories))
	for i := range categories {
		views = append(views, newCategoryView(&categories[i]))
	}
	return views
}
