package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saveProduct struct {
	Name       string
	CategoryID int
	Quantity   int
}

func productValidator() *Validator[saveProduct] {
	return New(
		GreaterThan[saveProduct]("CategoryId", func(p saveProduct) int { return p.CategoryID }, 0),
		NotEmpty[saveProduct]("Name", func(p saveProduct) string { return p.Name }),
		LengthBetween[saveProduct]("Name", func(p saveProduct) string { return p.Name }, 1, 50),
		Between[saveProduct]("QuantityInPackage", func(p saveProduct) int { return p.Quantity }, 0, 100),
	)
}

func TestValidate_NilCandidate(t *testing.T) {
	failures := productValidator().Validate(nil)

	require.Len(t, failures, 1)
	assert.Empty(t, failures[0].Field)
	assert.Equal(t, "Model cannot be null.", failures[0].Message)
	assert.Equal(t, FieldNull.Code, failures[0].Code)
}

func TestValidate_Valid(t *testing.T) {
	failures := productValidator().Validate(&saveProduct{Name: "Apple", CategoryID: 100, Quantity: 1})

	assert.Empty(t, failures)
}

func TestValidate_CategoryIDNotGreaterThanZero(t *testing.T) {
	for _, categoryID := range []int{0, -1, -100} {
		failures := productValidator().Validate(&saveProduct{Name: "Apple", CategoryID: categoryID, Quantity: 1})

		require.Len(t, failures, 1)
		assert.Equal(t, "CategoryId", failures[0].Field)
		assert.Equal(t, "6", failures[0].Code)
		assert.Equal(t, "Field value has to be greater than 0.", failures[0].Message)
	}
}

func TestValidate_FailuresFollowDeclarationOrder(t *testing.T) {
	failures := productValidator().Validate(&saveProduct{Name: "", CategoryID: 0, Quantity: 500})

	// CategoryId rule is declared first, then both Name rules, then quantity.
	require.Len(t, failures, 4)
	assert.Equal(t, "CategoryId", failures[0].Field)
	assert.Equal(t, FieldEmpty.Code, failures[1].Code)
	assert.Equal(t, FieldInvalid.Code, failures[2].Code)
	assert.Equal(t, "QuantityInPackage", failures[3].Field)
	assert.Equal(t, "Field value has to be between 0 and 100", failures[3].Message)
}

func TestValidate_LengthBetween(t *testing.T) {
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}

	failures := productValidator().Validate(&saveProduct{Name: string(long), CategoryID: 1, Quantity: 1})

	require.Len(t, failures, 1)
	assert.Equal(t, "Name", failures[0].Field)
	assert.Equal(t, "Field length has to be between 1 and 50", failures[0].Message)
}

func TestValidate_UniquePredicateInjected(t *testing.T) {
	taken := map[string]bool{"Dairy": true}
	v := New(
		Unique[saveProduct]("Name", func(p saveProduct) bool { return !taken[p.Name] }),
	)

	failures := v.Validate(&saveProduct{Name: "Dairy"})
	require.Len(t, failures, 1)
	assert.Equal(t, FieldNotUnique.Code, failures[0].Code)
	assert.Equal(t, "Field has to be unique.", failures[0].Message)

	assert.Empty(t, v.Validate(&saveProduct{Name: "Bakery"}))
}

func TestErrorCodes_ParametrizedMessages(t *testing.T) {
	assert.Equal(t, "6", FieldNotGreater(0).Code)
	assert.Equal(t, "Field value has to be greater than 10.", FieldNotGreater(10).Message)
	assert.Equal(t, "7", FieldNotGreaterOrEqual(1).Code)
	assert.Equal(t, "8", FieldNotLess(5).Code)
	assert.Equal(t, "Field value has to be less than or equal to 9.", FieldNotLessOrEqual(9).Message)

	// Code stays stable across parameter values.
	assert.Equal(t, FieldNotGreater(0).Code, FieldNotGreater(42).Code)
}
