package models

// UnitOfMeasurement identifies how a product quantity is measured
type UnitOfMeasurement int16

const (
	UnitOfMeasurementUnity     UnitOfMeasurement = 1
	UnitOfMeasurementMilligram UnitOfMeasurement = 2
	UnitOfMeasurementGram      UnitOfMeasurement = 3
	UnitOfMeasurementKilogram  UnitOfMeasurement = 4
	UnitOfMeasurementLiter     UnitOfMeasurement = 5
)

// unitDescriptions maps each unit to its short label. The mapping is built
// at compile time; there is no runtime attribute lookup.
var unitDescriptions = map[UnitOfMeasurement]string{
	UnitOfMeasurementUnity:     "UN",
	UnitOfMeasurementMilligram: "MG",
	UnitOfMeasurementGram:      "G",
	UnitOfMeasurementKilogram:  "KG",
	UnitOfMeasurementLiter:     "L",
}

// Description returns the short label for the unit ("UN", "KG", ...).
// Unknown values fall back to an empty string.
func (u UnitOfMeasurement) Description() string {
	return unitDescriptions[u]
}

// IsValid reports whether u is a declared unit variant.
func (u UnitOfMeasurement) IsValid() bool {
	_, ok := unitDescriptions[u]
	return ok
}

// Product is a single catalog item. CategoryID is a required foreign key
// into Category; the relationship is enforced at the persistence boundary.
type Product struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	QuantityInPackage int               `json:"quantity_in_package"`
	UnitOfMeasurement UnitOfMeasurement `json:"unit_of_measurement"`
	CategoryID        int               `json:"category_id"`
}
