package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitOfMeasurementDescription(t *testing.T) {
	tests := []struct {
		unit UnitOfMeasurement
		want string
	}{
		{UnitOfMeasurementUnity, "UN"},
		{UnitOfMeasurementMilligram, "MG"},
		{UnitOfMeasurementGram, "G"},
		{UnitOfMeasurementKilogram, "KG"},
		{UnitOfMeasurementLiter, "L"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.unit.Description())
	}
}

func TestUnitOfMeasurementUnknownDescription(t *testing.T) {
	assert.Empty(t, UnitOfMeasurement(0).Description())
	assert.Empty(t, UnitOfMeasurement(42).Description())
}

func TestUnitOfMeasurementIsValid(t *testing.T) {
	assert.True(t, UnitOfMeasurementUnity.IsValid())
	assert.True(t, UnitOfMeasurementLiter.IsValid())
	assert.False(t, UnitOfMeasurement(0).IsValid())
	assert.False(t, UnitOfMeasurement(6).IsValid())
}
