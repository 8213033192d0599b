package catalog

import (
	"math"
	"testing"

	"servify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func band(min, max float64) models.Subcategory {
	return models.Subcategory{ID: "sub1", MinPrice: min, MaxPrice: max}
}

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		min     float64
		max     float64
		wantErr bool
	}{
		{"inside band", 150, 60, 200, false},
		{"at lower bound", 60, 60, 200, false},
		{"at upper bound", 200, 60, 200, false},
		{"below band", 50, 60, 200, true},
		{"above band", 250, 60, 200, true},
		{"zero price in zero-min band", 0, 0, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrice(tt.price, band(tt.min, tt.max))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePrice_ReportsBounds(t *testing.T) {
	err := ValidatePrice(50, band(60, 200))
	require.Error(t, err)

	var rangeErr *PriceOutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 60.0, rangeErr.Min)
	assert.Equal(t, 200.0, rangeErr.Max)
	assert.Equal(t, 50.0, rangeErr.Submitted)
	assert.Equal(t, "Price must be between 60 and 200", rangeErr.Error())
}

func TestValidatePrice_RejectsNonFiniteAndNegative(t *testing.T) {
	assert.Error(t, ValidatePrice(math.NaN(), band(0, 100)))
	assert.Error(t, ValidatePrice(math.Inf(1), band(0, 100)))
	assert.Error(t, ValidatePrice(-1, band(0, 100)))
}

func TestValidatePriceBand(t *testing.T) {
	assert.NoError(t, ValidatePriceBand(10, 20))

	err := ValidatePriceBand(20, 10)
	require.Error(t, err)
	assert.Equal(t, "Minimum price must be less than maximum price", err.Error())

	// Equal bounds are rejected: the band must be a real interval.
	assert.Error(t, ValidatePriceBand(10, 10))
	assert.Error(t, ValidatePriceBand(-5, 10))
	assert.Error(t, ValidatePriceBand(0, math.Inf(1)))
}
