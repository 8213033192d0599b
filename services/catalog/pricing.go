package catalog

import (
	"fmt"
	"math"

	"servify/models"
)

// PriceOutOfRangeError reports a submitted price outside its subcategory's
// price band.
type PriceOutOfRangeError struct {
	Min       float64
	Max       float64
	Submitted float64
}

func (e *PriceOutOfRangeError) Error() string {
	return fmt.Sprintf("Price must be between %v and %v", e.Min, e.Max)
}

// InvalidPriceBandError reports a subcategory band where min does not sit
// strictly below max.
type InvalidPriceBandError struct {
	Min float64
	Max float64
}

func (e *InvalidPriceBandError) Error() string {
	return "Minimum price must be less than maximum price"
}

// ValidatePrice checks a submitted offering price against its subcategory's
// band. It succeeds iff min_price <= price <= max_price. Callers must reject
// the write before it reaches persistence on failure.
func ValidatePrice(price float64, subcategory models.Subcategory) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return fmt.Errorf("price must be a finite number")
	}
	if price < 0 {
		return fmt.Errorf("price must be non-negative")
	}
	if price < subcategory.MinPrice || price > subcategory.MaxPrice {
		return &PriceOutOfRangeError{
			Min:       subcategory.MinPrice,
			Max:       subcategory.MaxPrice,
			Submitted: price,
		}
	}
	return nil
}

// ValidatePriceBand checks the subcategory band itself: both bounds
// non-negative and min strictly below max.
func ValidatePriceBand(minPrice, maxPrice float64) error {
	if math.IsNaN(minPrice) || math.IsInf(minPrice, 0) || math.IsNaN(maxPrice) || math.IsInf(maxPrice, 0) {
		return fmt.Errorf("price bounds must be finite numbers")
	}
	if minPrice < 0 || maxPrice < 0 {
		return fmt.Errorf("price bounds must be non-negative")
	}
	if minPrice >= maxPrice {
		return &InvalidPriceBandError{Min: minPrice, Max: maxPrice}
	}
	return nil
}
