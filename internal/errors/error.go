// Package errors provides custom error types for product-related operations.
package errors

import (
	"errors"
	"fmt"
)

var ErrProductNotFound = errors.New("product not found")

// ErrUnknownProductType is returned when a stored document carries a type tag
// that does not map to a product variant. It wraps ErrProductNotFound, so callers
// that only care about absence can keep checking for ErrProductNotFound.
var ErrUnknownProductType = fmt.Errorf("%w: unknown product type", ErrProductNotFound)

var ErrNilProduct = errors.New("product is nil")
