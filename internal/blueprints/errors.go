package blueprints

import "errors"

var (
	// ErrCatalogUnavailable is returned when the tool catalog cannot be read.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrValidation is returned for request bodies the engine cannot run on.
	ErrValidation = errors.New("validation failed")
)

// Error codes returned in the error envelope.
const (
	ErrorCodeValidation         = "validation_error"
	ErrorCodeCatalogUnavailable = "catalog_unavailable"
	ErrorCodeInternal           = "internal_error"
	ErrorCodeInvalidJSON        = "invalid_json"
)
