package utils

import "errors"

// Common application errors used across services.
var (
	ErrProductNotFound   = errors.New("PRODUCT_NOT_FOUND")
	ErrCategoryNotFound  = errors.New("CATEGORY_NOT_FOUND")
	ErrRemoteUnavailable = errors.New("REMOTE_CATALOG_UNAVAILABLE")
	ErrMalformedRecord   = errors.New("MALFORMED_RECORD")
)
