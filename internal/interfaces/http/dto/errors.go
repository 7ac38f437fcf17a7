package dto

import (
	"net/http"

	"github.com/facturacion/backend/internal/domain/shared"
)

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeRateLimited is used when the rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Domain codes
// travel as-is; PRICE_VARIANCE is a conflict the caller can resolve by
// retrying with the force flag.
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeNotFound:      http.StatusNotFound,
	shared.CodeAlreadyExists: http.StatusConflict,
	shared.CodeInvalidInput:  http.StatusBadRequest,
	shared.CodeInvalidDate:   http.StatusBadRequest,
	shared.CodePriceVariance: http.StatusConflict,
	shared.CodeHasStock:      http.StatusUnprocessableEntity,

	"INVALID_PRODUCT":  http.StatusBadRequest,
	"INVALID_COST":     http.StatusBadRequest,
	"INVALID_PRICE":    http.StatusBadRequest,
	"INVALID_QUANTITY": http.StatusBadRequest,

	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes fall back to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
