package error

import "net/http"

type ErrorCode string

const (
	UnknownError        ErrorCode = "unknown_error"
	InternalServerError ErrorCode = "internal_server_error"
	BadRequest          ErrorCode = "bad_request"
	UnprocessibleEntity ErrorCode = "unprocessible_entity"
	RecipeNotFound      ErrorCode = "recipe_not_found"
	StoreUnavailable    ErrorCode = "store_unavailable"
	UpstreamUnavailable ErrorCode = "upstream_unavailable"
	UpstreamMalformed   ErrorCode = "upstream_malformed"
)

var errorCodeToStatusCode = map[ErrorCode]int{
	UnknownError:        0, // No error code - unknown
	InternalServerError: http.StatusInternalServerError,
	BadRequest:          http.StatusBadRequest,
	UnprocessibleEntity: http.StatusUnprocessableEntity,
	RecipeNotFound:      http.StatusNotFound,
	StoreUnavailable:    http.StatusServiceUnavailable,
	UpstreamUnavailable: http.StatusBadGateway,
	UpstreamMalformed:   http.StatusBadGateway,
}

func (ec ErrorCode) StatusCode() int {
	return errorCodeToStatusCode[ec]
}

func (ec ErrorCode) String() string {
	return string(ec)
}
