package errors

import "net/http"

// Messages carried in the error envelope, one per status the API emits.
const (
	MsgBadRequest       = "Bad request"
	MsgNotFound         = "Resource not found"
	MsgMethodNotAllowed = "Method not allowed"
	MsgUnprocessable    = "Unprocessable"
	MsgInternalError    = "Internal server error"
	MsgUpstreamError    = "Upstream dependency unavailable"
)

// Builder renders the envelope for a single status code.
type Builder func() ErrorResponse

func build(status int, message string) Builder {
	return func() ErrorResponse {
		return ErrorResponse{Success: false, Error: status, Message: message}
	}
}

// builders is the flat status -> response mapping; every status is registered here.
var builders = map[int]Builder{
	http.StatusBadRequest:          build(http.StatusBadRequest, MsgBadRequest),
	http.StatusNotFound:            build(http.StatusNotFound, MsgNotFound),
	http.StatusMethodNotAllowed:    build(http.StatusMethodNotAllowed, MsgMethodNotAllowed),
	http.StatusUnprocessableEntity: build(http.StatusUnprocessableEntity, MsgUnprocessable),
	http.StatusInternalServerError: build(http.StatusInternalServerError, MsgInternalError),
	http.StatusBadGateway:          build(http.StatusBadGateway, MsgUpstreamError),
}

// Lookup returns the builder registered for status. Unregistered codes fall back
// to the standard status text.
func Lookup(status int) Builder {
	if b, ok := builders[status]; ok {
		return b
	}
	return build(status, http.StatusText(status))
}
