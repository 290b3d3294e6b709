// internal/services/errors.go
package services

import "errors"

// Sentinel errors for the pipeline error taxonomy. Handlers map these onto
// HTTP status codes; anything unrecognized surfaces as a 500.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidAction     = errors.New("invalid feedback action")
	ErrProductNotFound   = errors.New("product not found")
	ErrKeywordNotFound   = errors.New("keyword not found")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrProductNotReady   = errors.New("product is not approved for listing")
	ErrUpstream          = errors.New("upstream service error")
)
