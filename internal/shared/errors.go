package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Storage errors
	ErrNotFound  = fmt.Errorf("not found")
	ErrMalformed = fmt.Errorf("malformed storage file")

	// Configuration errors
	ErrMissingConfig   = fmt.Errorf("configuration not found")
	ErrInvalidConfig   = fmt.Errorf("invalid configuration")
	ErrMissingAPIKey   = fmt.Errorf("missing api key")
	ErrUnknownProvider = fmt.Errorf("unknown provider")

	// Provider errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
	ErrAborted         = fmt.Errorf("aborted")
)
