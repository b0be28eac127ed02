package chapa

import "time"

const (
	// DefaultBaseURL is the production Chapa API host.
	DefaultBaseURL = "https://api.chapa.co"

	// DefaultAPIVersion is the API version segment used in request paths.
	DefaultAPIVersion = "v1"

	// DefaultTimeout applies to the built-in HTTP client when no custom
	// transport is supplied.
	DefaultTimeout = 30 * time.Second
)

// Envelope status values the API reports.
const (
	statusSuccess = "success"
	statusFailed  = "failed"
)
