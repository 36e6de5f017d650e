package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits for the transport layer. Retries are off unless the
// caller opts in via Config.RetryMax.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Response cache defaults.
const (
	// DefaultCacheSize is the maximum number of cached responses.
	DefaultCacheSize = 100

	// DefaultCacheTTL is how long a cached response stays fresh.
	DefaultCacheTTL = 5 * time.Minute
)

// Pagination defaults.
const (
	// DefaultMaxFetchAllResults bounds how many resources a fetch-all
	// search may accumulate before it fails.
	DefaultMaxFetchAllResults = 10000
)

// Wire format.
const (
	// FHIRMIMEType is the base media type for FHIR JSON exchanges.
	FHIRMIMEType = "application/fhir+json"

	// FormMIMEType is the media type for POST-based searches.
	FormMIMEType = "application/x-www-form-urlencoded"

	// JSONPatchMIMEType is the media type for patch requests.
	JSONPatchMIMEType = "application/json-patch+json"

	// SearchSuffix is the sub-path for POST-based searches.
	SearchSuffix = "/_search"
)
