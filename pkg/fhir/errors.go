package fhir

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired         = errors.New("config is required")
	ErrBaseURLRequired        = errors.New("base URL is required")
	ErrMissingResourceType    = errors.New("resource type is required")
	ErrMissingResourceID      = errors.New("resource id is required")
	ErrMissingResource        = errors.New("resource is required")
	ErrMissingBundle          = errors.New("bundle is required")
	ErrNoMatch                = errors.New("no resource matched the given criteria")
	ErrMalformedResource      = errors.New("matched resource has neither a resource type nor an id")
	ErrCacheKeyNotFound       = errors.New("key not found")
	ErrCacheEntryExpired      = errors.New("entry expired")
	ErrCacheDisabled          = errors.New("cache disabled")
	ErrUnsupportedCacheType   = errors.New("unsupported cache type")
	ErrNATSConfigRequired     = errors.New("NATS configuration required for NATS cache")
	ErrEmptyPatch             = errors.New("patch must contain at least one operation")
)

// UnsupportedVersionError reports a FHIR version token that is not part
// of the accepted set. The offending token is preserved verbatim.
type UnsupportedVersionError struct {
	Token string
}

// Error implements the error interface.
func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported FHIR version: %q", e.Token)
}

// BundleTypeError reports a bundle submitted to an operation that
// requires a different bundle type. The request is never sent.
type BundleTypeError struct {
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *BundleTypeError) Error() string {
	return fmt.Sprintf("expected bundle type %q, got %q", e.Expected, e.Actual)
}

// MultipleMatchesError reports a resolve that matched more than one
// resource.
type MultipleMatchesError struct {
	Count int
}

// Error implements the error interface.
func (e *MultipleMatchesError) Error() string {
	return fmt.Sprintf("expected exactly one match, got %d", e.Count)
}

// BoundExceededError reports a fetch-all search that accumulated more
// resources than the effective bound allows.
type BoundExceededError struct {
	Limit       int
	Accumulated int
}

// Error implements the error interface.
func (e *BoundExceededError) Error() string {
	return fmt.Sprintf("too many results: accumulated %d resources, limit is %d", e.Accumulated, e.Limit)
}

// OperationOutcomeIssue is a single issue reported by the server.
type OperationOutcomeIssue struct {
	Severity    string `json:"severity"    yaml:"severity"`
	Code        string `json:"code"        yaml:"code"`
	Diagnostics string `json:"diagnostics" yaml:"diagnostics"`
}

// OperationOutcome is the FHIR error envelope returned with non-2xx
// responses.
type OperationOutcome struct {
	ResourceType string                  `json:"resourceType" yaml:"resourceType"`
	Issue        []OperationOutcomeIssue `json:"issue"        yaml:"issue"`
}

// ResponseError represents a non-2xx response from the server. It is an
// opaque passthrough: the client does not reinterpret or retry it.
type ResponseError struct {
	StatusCode int
	Body       []byte
	Outcome    *OperationOutcome
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if e.Outcome != nil && len(e.Outcome.Issue) > 0 {
		issue := e.Outcome.Issue[0]

		return fmt.Sprintf("server returned %d: %s: %s", e.StatusCode, issue.Code, issue.Diagnostics)
	}

	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// ParseResponseError builds a ResponseError from a response body,
// extracting the OperationOutcome when one is present.
func ParseResponseError(statusCode int, body []byte) *ResponseError {
	respErr := &ResponseError{
		StatusCode: statusCode,
		Body:       body,
	}

	var outcome OperationOutcome
	if err := json.Unmarshal(body, &outcome); err == nil && outcome.ResourceType == "OperationOutcome" {
		respErr.Outcome = &outcome
	}

	return respErr
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode == 404
	}

	return false
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode == 401
	}

	return false
}
