package fhir_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/medwire-io/fhir-client/pkg/fhir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponseError_WithOperationOutcome(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"resourceType": "OperationOutcome",
		"issue": [{
			"severity": "error",
			"code": "not-found",
			"diagnostics": "Resource Patient/999 is not known"
		}]
	}`)

	respErr := fhir.ParseResponseError(404, body)

	assert.Equal(t, 404, respErr.StatusCode)
	assert.Equal(t, body, respErr.Body)
	require.NotNil(t, respErr.Outcome)
	require.Len(t, respErr.Outcome.Issue, 1)
	assert.Equal(t, "not-found", respErr.Outcome.Issue[0].Code)
	assert.Contains(t, respErr.Error(), "server returned 404")
	assert.Contains(t, respErr.Error(), "Resource Patient/999 is not known")
}

func TestParseResponseError_WithoutOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body []byte
	}{
		{name: "empty body", body: nil},
		{name: "non-json body", body: []byte("Internal Server Error")},
		{name: "other resource type", body: []byte(`{"resourceType":"Patient"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			respErr := fhir.ParseResponseError(500, tt.body)
			assert.Nil(t, respErr.Outcome)
			assert.Equal(t, "server returned 500", respErr.Error())
		})
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	notFound := fhir.ParseResponseError(404, nil)
	assert.True(t, fhir.IsNotFound(notFound))
	assert.False(t, fhir.IsUnauthorized(notFound))

	// Works through wrapping.
	wrapped := fmt.Errorf("reading resource: %w", notFound)
	assert.True(t, fhir.IsNotFound(wrapped))

	assert.False(t, fhir.IsNotFound(errors.New("plain error")))
	assert.False(t, fhir.IsNotFound(nil))
}

func TestIsUnauthorized(t *testing.T) {
	t.Parallel()

	unauthorized := fhir.ParseResponseError(401, nil)
	assert.True(t, fhir.IsUnauthorized(unauthorized))
	assert.False(t, fhir.IsNotFound(unauthorized))
}

func TestBundleTypeError_Message(t *testing.T) {
	t.Parallel()

	err := &fhir.BundleTypeError{Expected: "transaction", Actual: "batch"}
	assert.Equal(t, `expected bundle type "transaction", got "batch"`, err.Error())
}

func TestMultipleMatchesError_Message(t *testing.T) {
	t.Parallel()

	err := &fhir.MultipleMatchesError{Count: 3}
	assert.Equal(t, "expected exactly one match, got 3", err.Error())
}

func TestBoundExceededError_Message(t *testing.T) {
	t.Parallel()

	err := &fhir.BoundExceededError{Limit: 100, Accumulated: 150}
	assert.Contains(t, err.Error(), "150")
	assert.Contains(t, err.Error(), "100")
}
