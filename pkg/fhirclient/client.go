// Package fhirclient provides the main entry point for creating FHIR
// API clients.
package fhirclient

import (
	"fmt"
	"strings"

	"github.com/medwire-io/fhir-client/internal/client"
	"github.com/medwire-io/fhir-client/pkg/fhir"
)

// New creates a new FHIR client from configuration. The base URL is
// normalized by trimming a trailing slash and adding "https://" when no
// scheme is present.
func New(config *fhir.Config) (fhir.Client, error) {
	if config == nil {
		return nil, fhir.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, fhir.ErrBaseURLRequired
	}

	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	config.BaseURL = baseURL

	fhirClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return fhirClient, nil
}
