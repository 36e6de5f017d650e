// Package client provides the concrete FHIR client implementation.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/medwire-io/fhir-client/internal/auth"
	"github.com/medwire-io/fhir-client/internal/constants"
	internalhttp "github.com/medwire-io/fhir-client/internal/http"
	"github.com/medwire-io/fhir-client/pkg/fhir"
)

// Client implements the fhir.Client interface.
type Client struct {
	httpClient  *internalhttp.Client
	executor    *executor
	cache       fhir.Cache
	version     fhir.Version
	maxFetchAll int
	logger      fhir.Logger
}

// New creates a new FHIR client. The version token is normalized once
// here; an unrecognized token fails construction.
func New(config *fhir.Config) (*Client, error) {
	if config == nil {
		return nil, fhir.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, fhir.ErrBaseURLRequired
	}

	versionToken := config.Version
	if versionToken == "" {
		versionToken = "R4"
	}

	version, err := fhir.NormalizeVersion(versionToken)
	if err != nil {
		return nil, err
	}

	cache, cacheTTL, err := buildCache(config)
	if err != nil {
		return nil, err
	}

	httpClient := internalhttp.NewClient(config.BaseURL, buildCredentials(config), buildHTTPOptions(config, version)...)

	maxFetchAll := config.MaxFetchAllResults
	if maxFetchAll <= 0 {
		maxFetchAll = constants.DefaultMaxFetchAllResults
	}

	return &Client{
		httpClient:  httpClient,
		executor:    newExecutor(httpClient, cache, cacheTTL, version),
		cache:       cache,
		version:     version,
		maxFetchAll: maxFetchAll,
		logger:      config.Logger,
	}, nil
}

// buildCredentials picks the credential provider from config.
func buildCredentials(config *fhir.Config) auth.CredentialProvider {
	if config.Token != "" {
		return auth.NewStaticToken(config.Token)
	}

	if config.Username != "" {
		return auth.NewBasicCredentials(config.Username, config.Password)
	}

	return nil // No authentication
}

// buildCache creates the response cache. Caching is disabled (always
// miss) unless explicitly configured.
func buildCache(config *fhir.Config) (fhir.Cache, time.Duration, error) {
	if config.Cache == nil {
		return fhir.NewNoOpCache(), constants.DefaultCacheTTL, nil
	}

	cache, err := fhir.NewCacheFromConfig(config.Cache)
	if err != nil {
		return nil, 0, err
	}

	ttl := config.Cache.TTL
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}

	return cache, ttl, nil
}

// buildHTTPOptions builds transport options from config.
func buildHTTPOptions(config *fhir.Config, version fhir.Version) []internalhttp.Option {
	// Custom headers merge under the computed protocol headers, never
	// over them.
	headers := make(map[string]string, len(config.CustomHeaders)+1)
	for key, value := range config.CustomHeaders {
		headers[key] = value
	}

	headers["Accept"] = version.MIMEType()

	opts := []internalhttp.Option{internalhttp.WithDefaultHeaders(headers)}

	if config.Timeout > 0 {
		opts = append(opts, internalhttp.WithTimeout(config.Timeout))
	}

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		waitMin := constants.DefaultRetryWaitMin
		waitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			waitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			waitMax = config.RetryWaitMax
		}

		opts = append(opts, internalhttp.WithRetryConfig(config.RetryMax, waitMin, waitMax))
	}

	return opts
}

// Version returns the canonical FHIR version the client negotiates.
func (c *Client) Version() fhir.Version {
	return c.version
}

// Cache returns the response cache backend.
func (c *Client) Cache() fhir.Cache {
	return c.cache
}

// Capabilities implements fhir.Client.Capabilities.
func (c *Client) Capabilities(ctx context.Context, opts *fhir.RequestOptions) (fhir.Resource, error) {
	resp, err := c.executor.do(ctx, &internalhttp.Request{
		Method: "GET",
		Path:   "metadata",
	}, noCache(opts))
	if err != nil {
		return nil, fmt.Errorf("getting capability statement: %w", err)
	}

	return parseResource(resp.Body, "capability statement")
}

// Transaction implements fhir.Client.Transaction. The bundle type is
// checked before any network call.
func (c *Client) Transaction(ctx context.Context, bundle *fhir.Bundle) (*fhir.Bundle, error) {
	return c.submitBundle(ctx, bundle, fhir.BundleTypeTransaction)
}

// Batch implements fhir.Client.Batch. The bundle type is checked before
// any network call.
func (c *Client) Batch(ctx context.Context, bundle *fhir.Bundle) (*fhir.Bundle, error) {
	return c.submitBundle(ctx, bundle, fhir.BundleTypeBatch)
}

func (c *Client) submitBundle(ctx context.Context, bundle *fhir.Bundle, expectedType string) (*fhir.Bundle, error) {
	if bundle == nil {
		return nil, fhir.ErrMissingBundle
	}

	if bundle.Type != expectedType {
		return nil, &fhir.BundleTypeError{Expected: expectedType, Actual: bundle.Type}
	}

	resp, err := c.executor.do(ctx, &internalhttp.Request{
		Method: "POST",
		Path:   "",
		Body:   bundle,
	}, false)
	if err != nil {
		return nil, fmt.Errorf("submitting %s bundle: %w", expectedType, err)
	}

	return parseBundle(resp.Body)
}

func noCache(opts *fhir.RequestOptions) bool {
	return opts != nil && opts.NoCache
}

func parseResource(body []byte, what string) (fhir.Resource, error) {
	var resource fhir.Resource
	if err := json.Unmarshal(body, &resource); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", what, err)
	}

	return resource, nil
}

func parseBundle(body []byte) (*fhir.Bundle, error) {
	var bundle fhir.Bundle
	if err := json.Unmarshal(body, &bundle); err != nil {
		return nil, fmt.Errorf("parsing bundle response: %w", err)
	}

	return &bundle, nil
}
