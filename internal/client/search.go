package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/medwire-io/fhir-client/internal/constants"
	internalhttp "github.com/medwire-io/fhir-client/internal/http"
	"github.com/medwire-io/fhir-client/pkg/fhir"
)

// Search implements fhir.Client.Search.
func (c *Client) Search(ctx context.Context, target string, params *fhir.SearchParams, opts *fhir.SearchOptions) (*fhir.Bundle, error) {
	if target == "" {
		return nil, fhir.ErrMissingResourceType
	}

	base, rawQuery, _ := strings.Cut(target, "?")

	merged, err := fhir.MergeQuery(rawQuery, params)
	if err != nil {
		return nil, fmt.Errorf("merging search parameters for %q: %w", target, err)
	}

	req := &internalhttp.Request{
		Method: "GET",
		Path:   base,
		Query:  merged.URLValues(),
	}

	if opts != nil && opts.AsPost {
		// Form submission carries the standard form media type; the
		// protocol content type is only for resource bodies.
		path := base
		if !strings.HasSuffix(path, constants.SearchSuffix) {
			path += constants.SearchSuffix
		}

		req = &internalhttp.Request{
			Method: "POST",
			Path:   path,
			Form:   merged.URLValues(),
		}
	}

	resp, err := c.executor.do(ctx, req, opts != nil && opts.NoCache)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", target, err)
	}

	return parseBundle(resp.Body)
}

// SearchAll implements fhir.Client.SearchAll. The effective bound is
// the per-call MaxResults when given, otherwise the client-level limit.
func (c *Client) SearchAll(ctx context.Context, target string, params *fhir.SearchParams, opts *fhir.SearchOptions) ([]fhir.Resource, error) {
	first, err := c.Search(ctx, target, params, opts)
	if err != nil {
		return nil, err
	}

	bound := c.maxFetchAll
	if opts != nil && opts.MaxResults > 0 {
		bound = opts.MaxResults
	}

	skipCache := opts != nil && opts.NoCache

	return fhir.WalkPages(ctx, first, func(ctx context.Context, pageURL string) (*fhir.Bundle, error) {
		return c.fetchPage(ctx, pageURL, skipCache)
	}, bound)
}

// fetchPage fetches one pagination page. The next link is a complete
// absolute reference, so no parameters are attached.
func (c *Client) fetchPage(ctx context.Context, pageURL string, skipCache bool) (*fhir.Bundle, error) {
	resp, err := c.executor.do(ctx, &internalhttp.Request{
		Method: "GET",
		Path:   pageURL,
	}, skipCache)
	if err != nil {
		return nil, fmt.Errorf("fetching page %q: %w", pageURL, err)
	}

	return parseBundle(resp.Body)
}
