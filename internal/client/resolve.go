package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/medwire-io/fhir-client/pkg/fhir"
)

// Resolve implements fhir.Client.Resolve. Without explicit parameters a
// target shaped "Type/id" is treated as a direct read; anything else is
// a single-page search that must yield exactly one match. The
// disambiguation is purely syntactic.
func (c *Client) Resolve(ctx context.Context, target string, params *fhir.SearchParams) (fhir.Resource, error) {
	if params == nil {
		if resourceType, id, ok := splitReference(target); ok {
			return c.Read(ctx, resourceType, id, nil)
		}
	}

	bundle, err := c.Search(ctx, target, params, nil)
	if err != nil {
		return nil, err
	}

	matches := matchedResources(bundle)

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("resolving %q: %w", target, fhir.ErrNoMatch)
	case 1:
		resource := matches[0]
		if resource.ResourceType() == "" && resource.ID() == "" {
			return nil, fmt.Errorf("resolving %q: %w", target, fhir.ErrMalformedResource)
		}

		return resource, nil
	default:
		return nil, fmt.Errorf("resolving %q: %w", target, &fhir.MultipleMatchesError{Count: len(matches)})
	}
}

// ResolveReference implements fhir.Client.ResolveReference.
func (c *Client) ResolveReference(ctx context.Context, target string, params *fhir.SearchParams) (string, error) {
	resource, err := c.Resolve(ctx, target, params)
	if err != nil {
		return "", err
	}

	reference := resource.Reference()
	if reference == "" {
		return "", fmt.Errorf("resolving %q: %w", target, fhir.ErrMalformedResource)
	}

	return reference, nil
}

// ResolveID implements fhir.Client.ResolveID.
func (c *Client) ResolveID(ctx context.Context, target string, params *fhir.SearchParams) (string, error) {
	resource, err := c.Resolve(ctx, target, params)
	if err != nil {
		return "", err
	}

	id := resource.ID()
	if id == "" {
		return "", fmt.Errorf("resolving %q: %w", target, fhir.ErrMalformedResource)
	}

	return id, nil
}

// splitReference reports whether target has the literal "Type/id"
// shape: a single slash separating two non-empty segments and no query
// marker.
func splitReference(target string) (resourceType, id string, ok bool) {
	if strings.Contains(target, "?") {
		return "", "", false
	}

	resourceType, id, found := strings.Cut(target, "/")
	if !found || resourceType == "" || id == "" || strings.Contains(id, "/") {
		return "", "", false
	}

	return resourceType, id, true
}

// matchedResources keeps entries that carry a resource payload and are
// not explicitly tagged as an outcome. Entries with no search mode, or
// a "match" mode, count as matches.
func matchedResources(bundle *fhir.Bundle) []fhir.Resource {
	var matches []fhir.Resource

	for _, entry := range bundle.Entry {
		if entry.Resource == nil {
			continue
		}

		if entry.Search != nil && entry.Search.Mode == "outcome" {
			continue
		}

		matches = append(matches, entry.Resource)
	}

	return matches
}
