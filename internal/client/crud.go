package client

import (
	"context"
	"fmt"

	"github.com/medwire-io/fhir-client/internal/constants"
	internalhttp "github.com/medwire-io/fhir-client/internal/http"
	"github.com/medwire-io/fhir-client/pkg/fhir"
)

// Read implements fhir.Client.Read.
func (c *Client) Read(ctx context.Context, resourceType, id string, opts *fhir.RequestOptions) (fhir.Resource, error) {
	if err := requireTypeAndID(resourceType, id); err != nil {
		return nil, err
	}

	resp, err := c.executor.do(ctx, &internalhttp.Request{
		Method: "GET",
		Path:   resourceType + "/" + id,
	}, noCache(opts))
	if err != nil {
		return nil, fmt.Errorf("reading %s/%s: %w", resourceType, id, err)
	}

	return parseResource(resp.Body, "read")
}

// VRead implements fhir.Client.VRead.
func (c *Client) VRead(ctx context.Context, resourceType, id, versionID string, opts *fhir.RequestOptions) (fhir.Resource, error) {
	if err := requireTypeAndID(resourceType, id); err != nil {
		return nil, err
	}

	if versionID == "" {
		return nil, fmt.Errorf("vread %s/%s: %w", resourceType, id, fhir.ErrMissingResourceID)
	}

	resp, err := c.executor.do(ctx, &internalhttp.Request{
		Method: "GET",
		Path:   resourceType + "/" + id + "/_history/" + versionID,
	}, noCache(opts))
	if err != nil {
		return nil, fmt.Errorf("reading %s/%s version %s: %w", resourceType, id, versionID, err)
	}

	return parseResource(resp.Body, "vread")
}

// History implements fhir.Client.History.
func (c *Client) History(ctx context.Context, resourceType, id string, opts *fhir.RequestOptions) (*fhir.Bundle, error) {
	if err := requireTypeAndID(resourceType, id); err != nil {
		return nil, err
	}

	resp, err := c.executor.do(ctx, &internalhttp.Request{
		Method: "GET",
		Path:   resourceType + "/" + id + "/_history",
	}, noCache(opts))
	if err != nil {
		return nil, fmt.Errorf("reading history of %s/%s: %w", resourceType, id, err)
	}

	return parseBundle(resp.Body)
}

// Create implements fhir.Client.Create.
func (c *Client) Create(ctx context.Context, resourceType string, resource fhir.Resource) (fhir.Resource, error) {
	if resourceType == "" {
		return nil, fhir.ErrMissingResourceType
	}

	if resource == nil {
		return nil, fhir.ErrMissingResource
	}

	resp, err := c.executor.do(ctx, &internalhttp.Request{
		Method: "POST",
		Path:   resourceType,
		Body:   resource,
	}, false)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", resourceType, err)
	}

	return parseResource(resp.Body, "create")
}

// Update implements fhir.Client.Update. Validation happens before any
// network call.
func (c *Client) Update(ctx context.Context, resourceType, id string, resource fhir.Resource) (fhir.Resource, error) {
	if err := requireTypeAndID(resourceType, id); err != nil {
		return nil, err
	}

	if resource == nil {
		return nil, fhir.ErrMissingResource
	}

	resp, err := c.executor.do(ctx, &internalhttp.Request{
		Method: "PUT",
		Path:   resourceType + "/" + id,
		Body:   resource,
	}, false)
	if err != nil {
		return nil, fmt.Errorf("updating %s/%s: %w", resourceType, id, err)
	}

	return parseResource(resp.Body, "update")
}

// Patch implements fhir.Client.Patch. The patch document travels with
// its own media type, not the protocol content type.
func (c *Client) Patch(ctx context.Context, resourceType, id string, patch []fhir.PatchOperation) (fhir.Resource, error) {
	if err := requireTypeAndID(resourceType, id); err != nil {
		return nil, err
	}

	if len(patch) == 0 {
		return nil, fhir.ErrEmptyPatch
	}

	resp, err := c.executor.do(ctx, &internalhttp.Request{
		Method: "PATCH",
		Path:   resourceType + "/" + id,
		Body:   patch,
		Headers: map[string]string{
			"Content-Type": constants.JSONPatchMIMEType,
		},
	}, false)
	if err != nil {
		return nil, fmt.Errorf("patching %s/%s: %w", resourceType, id, err)
	}

	return parseResource(resp.Body, "patch")
}

// Delete implements fhir.Client.Delete.
func (c *Client) Delete(ctx context.Context, resourceType, id string) error {
	if err := requireTypeAndID(resourceType, id); err != nil {
		return err
	}

	_, err := c.executor.do(ctx, &internalhttp.Request{
		Method: "DELETE",
		Path:   resourceType + "/" + id,
	}, false)
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", resourceType, id, err)
	}

	return nil
}

func requireTypeAndID(resourceType, id string) error {
	if resourceType == "" {
		return fhir.ErrMissingResourceType
	}

	if id == "" {
		return fhir.ErrMissingResourceID
	}

	return nil
}
