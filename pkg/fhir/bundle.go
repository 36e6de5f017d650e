package fhir

import "github.com/google/uuid"

// BundleBuilder assembles transaction and batch bundles. Entries with a
// body get a urn:uuid fullUrl so they can reference each other before
// the server assigns ids.
type BundleBuilder struct {
	bundle *Bundle
}

// NewTransactionBundle starts a transaction bundle builder.
func NewTransactionBundle() *BundleBuilder {
	return newBundleBuilder(BundleTypeTransaction)
}

// NewBatchBundle starts a batch bundle builder.
func NewBatchBundle() *BundleBuilder {
	return newBundleBuilder(BundleTypeBatch)
}

func newBundleBuilder(bundleType string) *BundleBuilder {
	return &BundleBuilder{
		bundle: &Bundle{
			ResourceType: "Bundle",
			Type:         bundleType,
		},
	}
}

// Create adds a POST entry for the resource.
func (b *BundleBuilder) Create(resource Resource) *BundleBuilder {
	b.bundle.Entry = append(b.bundle.Entry, BundleEntry{
		FullURL:  "urn:uuid:" + uuid.NewString(),
		Resource: resource,
		Request: &BundleEntryRequest{
			Method: "POST",
			URL:    resource.ResourceType(),
		},
	})

	return b
}

// Update adds a PUT entry targeting the resource's own reference.
func (b *BundleBuilder) Update(resource Resource) *BundleBuilder {
	b.bundle.Entry = append(b.bundle.Entry, BundleEntry{
		FullURL:  "urn:uuid:" + uuid.NewString(),
		Resource: resource,
		Request: &BundleEntryRequest{
			Method: "PUT",
			URL:    resource.Reference(),
		},
	})

	return b
}

// Delete adds a DELETE entry for the given type and id.
func (b *BundleBuilder) Delete(resourceType, id string) *BundleBuilder {
	b.bundle.Entry = append(b.bundle.Entry, BundleEntry{
		Request: &BundleEntryRequest{
			Method: "DELETE",
			URL:    resourceType + "/" + id,
		},
	})

	return b
}

// Get adds a GET entry for the given type and id.
func (b *BundleBuilder) Get(resourceType, id string) *BundleBuilder {
	b.bundle.Entry = append(b.bundle.Entry, BundleEntry{
		Request: &BundleEntryRequest{
			Method: "GET",
			URL:    resourceType + "/" + id,
		},
	})

	return b
}

// Bundle returns the assembled bundle.
func (b *BundleBuilder) Bundle() *Bundle {
	return b.bundle
}
