package fhir

// Resource is an opaque FHIR resource. The client never assumes a
// schema beyond the handful of fields it inspects, so resources are
// plain JSON objects with named accessors.
type Resource map[string]any

// ResourceType returns the resource's type tag, or "" when absent.
func (r Resource) ResourceType() string {
	value, _ := r["resourceType"].(string)

	return value
}

// ID returns the resource's logical id, or "" when absent.
func (r Resource) ID() string {
	value, _ := r["id"].(string)

	return value
}

// Reference returns the "Type/id" literal for the resource, or "" when
// either part is missing.
func (r Resource) Reference() string {
	resourceType := r.ResourceType()
	id := r.ID()

	if resourceType == "" || id == "" {
		return ""
	}

	return resourceType + "/" + id
}

// BundleLink is a navigation link carried by a bundle.
type BundleLink struct {
	Relation string `json:"relation" yaml:"relation"`
	URL      string `json:"url"      yaml:"url"`
}

// BundleEntrySearch carries the search mode of an entry ("match" or
// "outcome") and its ranking score.
type BundleEntrySearch struct {
	Mode  string   `json:"mode,omitempty"  yaml:"mode,omitempty"`
	Score *float64 `json:"score,omitempty" yaml:"score,omitempty"`
}

// BundleEntryRequest describes the sub-request of a transaction or
// batch entry.
type BundleEntryRequest struct {
	Method string `json:"method" yaml:"method"`
	URL    string `json:"url"    yaml:"url"`
}

// BundleEntryResponse describes the sub-response of a transaction or
// batch entry.
type BundleEntryResponse struct {
	Status   string `json:"status"             yaml:"status"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	Etag     string `json:"etag,omitempty"     yaml:"etag,omitempty"`
}

// BundleEntry is one element of a bundle. Every field is optional: a
// search result entry typically carries a resource and a search mode, a
// transaction entry carries a request descriptor instead.
type BundleEntry struct {
	FullURL  string               `json:"fullUrl,omitempty"  yaml:"fullUrl,omitempty"`
	Resource Resource             `json:"resource,omitempty" yaml:"resource,omitempty"`
	Search   *BundleEntrySearch   `json:"search,omitempty"   yaml:"search,omitempty"`
	Request  *BundleEntryRequest  `json:"request,omitempty"  yaml:"request,omitempty"`
	Response *BundleEntryResponse `json:"response,omitempty" yaml:"response,omitempty"`
}

// Bundle is the FHIR response envelope: zero or more entries plus
// navigation links. It is also the request envelope for transaction and
// batch submissions.
type Bundle struct {
	ResourceType string        `json:"resourceType"    yaml:"resourceType"`
	ID           string        `json:"id,omitempty"    yaml:"id,omitempty"`
	Type         string        `json:"type"            yaml:"type"`
	Total        *int          `json:"total,omitempty" yaml:"total,omitempty"`
	Link         []BundleLink  `json:"link,omitempty"  yaml:"link,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty" yaml:"entry,omitempty"`
}

// Bundle types understood by the client.
const (
	BundleTypeTransaction = "transaction"
	BundleTypeBatch       = "batch"
	BundleTypeSearchSet   = "searchset"
)

// LinkURL returns the URL of the link with the given relation, or ""
// when no such link exists.
func (b *Bundle) LinkURL(relation string) string {
	for _, link := range b.Link {
		if link.Relation == relation {
			return link.URL
		}
	}

	return ""
}

// NextLink returns the URL of the "next" navigation link. An empty
// return means end-of-results.
func (b *Bundle) NextLink() string {
	return b.LinkURL("next")
}

// Resources returns the resource payloads of all entries, in order.
// Entries without a payload are skipped.
func (b *Bundle) Resources() []Resource {
	var resources []Resource

	for _, entry := range b.Entry {
		if entry.Resource != nil {
			resources = append(resources, entry.Resource)
		}
	}

	return resources
}
