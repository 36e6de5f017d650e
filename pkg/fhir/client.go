package fhir

import (
	"context"
	"time"
)

// Client is a FHIR REST client. Resources are opaque records: the
// client inspects only the type tag, id, bundle type, entry search
// mode, and link relation/url.
type Client interface {
	// Capabilities fetches the server's capability statement from the
	// metadata endpoint. Cache-eligible.
	Capabilities(ctx context.Context, opts *RequestOptions) (Resource, error)

	// Read fetches a single resource by type and id. Cache-eligible.
	Read(ctx context.Context, resourceType, id string, opts *RequestOptions) (Resource, error)

	// VRead fetches a specific version of a resource. Cache-eligible.
	VRead(ctx context.Context, resourceType, id, versionID string, opts *RequestOptions) (Resource, error)

	// History fetches the change history of a resource as a bundle.
	History(ctx context.Context, resourceType, id string, opts *RequestOptions) (*Bundle, error)

	// Create stores a new resource. Never cached.
	Create(ctx context.Context, resourceType string, resource Resource) (Resource, error)

	// Update replaces a resource. Missing type or id fails before any
	// network call. Never cached.
	Update(ctx context.Context, resourceType, id string, resource Resource) (Resource, error)

	// Patch applies a JSON patch to a resource. Never cached.
	Patch(ctx context.Context, resourceType, id string, patch []PatchOperation) (Resource, error)

	// Delete removes a resource. Never cached.
	Delete(ctx context.Context, resourceType, id string) error

	// Search runs a search and returns the first result page. The
	// target may carry an inline query string ("Patient?name=smith")
	// which is merged with params, query-string values first.
	Search(ctx context.Context, target string, params *SearchParams, opts *SearchOptions) (*Bundle, error)

	// SearchAll runs a search and follows "next" links until the
	// results are exhausted, returning every matched resource in
	// order. It fails with a BoundExceededError when the accumulated
	// count exceeds the effective bound.
	SearchAll(ctx context.Context, target string, params *SearchParams, opts *SearchOptions) ([]Resource, error)

	// Transaction submits a transaction bundle to the server root. The
	// bundle type must be "transaction".
	Transaction(ctx context.Context, bundle *Bundle) (*Bundle, error)

	// Batch submits a batch bundle to the server root. The bundle type
	// must be "batch".
	Batch(ctx context.Context, bundle *Bundle) (*Bundle, error)

	// Resolve resolves a reference expression, either a literal
	// "Type/id" or a search filter, to exactly one resource.
	Resolve(ctx context.Context, target string, params *SearchParams) (Resource, error)

	// ResolveReference resolves like Resolve and returns the "Type/id"
	// literal of the match.
	ResolveReference(ctx context.Context, target string, params *SearchParams) (string, error)

	// ResolveID resolves like Resolve and returns the id of the match.
	ResolveID(ctx context.Context, target string, params *SearchParams) (string, error)
}

// RequestOptions carries per-call options for read-style operations.
type RequestOptions struct {
	// NoCache skips both the cache lookup and the post-response store
	// for this one call.
	NoCache bool
}

// SearchOptions carries per-call options for searches.
type SearchOptions struct {
	// AsPost submits the search as a form-encoded POST to the
	// "<type>/_search" sub-path instead of a GET.
	AsPost bool

	// MaxResults overrides the client-level fetch-all bound for this
	// call. Only SearchAll consults it.
	MaxResults int

	// NoCache skips the cache for this one call.
	NoCache bool
}

// PatchOperation is a single JSON patch operation.
type PatchOperation struct {
	Op    string `json:"op"              yaml:"op"`
	Path  string `json:"path"            yaml:"path"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a fhir.Client.
type Config struct {
	// BaseURL is the FHIR server root (e.g. "https://fhir.example.com/r4").
	BaseURL string

	// Version is the FHIR version token ("R4", "4.0.1", "STU3", ...).
	// Defaults to "R4". An unrecognized token fails construction.
	Version string

	// Username and Password enable HTTP basic authentication.
	Username string
	Password string

	// Token, if set, is sent as a static Bearer token instead.
	Token string

	// CustomHeaders are merged under the computed protocol headers:
	// they never override Accept, Content-Type, or Authorization.
	CustomHeaders map[string]string

	// Timeout is the per-request timeout. Defaults to 30s.
	Timeout time.Duration

	// Cache configures the response cache. Caching is disabled when
	// nil.
	Cache *CacheConfig

	// MaxFetchAllResults bounds SearchAll accumulation. Defaults to
	// 10000.
	MaxFetchAllResults int

	// Logger is an optional structured logger used by the transport.
	Logger Logger

	// Debug enables verbose request/response logging when a Logger is
	// provided.
	Debug bool

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// RetryMax enables transport-level retries for transient failures
	// when greater than zero. The client itself never retries.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}
