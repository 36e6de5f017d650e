package client

import (
	"context"
	"net/http"
	"time"

	internalhttp "github.com/medwire-io/fhir-client/internal/http"
	"github.com/medwire-io/fhir-client/pkg/fhir"
)

// executor issues one HTTP call through the transport, applying
// content-type defaults and cache read/write around it. It makes
// exactly one network call per invocation and never retries.
type executor struct {
	httpClient  *internalhttp.Client
	cache       fhir.Cache
	cacheTTL    time.Duration
	accept      string
	contentType string
}

func newExecutor(httpClient *internalhttp.Client, cache fhir.Cache, ttl time.Duration, version fhir.Version) *executor {
	return &executor{
		httpClient:  httpClient,
		cache:       cache,
		cacheTTL:    ttl,
		accept:      version.MIMEType(),
		contentType: version.MIMEType(),
	}
}

// mutating reports whether the method creates or modifies a resource
// and therefore needs the protocol content type.
func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

// do executes the request. Only GET requests are cache-eligible; all
// other methods bypass the cache on both the read and write path. The
// noCache flag skips both for a single call regardless of method.
func (e *executor) do(ctx context.Context, req *internalhttp.Request, noCache bool) (*internalhttp.Response, error) {
	cacheable := req.Method == http.MethodGet && !noCache

	key := ""
	if cacheable {
		key = fhir.CacheKey(req.Method, e.httpClient.BaseURL()+"/"+req.Path, req.Query, map[string]string{
			"Accept": e.accept,
		})

		if entry, err := e.cache.Get(ctx, key); err == nil {
			return &internalhttp.Response{
				StatusCode: http.StatusOK,
				Body:       entry.Data,
			}, nil
		}
	}

	if mutating(req.Method) && req.Body != nil {
		if req.Headers == nil {
			req.Headers = make(map[string]string)
		}

		if req.Headers["Content-Type"] == "" {
			req.Headers["Content-Type"] = e.contentType
		}
	}

	resp, err := e.httpClient.Do(ctx, req)
	if err != nil {
		return resp, err
	}

	if cacheable {
		_ = e.cache.Set(ctx, key, &fhir.CacheEntry{
			Data:      resp.Body,
			ExpiresAt: time.Now().Add(e.cacheTTL),
			ETag:      resp.Headers.Get("ETag"),
		})
	}

	return resp, nil
}
