// Package http wraps the underlying HTTP transport for the FHIR
// client: URL assembly, header injection, credential application, and
// error mapping. Everything above it treats this package as a black
// box.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/medwire-io/fhir-client/internal/auth"
	"github.com/medwire-io/fhir-client/internal/constants"
	"github.com/medwire-io/fhir-client/pkg/fhir"
)

// Request describes one HTTP call. Path may be relative to the base URL
// or a complete absolute URL (pagination next links are absolute).
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Form    url.Values
	Headers map[string]string
}

// Response is the outcome of one HTTP call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the HTTP transport wrapper.
type Client struct {
	baseURL        string
	credentials    auth.CredentialProvider
	httpClient     *retryablehttp.Client
	defaultHeaders map[string]string
	interceptors   *fhir.InterceptorChain
	logger         fhir.Logger
	debug          bool
	userAgent      string
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger fhir.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithDefaultHeaders sets headers applied to every request. Headers
// already present on a request are not overridden.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.defaultHeaders = headers
	}
}

// WithRetryConfig enables transport-level retries for transient
// failures. Off by default.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithInterceptors sets the interceptor chain run around each call.
func WithInterceptors(chain *fhir.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a transport wrapper for the given base URL. A nil
// credential provider means anonymous access.
func NewClient(baseURL string, credentials auth.CredentialProvider, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		credentials: credentials,
		httpClient:  retryClient,
		userAgent:   "fhir-client/1.0",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes one HTTP call. Non-2xx responses are returned along with
// a *fhir.ResponseError carrying the parsed OperationOutcome.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	headers := c.buildHeaders(req, contentType)

	if err := c.applyAuth(ctx, headers); err != nil {
		return nil, err
	}

	interceptReq := &fhir.Request{
		Method:  req.Method,
		URL:     fullURL,
		Headers: headers,
		Body:    body,
	}

	if c.interceptors != nil {
		if err := c.interceptors.ExecuteRequestInterceptors(ctx, interceptReq); err != nil {
			return nil, err
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	var rawBody interface{}
	if len(body) > 0 {
		rawBody = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = interceptReq.Headers

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	var respErr error
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		respErr = fhir.ParseResponseError(httpResp.StatusCode, respBody)
	}

	if c.interceptors != nil {
		interceptResp := &fhir.Response{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
			Error:      respErr,
		}
		if err := c.interceptors.ExecuteResponseInterceptors(ctx, interceptReq, interceptResp); err != nil {
			return resp, err
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": resp.StatusCode,
		})
	}

	return resp, respErr
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// PostForm issues a POST request with a form-encoded body.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Form: form})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) buildURL(req *Request) (string, error) {
	fullURL := req.Path

	if !strings.HasPrefix(fullURL, "http://") && !strings.HasPrefix(fullURL, "https://") {
		fullURL = c.baseURL + "/" + strings.TrimPrefix(fullURL, "/")
	}

	if len(req.Query) > 0 {
		parsed, err := url.Parse(fullURL)
		if err != nil {
			return "", fmt.Errorf("parsing URL %q: %w", fullURL, err)
		}

		query := parsed.Query()
		for key, values := range req.Query {
			for _, value := range values {
				query.Add(key, value)
			}
		}

		parsed.RawQuery = query.Encode()
		fullURL = parsed.String()
	}

	return fullURL, nil
}

func encodeBody(req *Request) ([]byte, string, error) {
	switch {
	case req.Form != nil:
		return []byte(req.Form.Encode()), constants.FormMIMEType, nil

	case req.Body != nil:
		if raw, ok := req.Body.([]byte); ok {
			return raw, "", nil
		}

		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", fmt.Errorf("encoding request body: %w", err)
		}

		return data, "", nil

	default:
		return nil, "", nil
	}
}

func (c *Client) buildHeaders(req *Request, contentType string) http.Header {
	headers := make(http.Header)

	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	if contentType != "" && headers.Get("Content-Type") == "" {
		headers.Set("Content-Type", contentType)
	}

	// Default headers never override per-request ones.
	for key, value := range c.defaultHeaders {
		if headers.Get(key) == "" {
			headers.Set(key, value)
		}
	}

	if headers.Get("User-Agent") == "" {
		headers.Set("User-Agent", c.userAgent)
	}

	return headers
}

func (c *Client) applyAuth(ctx context.Context, headers http.Header) error {
	if c.credentials == nil || headers.Get("Authorization") != "" {
		return nil
	}

	authorization, err := c.credentials.Authorization(ctx)
	if err != nil {
		return fmt.Errorf("getting credentials: %w", err)
	}

	headers.Set("Authorization", authorization)

	return nil
}
