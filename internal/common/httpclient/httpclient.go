// Package httpclient is the single choke point for all HTTP calls the
// Mirador client makes. It owns URL composition against the configured
// backend roots, bearer token injection, body encoding rules, uniform error
// decoding, and the reaction to authentication expiry. Domain facades never
// touch net/http directly.
package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/miradorhq/mirador/internal/common/apperrors"
	"github.com/miradorhq/mirador/internal/common/logtrace"
	"github.com/miradorhq/mirador/internal/common/session"
)

// Root names one of the configured backend roots. The primary root serves
// CRUD, auth, statistics, reports and audit; the agent root serves the
// heavier analytics, narrative and ETL operations.
type Root string

const (
	RootPrimary Root = "primary"
	RootAgent   Root = "agent"
)

// Default backend roots, overridable through configuration.
const (
	DefaultPrimaryURL = "http://localhost:8001/api/v1"
	DefaultAgentURL   = "http://localhost:8000"
)

// Endpoints holds the base URLs of the two backend roots. They are supplied
// once at client construction; call sites select a root by name instead of
// carrying URL literals.
type Endpoints struct {
	Primary string // survey admin backend (auth, CRUD, stats, reports, audit)
	Agent   string // analytics agent backend (resultados, redactar, carga)
}

// DefaultEndpoints returns the endpoint set pointing at the local
// development backends.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Primary: DefaultPrimaryURL,
		Agent:   DefaultAgentURL,
	}
}

func (e Endpoints) resolve(root Root) (string, error) {
	switch root {
	case RootAgent:
		if e.Agent == "" {
			return "", fmt.Errorf("agent endpoint is not configured")
		}
		return e.Agent, nil
	case RootPrimary, "":
		if e.Primary == "" {
			return "", fmt.Errorf("primary endpoint is not configured")
		}
		return e.Primary, nil
	default:
		return "", fmt.Errorf("unknown endpoint root: %s", root)
	}
}

// ErrSessionExpired is returned by DoRequest and StreamRequest when the
// server answers 401 on an authenticated request. By the time a caller
// sees it, the session store has been cleared and the auth-expired handler
// has run; callers treat it as already handled rather than a failure to
// report.
var ErrSessionExpired = apperrors.New("session expired").SetStatusCode(http.StatusUnauthorized)

// HTTPError represents a rejected request: any non-2xx status other than
// 401. Message carries the backend-provided detail when present, else a
// generic message containing the status code.
type HTTPError struct {
	StatusCode int    // HTTP status code of the error
	Message    string // error message from server or generic fallback
}

// Error implements the error interface for HTTPError.
func (e *HTTPError) Error() string {
	return e.Message
}

// AuthExpiredHandler is invoked after a 401 has cleared the session store.
// The CLI registers one at startup to discard the persisted token and tell
// the user to log in again; an embedding UI would navigate to its login
// view instead. It runs at most once per offending response.
type AuthExpiredHandler func()

// HTTPClient dispatches requests to the configured backend roots.
// It reads the bearer token from the injected session store on every
// request, so a token cleared mid-flight simply stops being attached to
// subsequent calls.
type HTTPClient struct {
	endpoints  Endpoints
	store      session.Store
	httpClient *http.Client

	mu            sync.Mutex
	onAuthExpired AuthExpiredHandler
}

// ClientOptions contains options for configuring the HTTP client.
type ClientOptions struct {
	DisableCertValidation bool // if true, skips SSL certificate validation
}

// NewClient creates a new HTTP client for the given endpoints and session
// store.
func NewClient(endpoints Endpoints, store session.Store, opts ...ClientOptions) *HTTPClient {
	clientOpts := ClientOptions{}
	if len(opts) > 0 {
		clientOpts = opts[0]
	}

	httpClient := &http.Client{}
	if clientOpts.DisableCertValidation {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		}
	}

	return &HTTPClient{
		endpoints:  endpoints,
		store:      store,
		httpClient: httpClient,
	}
}

// OnAuthExpired registers the handler invoked when a request is answered
// with 401. Replaces any previously registered handler.
func (c *HTTPClient) OnAuthExpired(h AuthExpiredHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAuthExpired = h
}

// RequestOptions describes a single request. Only Method and Path are
// required; Root defaults to the primary backend.
type RequestOptions struct {
	Method      string            // HTTP method (GET, POST, PUT, DELETE)
	Root        Root              // backend root, primary when unset
	Path        string            // endpoint path suffix
	QueryParams url.Values        // optional query parameters
	Body        []byte            // optional request body
	ContentType string            // body content type; empty means application/json when Body is set
	Headers     map[string]string // optional extra headers; cannot override Authorization

	// SkipAuthExpiry leaves a 401 response as a plain HTTPError instead of
	// clearing the session. The login call sets it: a credential rejection
	// there must not discard a still-valid stored session.
	SkipAuthExpiry bool
}

// DoRequest makes an HTTP request with the given options and returns the
// response body. On 401 it clears the session store, runs the auth-expired
// handler, and returns ErrSessionExpired. On other non-2xx statuses it
// returns an *HTTPError carrying the backend detail message.
func (c *HTTPClient) DoRequest(ctx context.Context, opts RequestOptions) ([]byte, error) {
	resp, err := c.dispatch(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if err := c.checkStatus(resp.StatusCode, body, opts.SkipAuthExpiry); err != nil {
		return nil, err
	}
	return body, nil
}

// StreamRequest makes an HTTP request with the given options and returns a
// reader over the raw response body, for binary responses such as file
// downloads and PDF reports. The caller is responsible for closing the
// returned reader. Error handling matches DoRequest.
func (c *HTTPClient) StreamRequest(ctx context.Context, opts RequestOptions) (io.ReadCloser, error) {
	resp, err := c.dispatch(ctx, opts)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err := c.checkStatus(resp.StatusCode, body, opts.SkipAuthExpiry); err != nil {
			return nil, err
		}
	}

	return resp.Body, nil
}

// dispatch builds and issues the request. Transport-level failures are
// wrapped into a generic error; HTTP status handling is the caller's job.
func (c *HTTPClient) dispatch(ctx context.Context, opts RequestOptions) (*http.Response, error) {
	base, err := c.endpoints.resolve(opts.Root)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %v", err)
	}
	u.Path = path.Join(u.Path, opts.Path)
	if strings.HasSuffix(opts.Path, "/") && !strings.HasSuffix(u.Path, "/") {
		// path.Join strips the trailing slash some endpoints require
		u.Path += "/"
	}

	q := u.Query()
	for k, vs := range opts.QueryParams {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewBuffer(opts.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	for k, v := range opts.Headers {
		if strings.EqualFold(k, "Authorization") {
			continue
		}
		req.Header.Set(k, v)
	}

	// JSON is the default encoding; multipart and form bodies bring their
	// own content type so the encoder controls the boundary.
	if opts.ContentType != "" {
		req.Header.Set("Content-Type", opts.ContentType)
	} else if len(opts.Body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	requestID := logtrace.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	return resp, nil
}

// checkStatus maps a non-2xx response to an error. A 401 on an
// authenticated request clears the session and reports expiry; a 401
// without a stored token, or on a request that opted out of expiry
// handling (login), surfaces the backend detail like any other rejection.
func (c *HTTPClient) checkStatus(statusCode int, body []byte, skipAuthExpiry bool) error {
	if statusCode == http.StatusUnauthorized && !skipAuthExpiry && c.store.Token() != "" {
		c.expireSession()
		return ErrSessionExpired
	}

	if statusCode >= 400 {
		message := gjson.GetBytes(body, "detail").String()
		if message == "" {
			message = fmt.Sprintf("request failed with status %d", statusCode)
		}
		return &HTTPError{
			StatusCode: statusCode,
			Message:    message,
		}
	}

	return nil
}

func (c *HTTPClient) expireSession() {
	c.store.Clear()

	c.mu.Lock()
	h := c.onAuthExpired
	c.mu.Unlock()
	if h != nil {
		h()
	}
}
