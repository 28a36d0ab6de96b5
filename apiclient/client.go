// Package apiclient is the outbound HTTP layer of the CRM client. Every request
// carries the current bearer credential, and a response interceptor ends the
// session centrally when the API answers 401 or 403.
package apiclient

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	crmerrors "github.com/jrsteele09/go-crm-workspace/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
)

// ErrSessionEnded is returned by every call the API rejected with 401/403
// after the unauthorized callback has run. Callers should stop quietly: the
// user is already being sent to the login screen.
var ErrSessionEnded = crmerrors.ErrSessionEnded

type skipUnauthorizedKey struct{}

// noRetryKey marks a request that must be sent at most once.
type noRetryKey struct{}

// Client wraps resty with a retrying transport, rate limiting and the session
// aware interceptors.
type Client struct {
	resty          *resty.Client
	limiter        *rate.Limiter
	authEndpoint   string
	bearer         atomic.Pointer[oauth2.Token]
	onUnauthorized atomic.Pointer[func()]
}

type clientOptions struct {
	timeout      time.Duration
	maxRetries   int
	rps          float64
	authEndpoint string
	userAgent    string
}

// Option configures a Client.
type Option func(*clientOptions)

func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// WithRetries sets how often failed GET, PUT and DELETE requests (connection
// errors, 5xx, 429) are retried. POST requests are never retried. Zero
// disables retries.
func WithRetries(n int) Option {
	return func(o *clientOptions) {
		o.maxRetries = n
	}
}

// WithRateLimit caps outbound requests per second. Zero or less is unlimited.
func WithRateLimit(rps float64) Option {
	return func(o *clientOptions) {
		o.rps = rps
	}
}

// WithAuthEndpoint sets the path (or absolute URL) of the login endpoint.
func WithAuthEndpoint(endpoint string) Option {
	return func(o *clientOptions) {
		o.authEndpoint = endpoint
	}
}

func WithUserAgent(ua string) Option {
	return func(o *clientOptions) {
		o.userAgent = ua
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, options ...Option) *Client {
	opts := clientOptions{
		timeout:      30 * time.Second,
		maxRetries:   3,
		authEndpoint: "/v1/auth/token",
		userAgent:    "crm-workspace/1.0",
	}
	for _, opt := range options {
		opt(&opts)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.maxRetries
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.CheckRetry = checkRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	restyClient := resty.NewWithClient(retryClient.StandardClient())
	restyClient.
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(opts.timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", opts.userAgent)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.rps), max(1, int(opts.rps)))
	}

	c := &Client{
		resty:        restyClient,
		limiter:      limiter,
		authEndpoint: opts.authEndpoint,
	}
	restyClient.OnBeforeRequest(c.beforeRequest)
	restyClient.OnAfterResponse(c.afterResponse)
	return c
}

// SetBearerToken makes tok the default credential of every request.
func (c *Client) SetBearerToken(tok *oauth2.Token) {
	c.bearer.Store(tok)
}

// ClearBearerToken removes the default credential.
func (c *Client) ClearBearerToken() {
	c.bearer.Store(nil)
}

// BearerToken returns the current default credential, nil when logged out.
func (c *Client) BearerToken() *oauth2.Token {
	return c.bearer.Load()
}

// OnUnauthorized registers the callback run when the API rejects the
// credential. The latest registration wins and is looked up per response, so
// it always reaches the current logout.
func (c *Client) OnUnauthorized(fn func()) {
	if fn == nil {
		c.onUnauthorized.Store(nil)
		return
	}
	c.onUnauthorized.Store(&fn)
}

func (c *Client) triggerUnauthorized() {
	if fn := c.onUnauthorized.Load(); fn != nil {
		(*fn)()
	}
}

// checkRetry is the default policy, except that requests marked with
// noRetryKey are never repeated.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if once, _ := ctx.Value(noRetryKey{}).(bool); once {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// request creates a new request once the rate limiter allows it
func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "[apiclient.request] rate limit")
	}
	return c.resty.R().SetContext(ctx), nil
}

func (c *Client) beforeRequest(_ *resty.Client, req *resty.Request) error {
	req.SetHeader(headerRequestID, uuid.NewString())
	if tok := c.bearer.Load(); tok != nil && req.Header.Get(headerAuthorization) == "" {
		req.SetHeader(headerAuthorization, tok.Type()+" "+tok.AccessToken)
	}
	return nil
}

func (c *Client) afterResponse(_ *resty.Client, resp *resty.Response) error {
	log.Debug().
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Str("request_id", resp.Request.Header.Get(headerRequestID)).
		Dur("elapsed", resp.Time()).
		Msg("api response")

	status := resp.StatusCode()
	if status != http.StatusUnauthorized && status != http.StatusForbidden {
		return nil
	}
	if skip, _ := resp.Request.Context().Value(skipUnauthorizedKey{}).(bool); skip {
		return nil
	}

	log.Warn().Int("status", status).Str("url", resp.Request.URL).Msg("credential rejected, ending session")
	c.triggerUnauthorized()
	return ErrSessionEnded
}

// do executes a request and returns the raw body of a successful response.
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body any) ([]byte, error) {
	if method == http.MethodPost {
		ctx = context.WithValue(ctx, noRetryKey{}, true)
	}
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if errors.Is(err, ErrSessionEnded) {
		return nil, ErrSessionEnded
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[apiclient.do] %s %s", method, path)
	}
	if resp.IsError() {
		return nil, newAPIError(resp.StatusCode(), resp.Body())
	}
	return resp.Body(), nil
}

// doJSON is do followed by decoding into out (skipped for empty bodies).
func (c *Client) doJSON(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	raw, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	return decode(raw, out)
}
