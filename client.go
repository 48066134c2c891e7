// Package mirra is the official Go SDK for the Mirra API.
//
// A Client is constructed once with an API key and holds no mutable state
// beyond a shared http.Client, so it is safe for concurrent use:
//
//	client, err := mirra.New(os.Getenv("MIRRA_API_KEY"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	resp, err := client.AI.Chat(ctx, mirra.ChatRequest{
//		Messages: []mirra.ChatMessage{{Role: mirra.RoleUser, Content: "Hello!"}},
//	})
//
// Every call is a single request/response round trip; the SDK never caches
// or reconciles server state. Failures of any origin surface as *Error.
package mirra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production Mirra API endpoint.
const DefaultBaseURL = "https://api.fxn.world/api/sdk/v1"

const defaultTimeout = 30 * time.Second

// Client talks to the Mirra API. Construct with New.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
	limiter    *rate.Limiter

	Memory      *MemoryService
	AI          *AIService
	Agents      *AgentService
	Scripts     *ScriptService
	Resources   *ResourceService
	Templates   *TemplateService
	Marketplace *MarketplaceService
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithBaseURL overrides the API base URL. A trailing slash is stripped.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient replaces the underlying HTTP client. Use this to control
// timeouts, proxies, or to install a retrying RoundTripper; the SDK itself
// never retries.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger enables a debug log line per request.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRateLimit throttles outgoing requests client-side to rps requests
// per second with the given burst. Calls block in Wait until a slot is
// available or the context is done.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a Client for the given API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("mirra: API key is required")
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		userAgent:  "mirra-go/" + Version,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Memory = &MemoryService{client: c}
	c.AI = &AIService{client: c}
	c.Agents = &AgentService{client: c}
	c.Scripts = &ScriptService{client: c}
	c.Resources = &ResourceService{client: c}
	c.Templates = &TemplateService{client: c}
	c.Marketplace = &MarketplaceService{client: c}

	return c, nil
}

// BaseURL returns the resolved API base URL (trailing slash stripped).
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the fixed response wrapper every Mirra endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *envelopeError  `json:"error"`
}

type envelopeError struct {
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details"`
}

// do performs one request and decodes the envelope's data field into out.
// out may be nil when the caller discards the payload.
func (c *Client) do(ctx context.Context, method, path string, body any, query url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return transportError(err)
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return transportError(err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return transportError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	c.logger.Debug("mirra request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", requestID),
	)

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return invalidResponseError(resp.StatusCode)
	}

	if !env.Success || resp.StatusCode >= 400 {
		apiErr := &Error{
			Kind:       KindAPI,
			Message:    "Unknown error",
			StatusCode: resp.StatusCode,
		}
		if env.Error != nil {
			if env.Error.Message != "" {
				apiErr.Message = env.Error.Message
			}
			apiErr.Code = env.Error.Code
			apiErr.Details = env.Error.Details
		}
		return apiErr
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return invalidResponseError(resp.StatusCode)
	}
	return nil
}
