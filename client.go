package tweetkit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	"github.com/kvistad/tweetkit/pkg/credential"
)

// DefaultBaseURL is the Twitter REST API root requests are made against.
const DefaultBaseURL = "https://api.twitter.com/1.1"

const defaultRequestTimeout = 30 * time.Second

// Client dispatches authenticated requests against the Twitter REST API and
// decodes JSON responses. Requests are signed with the resolved credential:
// OAuth 1.0a request signing for user tokens, an Authorization header for
// bearer tokens.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cred       *credential.Credential
}

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	cred       *credential.Credential
	baseURL    string
	httpClient *http.Client
}

// WithCredential uses an explicit credential instead of resolving one.
func WithCredential(cred *credential.Credential) ClientOption {
	return func(c *clientConfig) { c.cred = cred }
}

// WithBaseURL overrides the API root, e.g. for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *clientConfig) { c.baseURL = baseURL }
}

// WithHTTPClient supplies the transport client wrapped by request signing.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *clientConfig) { c.httpClient = httpClient }
}

// New creates a Client. Without an explicit credential the process
// credential is resolved through the usual fallback chain.
func New(ctx context.Context, opts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(cfg)
	}

	cred := cfg.cred
	if cred == nil {
		var err error
		cred, err = Token(ctx)
		if err != nil {
			return nil, err
		}
	}
	if !cred.Valid() {
		return nil, fmt.Errorf("credential is not a usable Twitter token")
	}

	httpClient, err := signedClient(ctx, cred, cfg.httpClient)
	if err != nil {
		return nil, err
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(cfg.baseURL, "/"),
		cred:       cred,
	}, nil
}

// Credential returns the credential requests are signed with.
func (c *Client) Credential() *credential.Credential {
	return c.cred
}

// signedClient wraps the base transport with the signing scheme the
// credential calls for.
func signedClient(ctx context.Context, cred *credential.Credential, base *http.Client) (*http.Client, error) {
	if cred.Kind == credential.KindBearer {
		var transport http.RoundTripper = http.DefaultTransport
		if base != nil && base.Transport != nil {
			transport = base.Transport
		}
		return &http.Client{
			Timeout:   defaultRequestTimeout,
			Transport: &bearerTransport{token: cred.Credentials.AccessToken, base: transport},
		}, nil
	}

	if cred.App.Key == "" || cred.App.Secret == "" {
		return nil, fmt.Errorf("credential is missing consumer app material required for request signing")
	}
	config := oauth1.NewConfig(cred.App.Key, cred.App.Secret)
	token := oauth1.NewToken(cred.Credentials.OAuthToken, cred.Credentials.OAuthTokenSecret)
	if base != nil {
		ctx = context.WithValue(ctx, oauth1.HTTPClient, base)
	}
	signed := config.Client(ctx, token)
	signed.Timeout = defaultRequestTimeout
	return signed, nil
}

// bearerTransport adds the app-only Authorization header to every request.
type bearerTransport struct {
	token string
	base  http.RoundTripper
}

// Compile-time check that bearerTransport implements http.RoundTripper.
var _ http.RoundTripper = (*bearerTransport)(nil)

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	newReq := req.Clone(req.Context())
	newReq.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(newReq)
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Body)
}

// Get performs an authenticated GET against an API path (e.g.
// "friends/list.json") and decodes the JSON response into v.
func (c *Client) Get(ctx context.Context, path string, params url.Values, v any) error {
	endpoint := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Records performs an authenticated GET and flattens the JSON response into
// tabular rows. A top-level array becomes one row per element; with a
// non-empty field, that field of a top-level object is flattened instead;
// any other shape becomes a single row.
func (c *Client) Records(ctx context.Context, path string, params url.Values, field string) ([]map[string]any, error) {
	var payload any
	if err := c.Get(ctx, path, params, &payload); err != nil {
		return nil, err
	}

	if field != "" {
		obj, ok := payload.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("response is not an object, cannot extract field %q", field)
		}
		payload = obj[field]
	}

	switch value := payload.(type) {
	case []any:
		rows := make([]map[string]any, 0, len(value))
		for _, elem := range value {
			if row, ok := elem.(map[string]any); ok {
				rows = append(rows, row)
			} else {
				rows = append(rows, map[string]any{"value": elem})
			}
		}
		return rows, nil
	case map[string]any:
		return []map[string]any{value}, nil
	case nil:
		return nil, nil
	default:
		return []map[string]any{{"value": value}}, nil
	}
}
