package oauthflow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/dghubble/oauth1"
	"golang.org/x/sync/errgroup"

	"github.com/kvistad/tweetkit/pkg/credential"
)

const (
	callbackPath = "/oauth/callback"

	// DefaultTimeout bounds the interactive exchange: request token,
	// browser authorization, and access-token exchange combined.
	DefaultTimeout = 2 * time.Minute
)

// FlowOption configures an interactive authorization flow.
type FlowOption func(*flowConfig)

type flowConfig struct {
	out        io.Writer
	endpoint   oauth1.Endpoint
	verifyURL  string
	listenAddr string
	timeout    time.Duration
}

// WithOutput sets the writer receiving user-facing instructions (the
// authorization URL). Defaults to stdout.
func WithOutput(out io.Writer) FlowOption {
	return func(c *flowConfig) { c.out = out }
}

// WithEndpoint overrides the OAuth 1.0a endpoint set, e.g. for tests against
// a local server.
func WithEndpoint(endpoint oauth1.Endpoint) FlowOption {
	return func(c *flowConfig) { c.endpoint = endpoint }
}

// WithVerifyURL overrides the identity endpoint queried after the access
// token exchange, e.g. for tests against a local server.
func WithVerifyURL(url string) FlowOption {
	return func(c *flowConfig) { c.verifyURL = url }
}

// WithListenAddr overrides the callback listener address. Defaults to a
// random localhost port.
func WithListenAddr(addr string) FlowOption {
	return func(c *flowConfig) { c.listenAddr = addr }
}

// WithTimeout overrides the overall exchange deadline.
func WithTimeout(d time.Duration) FlowOption {
	return func(c *flowConfig) { c.timeout = d }
}

type callbackResult struct {
	requestToken string
	verifier     string
}

// Authorize runs the interactive three-legged OAuth 1.0a exchange for the
// given consumer app and returns a user-bound credential. The user is
// directed to approve the app in a browser; the authorization callback is
// received on a temporary localhost listener.
func Authorize(ctx context.Context, app credential.App, opts ...FlowOption) (*credential.Credential, error) {
	cfg := &flowConfig{
		out:        os.Stdout,
		endpoint:   AuthorizeEndpoint,
		verifyURL:  VerifyCredentialsURL,
		listenAddr: "127.0.0.1:0",
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	listener, err := net.Listen("tcp", cfg.listenAddr)
	if err != nil {
		return nil, fmt.Errorf("starting callback listener: %w", err)
	}

	port := listener.Addr().(*net.TCPAddr).Port
	oauthConfig := &oauth1.Config{
		ConsumerKey:    app.Key,
		ConsumerSecret: app.Secret,
		CallbackURL:    "http://127.0.0.1:" + strconv.Itoa(port) + callbackPath,
		Endpoint:       cfg.endpoint,
	}

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		requestToken, verifier, err := oauth1.ParseAuthorizationCallback(r)
		if err != nil {
			http.Error(w, "authorization callback missing oauth_token/oauth_verifier", http.StatusBadRequest)
			return
		}
		select {
		case results <- callbackResult{requestToken: requestToken, verifier: verifier}:
		default:
			// A second callback for the same flow is ignored.
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "Authorization received. You can close this window and return to the terminal.")
	})
	server := &http.Server{Handler: mux}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("callback server: %w", err)
		}
		return nil
	})

	cred, exchangeErr := runExchange(gCtx, cfg, oauthConfig, app, results)

	// Shutdown phase: stop the listener regardless of exchange outcome.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.WarnContext(shutdownCtx, "callback server shutdown failed", "error", err)
	}
	if err := g.Wait(); err != nil && exchangeErr == nil {
		exchangeErr = err
	}

	if exchangeErr != nil {
		return nil, exchangeErr
	}
	return cred, nil
}

// runExchange performs the token legs of the flow while the callback server
// runs alongside.
func runExchange(ctx context.Context, cfg *flowConfig, oauthConfig *oauth1.Config, app credential.App, results <-chan callbackResult) (*credential.Credential, error) {
	requestToken, requestSecret, err := oauthConfig.RequestToken()
	if err != nil {
		return nil, fmt.Errorf("obtaining request token: %w", err)
	}

	authorizationURL, err := oauthConfig.AuthorizationURL(requestToken)
	if err != nil {
		return nil, fmt.Errorf("building authorization URL: %w", err)
	}

	fmt.Fprintf(cfg.out, "Open the following URL in a browser and authorize the app:\n\n  %s\n\nWaiting for authorization...\n", authorizationURL.String())

	var result callbackResult
	select {
	case result = <-results:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for authorization callback: %w", ctx.Err())
	}
	if result.requestToken != requestToken {
		return nil, fmt.Errorf("authorization callback returned an unknown request token")
	}

	accessToken, accessSecret, err := oauthConfig.AccessToken(requestToken, requestSecret, result.verifier)
	if err != nil {
		return nil, fmt.Errorf("exchanging for access token: %w", err)
	}

	screenName, err := boundScreenName(ctx, cfg.verifyURL, oauthConfig, accessToken, accessSecret)
	if err != nil {
		// Identity lookup is best-effort; the token itself is already minted.
		slog.WarnContext(ctx, "could not resolve authorizing account", "error", err)
	}

	return credential.NewOAuth1(app, accessToken, accessSecret, screenName), nil
}

// boundScreenName asks the API which account the freshly minted token
// belongs to.
func boundScreenName(ctx context.Context, verifyURL string, oauthConfig *oauth1.Config, accessToken, accessSecret string) (string, error) {
	token := oauth1.NewToken(accessToken, accessSecret)
	client := oauthConfig.Client(ctx, token)
	client.Timeout = 15 * time.Second

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, verifyURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("verify_credentials returned status %d", resp.StatusCode)
	}

	var identity struct {
		ScreenName string `json:"screen_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return "", fmt.Errorf("parsing verify_credentials response: %w", err)
	}
	return identity.ScreenName, nil
}
