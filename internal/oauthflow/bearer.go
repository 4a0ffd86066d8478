package oauthflow

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/kvistad/tweetkit/pkg/credential"
)

// BearerTokenOption configures a bearer token request.
type BearerTokenOption func(*bearerConfig)

type bearerConfig struct {
	tokenURL string
}

// WithBearerTokenURL overrides the token endpoint, e.g. for tests.
func WithBearerTokenURL(url string) BearerTokenOption {
	return func(c *bearerConfig) { c.tokenURL = url }
}

// BearerToken performs the OAuth 2.0 client-credentials grant and returns an
// app-only bearer credential. No user interaction or callback listener is
// involved.
func BearerToken(ctx context.Context, app credential.App, opts ...BearerTokenOption) (*credential.Credential, error) {
	cfg := &bearerConfig{tokenURL: BearerTokenURL}
	for _, opt := range opts {
		opt(cfg)
	}

	grant := &clientcredentials.Config{
		ClientID:     app.Key,
		ClientSecret: app.Secret,
		TokenURL:     cfg.tokenURL,
	}

	token, err := grant.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtaining bearer token: %w", err)
	}

	return credential.NewBearer(app, token.AccessToken), nil
}
