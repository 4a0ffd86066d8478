// Package credential defines the credential types produced and consumed by
// token resolution.
//
// A credential is a tagged value: OAuth 1.0a user tokens are bound to one
// account, while OAuth 2.0 app-only (bearer) tokens carry no account
// identity. Callers that already hold token material can construct a
// credential directly and hand it to the resolver or client.
package credential

import (
	"strings"
)

// Kind tags the credential variant.
type Kind string

const (
	// KindOAuth1 is a user-bound OAuth 1.0a token (consumer pair + access pair).
	KindOAuth1 Kind = "token1.0"
	// KindOAuth1Legacy is the pre-1.0a tag still emitted by old token files.
	KindOAuth1Legacy Kind = "token"
	// KindOAuth2 is an OAuth 2.0 user token.
	KindOAuth2 Kind = "token2.0"
	// KindBearer is an app-only bearer token, not bound to any account.
	KindBearer Kind = "bearer"
)

// Endpoint describes the OAuth endpoints the credential was minted against.
type Endpoint struct {
	RequestURL   string `json:"request,omitempty"`
	AuthorizeURL string `json:"authorize,omitempty"`
	AccessURL    string `json:"access,omitempty"`
}

// TwitterEndpoint is the OAuth 1.0a endpoint set for the Twitter API.
var TwitterEndpoint = Endpoint{
	RequestURL:   "https://api.twitter.com/oauth/request_token",
	AuthorizeURL: "https://api.twitter.com/oauth/authorize",
	AccessURL:    "https://api.twitter.com/oauth/access_token",
}

// App holds the consumer application material.
type App struct {
	Name   string `json:"appname,omitempty"`
	Key    string `json:"key,omitempty"`
	Secret string `json:"secret,omitempty"`
}

// Secrets is the key-value bundle carried by a credential.
type Secrets struct {
	OAuthToken       string `json:"oauth_token,omitempty"`
	OAuthTokenSecret string `json:"oauth_token_secret,omitempty"`
	ScreenName       string `json:"screen_name,omitempty"`
	UserID           string `json:"user_id,omitempty"`
	// AccessToken holds the bearer string for app-only credentials.
	AccessToken string `json:"access_token,omitempty"`
}

// Credential is a signed bearer of Twitter API access rights, optionally
// bound to one account.
type Credential struct {
	Kind        Kind      `json:"kind"`
	Endpoint    *Endpoint `json:"endpoint,omitempty"`
	App         App       `json:"app,omitempty"`
	Credentials Secrets   `json:"credentials"`
}

// NewOAuth1 constructs a user-bound OAuth 1.0a credential against the
// Twitter endpoint set.
func NewOAuth1(app App, token, secret, screenName string) *Credential {
	ep := TwitterEndpoint
	return &Credential{
		Kind:     KindOAuth1,
		Endpoint: &ep,
		App:      app,
		Credentials: Secrets{
			OAuthToken:       token,
			OAuthTokenSecret: secret,
			ScreenName:       screenName,
		},
	}
}

// NewBearer constructs an app-only bearer credential.
func NewBearer(app App, accessToken string) *Credential {
	return &Credential{
		Kind:        KindBearer,
		App:         app,
		Credentials: Secrets{AccessToken: accessToken},
	}
}

// ScreenName returns the bound account identity, empty for app-only tokens.
func (c *Credential) ScreenName() string {
	if c == nil {
		return ""
	}
	return c.Credentials.ScreenName
}

// IsOAuth1 reports whether the credential carries a recognized user-bound
// OAuth 1.0 tag.
func (c *Credential) IsOAuth1() bool {
	if c == nil {
		return false
	}
	return c.Kind == KindOAuth1 || c.Kind == KindOAuth1Legacy
}

// Valid reports whether the credential is a usable Twitter token.
//
// Bearer credentials are unconditionally valid. User tokens must carry an
// endpoint descriptor and a recognized 1.0 kind, and either reference the
// Twitter API domain in their request URL or, when the request URL is
// absent, carry an oauth_token.
func (c *Credential) Valid() bool {
	if c == nil {
		return false
	}
	if c.Kind == KindBearer {
		return true
	}
	if c.Endpoint == nil {
		return false
	}
	if !c.IsOAuth1() {
		return false
	}
	req := strings.ToLower(c.Endpoint.RequestURL)
	if strings.Contains(req, "api.twitter") {
		return true
	}
	return c.Endpoint.RequestURL == "" && c.Credentials.OAuthToken != ""
}
