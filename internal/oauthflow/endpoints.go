package oauthflow

import (
	"github.com/dghubble/oauth1"
)

// AuthorizeEndpoint is Twitter's OAuth 1.0a endpoint set using the
// oauth/authorize redirect, which asks users to re-grant access on every
// authorization. That keeps switching accounts predictable.
var AuthorizeEndpoint = oauth1.Endpoint{
	RequestTokenURL: "https://api.twitter.com/oauth/request_token",
	AuthorizeURL:    "https://api.twitter.com/oauth/authorize",
	AccessTokenURL:  "https://api.twitter.com/oauth/access_token",
}

// BearerTokenURL is Twitter's OAuth 2.0 client-credentials token endpoint.
const BearerTokenURL = "https://api.twitter.com/oauth2/token"

// VerifyCredentialsURL reports the account identity bound to a signed
// request. Queried once after the access-token exchange to learn the
// authorizing user's screen name.
const VerifyCredentialsURL = "https://api.twitter.com/1.1/account/verify_credentials.json"
