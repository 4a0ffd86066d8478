// Package oauthflow acquires new Twitter credentials.
//
// Two acquisition paths exist:
//   - Authorize: the interactive three-legged OAuth 1.0a exchange. A
//     temporary HTTP listener on localhost receives the authorization
//     callback while the user approves the app in a browser.
//   - BearerToken: the non-interactive OAuth 2.0 client-credentials grant
//     yielding an app-only bearer token.
//
// Both paths return credential values; persistence is the resolver's job.
package oauthflow
