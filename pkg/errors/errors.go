// Package errors defines the error types surfaced by credential resolution.
//
// Deserialization and probe failures during source lookup are never surfaced
// through these types; they are swallowed by the resolver and treated as
// non-matches. Only exhaustion of the full fallback chain, invalid app
// credentials, or a home-account mismatch reach the caller.
package errors

import "fmt"

// SetupDocsURL points at the credential setup walkthrough referenced by
// MissingCredentialError messages.
const SetupDocsURL = "https://github.com/kvistad/tweetkit#authentication"

// InvalidAppCredentialsError indicates a malformed consumer key or secret
// passed to token creation.
type InvalidAppCredentialsError struct {
	// Field names the offending parameter (consumer_key or consumer_secret).
	Field string
	// Message contains the detailed error message.
	Message string
}

func (e *InvalidAppCredentialsError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid app credentials: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid app credentials: %s", e.Message)
}

// MissingCredentialError indicates that no usable credential could be found
// anywhere in the fallback chain.
type MissingCredentialError struct {
	// Hint describes what was searched, if known.
	Hint string
}

func (e *MissingCredentialError) Error() string {
	msg := "no usable Twitter credential found"
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg + "; see " + SetupDocsURL + " for setup instructions"
}

// IdentityMismatchError indicates the resolved token is bound to a different
// account than the configured home user.
type IdentityMismatchError struct {
	// Home is the configured home-user screen name.
	Home string
	// Bound is the screen name the resolved token belongs to.
	Bound string
}

func (e *IdentityMismatchError) Error() string {
	return fmt.Sprintf("token mismatch: configured home user is %q but the resolved token belongs to %q", e.Home, e.Bound)
}
