package resolver

import (
	"context"
	"strings"

	tkerrors "github.com/kvistad/tweetkit/pkg/errors"
)

// ValidateHomeAccount confirms the resolved credential belongs to the
// configured home user. It resolves through the usual chain (unwrapping a
// single credential from the resolved list), requires a user-bound 1.0
// token, and compares its bound screen name against the home-user identity
// case-insensitively. The check itself mutates nothing beyond the caches
// resolution already maintains.
func (r *Resolver) ValidateHomeAccount(ctx context.Context) error {
	creds, err := r.Resolve(ctx)
	if err != nil {
		return err
	}

	cred := creds[0]
	if !cred.IsOAuth1() {
		return &tkerrors.MissingCredentialError{
			Hint: "resolved credential is not a user-bound OAuth 1.0 token",
		}
	}

	home, err := r.HomeUser(ctx)
	if err != nil {
		return err
	}

	bound := cred.ScreenName()
	if !strings.EqualFold(home, bound) {
		return &tkerrors.IdentityMismatchError{Home: home, Bound: bound}
	}
	return nil
}
