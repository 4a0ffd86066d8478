package resolver

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvistad/tweetkit/pkg/credential"
	tkerrors "github.com/kvistad/tweetkit/pkg/errors"
)

func TestValidateHomeAccountMatch(t *testing.T) {
	r, _ := newTestResolver(t)
	r.SetToken(testCred("alice"))
	t.Setenv(EnvScreenName, "alice")

	assert.NoError(t, r.ValidateHomeAccount(context.Background()))
}

func TestValidateHomeAccountIgnoresCaseAndAtSign(t *testing.T) {
	r, _ := newTestResolver(t)
	r.SetToken(testCred("Alice"))
	t.Setenv(EnvScreenName, "@ALICE")

	assert.NoError(t, r.ValidateHomeAccount(context.Background()))
}

func TestValidateHomeAccountMismatch(t *testing.T) {
	r, _ := newTestResolver(t)
	r.SetToken(testCred("bob"))
	t.Setenv(EnvScreenName, "alice")

	err := r.ValidateHomeAccount(context.Background())
	var mismatch *tkerrors.IdentityMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "alice", mismatch.Home)
	assert.Equal(t, "bob", mismatch.Bound)
	// Both identities must be named in the message.
	assert.Contains(t, err.Error(), "alice")
	assert.Contains(t, err.Error(), "bob")
}

func TestValidateHomeAccountNoCredential(t *testing.T) {
	r, _ := newTestResolver(t)
	t.Setenv(EnvScreenName, "alice")

	err := r.ValidateHomeAccount(context.Background())
	var missing *tkerrors.MissingCredentialError
	assert.ErrorAs(t, err, &missing)
}

func TestValidateHomeAccountRejectsBearer(t *testing.T) {
	r, _ := newTestResolver(t)
	r.SetToken(credential.NewBearer(credential.App{Name: "demo"}, "bearer-token"))
	t.Setenv(EnvScreenName, "alice")

	err := r.ValidateHomeAccount(context.Background())
	var missing *tkerrors.MissingCredentialError
	assert.ErrorAs(t, err, &missing)
}

func TestHomeUserFromEnv(t *testing.T) {
	r, _ := newTestResolver(t)
	t.Setenv(EnvScreenName, "@alice")

	home, err := r.HomeUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", home)
}

func TestHomeUserPromptedOnceAndRecorded(t *testing.T) {
	calls := 0
	prompt := func(ctx context.Context, question string) (string, error) {
		calls++
		return "alice", nil
	}
	r, _ := newTestResolver(t, WithPrompt(prompt))

	home, err := r.HomeUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", home)

	// Cached for the process: the prompt must not run again.
	home, err = r.HomeUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", home)
	assert.Equal(t, 1, calls)

	// Recorded for future processes.
	assert.Equal(t, "alice", os.Getenv(EnvScreenName))
}

func TestHomeUserPromptFailure(t *testing.T) {
	prompt := func(ctx context.Context, question string) (string, error) {
		return "", fmt.Errorf("stdin is not a terminal")
	}
	r, _ := newTestResolver(t, WithPrompt(prompt))

	_, err := r.HomeUser(context.Background())
	assert.Error(t, err)
}
