package resolver

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvistad/tweetkit/pkg/credential"
	tkerrors "github.com/kvistad/tweetkit/pkg/errors"
)

func TestCreateRejectsInvalidAppCredentials(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		secret    string
		wantField string
	}{
		{
			name:      "key with punctuation",
			key:       "abc 123!",
			secret:    "validsecret1",
			wantField: "consumer_key",
		},
		{
			name:      "empty key",
			key:       "",
			secret:    "validsecret1",
			wantField: "consumer_key",
		},
		{
			name:      "whitespace-only secret",
			key:       "validkey1",
			secret:    "   ",
			wantField: "consumer_secret",
		},
		{
			name:      "secret with dashes",
			key:       "validkey1",
			secret:    "bad-secret",
			wantField: "consumer_secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestResolver(t)

			_, err := r.Create(context.Background(), CreateParams{
				AppName:        "demo",
				ConsumerKey:    tt.key,
				ConsumerSecret: tt.secret,
				AccessToken:    "at",
				AccessSecret:   "as",
			})

			var invalid *tkerrors.InvalidAppCredentialsError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.wantField, invalid.Field)
		})
	}
}

func TestCreateAcceptsSurroundingWhitespace(t *testing.T) {
	r, _ := newTestResolver(t)

	cred, err := r.Create(context.Background(), CreateParams{
		AppName:        "demo",
		ConsumerKey:    "  validkey1  ",
		ConsumerSecret: "\tvalidsecret1\n",
		AccessToken:    "at",
		AccessSecret:   "as",
	})
	require.NoError(t, err)
	assert.Equal(t, "validkey1", cred.App.Key)
	assert.Equal(t, "validsecret1", cred.App.Secret)
}

func TestCreateSignPath(t *testing.T) {
	r, _ := newTestResolver(t)
	ctx := context.Background()

	cred, err := r.Create(ctx, CreateParams{
		AppName:        "demo",
		ConsumerKey:    "key1",
		ConsumerSecret: "secret1",
		AccessToken:    "at",
		AccessSecret:   "as",
		Persist:        true,
	})
	require.NoError(t, err)
	assert.True(t, cred.Valid())
	assert.Equal(t, "at", cred.Credentials.OAuthToken)

	// Persistence side effects: file written, location recorded.
	recorded := os.Getenv(EnvPAT)
	require.NotEmpty(t, recorded)
	loaded, err := credential.Load(recorded)
	require.NoError(t, err)
	assert.True(t, loaded.Valid())

	// The created token is the process credential from here on.
	creds, err := r.Resolve(ctx)
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.Equal(t, cred, creds[0])
}

func TestCreateWithoutPersist(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.Create(context.Background(), CreateParams{
		AppName:        "demo",
		ConsumerKey:    "key1",
		ConsumerSecret: "secret1",
		AccessToken:    "at",
		AccessSecret:   "as",
		Persist:        false,
	})
	require.NoError(t, err)
	assert.Empty(t, os.Getenv(EnvPAT), "non-persisted creation must not record a source path")
}

func TestCreateBearerValidatesApp(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.CreateBearer(context.Background(), "demo", "abc 123!", "validsecret1")
	var invalid *tkerrors.InvalidAppCredentialsError
	assert.ErrorAs(t, err, &invalid)
}
