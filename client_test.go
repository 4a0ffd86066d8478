package tweetkit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvistad/tweetkit/pkg/credential"
)

func userCred() *credential.Credential {
	return credential.NewOAuth1(credential.App{Name: "demo", Key: "key1", Secret: "secret1"}, "tok", "sec", "alice")
}

func TestNewRejectsInvalidCredential(t *testing.T) {
	_, err := New(context.Background(), WithCredential(&credential.Credential{Kind: credential.KindOAuth1}))
	assert.Error(t, err)
}

func TestNewRejectsSignUnableCredential(t *testing.T) {
	cred := userCred()
	cred.App.Key = ""

	_, err := New(context.Background(), WithCredential(cred))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consumer app material")
}

func TestGetSignsWithOAuth1(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"screen_name": "alice"}`))
	}))
	t.Cleanup(srv.Close)

	client, err := New(context.Background(), WithCredential(userCred()), WithBaseURL(srv.URL))
	require.NoError(t, err)

	var identity struct {
		ScreenName string `json:"screen_name"`
	}
	require.NoError(t, client.Get(context.Background(), "account/verify_credentials.json", nil, &identity))

	assert.Equal(t, "alice", identity.ScreenName)
	assert.True(t, strings.HasPrefix(authHeader, "OAuth "), "expected OAuth 1.0a signature, got %q", authHeader)
	assert.Contains(t, authHeader, `oauth_consumer_key="key1"`)
	assert.Contains(t, authHeader, `oauth_token="tok"`)
}

func TestGetSendsBearerHeader(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	bearer := credential.NewBearer(credential.App{Name: "demo"}, "AAAA1234")
	client, err := New(context.Background(), WithCredential(bearer), WithBaseURL(srv.URL))
	require.NoError(t, err)

	require.NoError(t, client.Get(context.Background(), "search/tweets.json", nil, nil))
	assert.Equal(t, "Bearer AAAA1234", authHeader)
}

func TestGetReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"code":88}]}`, http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	client, err := New(context.Background(), WithCredential(userCred()), WithBaseURL(srv.URL))
	require.NoError(t, err)

	err = client.Get(context.Background(), "friends/list.json", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/statuses/user_timeline.json":
			_, _ = w.Write([]byte(`[{"id": 1, "text": "hello"}, {"id": 2, "text": "world"}]`))
		case "/friends/list.json":
			assert.Equal(t, "golang", r.URL.Query().Get("screen_name"))
			_, _ = w.Write([]byte(`{"users": [{"screen_name": "alice"}], "next_cursor": 0}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := New(context.Background(), WithCredential(userCred()), WithBaseURL(srv.URL))
	require.NoError(t, err)
	ctx := context.Background()

	rows, err := client.Records(ctx, "statuses/user_timeline.json", nil, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "hello", rows[0]["text"])

	rows, err = client.Records(ctx, "friends/list.json", url.Values{"screen_name": {"golang"}}, "users")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0]["screen_name"])
}
