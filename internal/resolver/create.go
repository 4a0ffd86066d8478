package resolver

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kvistad/tweetkit/internal/oauthflow"
	"github.com/kvistad/tweetkit/pkg/credential"
	tkerrors "github.com/kvistad/tweetkit/pkg/errors"
)

var validate = validator.New()

// CreateParams describes a token creation request.
type CreateParams struct {
	// AppName labels the consumer application.
	AppName string `validate:"required"`

	// ConsumerKey and ConsumerSecret are the app credentials. Both must be
	// non-empty and alphanumeric after whitespace stripping.
	ConsumerKey    string `validate:"required,alphanum"`
	ConsumerSecret string `validate:"required,alphanum"`

	// AccessToken and AccessSecret, when both supplied, skip the interactive
	// exchange and construct the credential directly (the "sign" path).
	AccessToken  string
	AccessSecret string

	// Persist writes the credential to a uniquely-named file and records its
	// location in TWITTER_PAT for future processes.
	Persist bool
}

// Create acquires a new user-bound OAuth 1.0a credential.
//
// With both access parts supplied the credential is constructed directly;
// otherwise the interactive three-legged exchange runs, requiring a browser
// and a local callback listener. On success the credential becomes the
// process credential and, if requested, is persisted per the usual side
// effects.
func (r *Resolver) Create(ctx context.Context, params CreateParams) (*credential.Credential, error) {
	params.ConsumerKey = strings.TrimSpace(params.ConsumerKey)
	params.ConsumerSecret = strings.TrimSpace(params.ConsumerSecret)
	if err := validateParams(params); err != nil {
		return nil, err
	}

	app := credential.App{
		Name:   params.AppName,
		Key:    params.ConsumerKey,
		Secret: params.ConsumerSecret,
	}

	var cred *credential.Credential
	if params.AccessToken != "" && params.AccessSecret != "" {
		cred = credential.NewOAuth1(app, params.AccessToken, params.AccessSecret, "")
	} else {
		var err error
		cred, err = oauthflow.Authorize(ctx, app, r.flowOpts...)
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if params.Persist {
		if _, err := r.persistLocked(ctx, cred, r.stagedTokenPath()); err != nil {
			return nil, err
		}
	}
	r.cached = []*credential.Credential{cred}
	return cred, nil
}

// CreateBearer acquires an app-only bearer credential via the OAuth 2.0
// client-credentials grant. Bearer tokens are never persisted to the source
// chain; they are cheap to re-mint.
func (r *Resolver) CreateBearer(ctx context.Context, appName, consumerKey, consumerSecret string) (*credential.Credential, error) {
	params := CreateParams{
		AppName:        appName,
		ConsumerKey:    strings.TrimSpace(consumerKey),
		ConsumerSecret: strings.TrimSpace(consumerSecret),
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	return oauthflow.BearerToken(ctx, credential.App{
		Name:   params.AppName,
		Key:    params.ConsumerKey,
		Secret: params.ConsumerSecret,
	})
}

// validateParams maps struct validation failures onto the typed app
// credential error.
func validateParams(params CreateParams) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := map[string]string{
			"AppName":        "app_name",
			"ConsumerKey":    "consumer_key",
			"ConsumerSecret": "consumer_secret",
		}[fe.StructField()]
		msg := "must be a non-empty string"
		if fe.Tag() == "alphanum" {
			msg = "must contain only alphanumeric characters"
		}
		return &tkerrors.InvalidAppCredentialsError{Field: field, Message: msg}
	}
	return &tkerrors.InvalidAppCredentialsError{Message: err.Error()}
}
