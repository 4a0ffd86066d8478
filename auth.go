package tweetkit

import (
	"context"

	"github.com/kvistad/tweetkit/internal/resolver"
	"github.com/kvistad/tweetkit/pkg/credential"
)

// defaultResolver is the ambient process-wide resolver backing the
// package-level functions. Lazily replaced as a whole only via Configure.
var defaultResolver = resolver.New()

// ResolverOption configures the ambient resolver.
type ResolverOption = resolver.Option

// PromptFunc asks the user a question and returns the typed answer.
type PromptFunc = resolver.PromptFunc

// Configure replaces the ambient resolver. Intended for applications that
// need non-default paths or prompts; call before any other package function.
func Configure(opts ...ResolverOption) {
	defaultResolver = resolver.New(opts...)
}

// WithEnvFilePath overrides the persistent KEY=VALUE config file location.
func WithEnvFilePath(path string) ResolverOption {
	return resolver.WithEnvFilePath(path)
}

// WithTokenFilePath overrides the pre-staged token file location.
func WithTokenFilePath(path string) ResolverOption {
	return resolver.WithTokenFilePath(path)
}

// WithPrompt overrides the interactive prompt used for home-user resolution.
func WithPrompt(f PromptFunc) ResolverOption {
	return resolver.WithPrompt(f)
}

// SetToken seeds the process with an explicitly constructed credential. A
// valid seeded token wins over every other source.
func SetToken(cred *credential.Credential) {
	defaultResolver.SetToken(cred)
}

// RegisterToken adds a named credential candidate to the source registry,
// the typed stand-in for token variables a hosting application already holds
// in memory. See the resolution preference order in internal/credstore.
func RegisterToken(name string, cred *credential.Credential) {
	defaultResolver.Registry().Register(name, cred)
}

// ResolveTokens returns the process credentials, resolving them through the
// fallback chain on first call and from the cache afterwards.
func ResolveTokens(ctx context.Context) ([]*credential.Credential, error) {
	return defaultResolver.Resolve(ctx)
}

// Token returns the primary process credential.
func Token(ctx context.Context) (*credential.Credential, error) {
	creds, err := defaultResolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return creds[0], nil
}

// CreateTokenParams mirrors resolver.CreateParams for the public surface.
type CreateTokenParams = resolver.CreateParams

// CreateToken acquires a new user-bound OAuth 1.0a credential, interactively
// unless both access parts are supplied. See resolver.Create for the
// validation and persistence contract.
func CreateToken(ctx context.Context, params CreateTokenParams) (*credential.Credential, error) {
	return defaultResolver.Create(ctx, params)
}

// CreateBearerToken acquires an app-only bearer credential via the OAuth 2.0
// client-credentials grant.
func CreateBearerToken(ctx context.Context, appName, consumerKey, consumerSecret string) (*credential.Credential, error) {
	return defaultResolver.CreateBearer(ctx, appName, consumerKey, consumerSecret)
}

// HomeUser returns the screen name this process operates as.
func HomeUser(ctx context.Context) (string, error) {
	return defaultResolver.HomeUser(ctx)
}

// ValidateHomeAccount confirms the resolved credential belongs to the
// configured home user.
func ValidateHomeAccount(ctx context.Context) error {
	return defaultResolver.ValidateHomeAccount(ctx)
}
