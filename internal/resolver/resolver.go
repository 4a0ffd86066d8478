// Package resolver locates, caches, creates, and validates Twitter
// credentials.
//
// Resolution walks a fixed fallback chain: the process-wide cache, then the
// source paths listed in TWITTER_PAT, then the pre-staged token file left by
// a prior interactive flow. The first source to yield a valid credential
// wins and is cached for the remainder of the process; a new process
// re-resolves. Probe failures along the chain are swallowed; only
// exhausting the whole chain surfaces an error.
package resolver

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/kvistad/tweetkit/internal/credstore"
	"github.com/kvistad/tweetkit/internal/envfile"
	"github.com/kvistad/tweetkit/internal/oauthflow"
	"github.com/kvistad/tweetkit/internal/pathutil"
	"github.com/kvistad/tweetkit/pkg/credential"
	tkerrors "github.com/kvistad/tweetkit/pkg/errors"
)

const (
	// EnvPAT names the environment variable holding a comma/semicolon
	// delimited list of credential source paths.
	EnvPAT = "TWITTER_PAT"

	// EnvScreenName names the environment variable holding the home-user
	// screen name.
	EnvScreenName = "TWITTER_SCREEN_NAME"

	// DotfileName is the conventional dotfile holding a single serialized
	// credential.
	DotfileName = ".tweetkit-oauth"

	// defaultTokenName is the pre-staged token file written under the home
	// directory by token creation.
	defaultTokenName = ".tweetkit_token.json"

	// systemSentinel in a TWITTER_PAT entry aborts resolution. It exists so
	// an operator can force a clean re-setup; hitting it also clears the
	// variable for the process.
	systemSentinel = "system"
)

// PromptFunc asks the user a question and returns the typed answer.
type PromptFunc func(ctx context.Context, question string) (string, error)

// Resolver resolves credentials through the fallback chain and caches the
// result for the process lifetime. All methods are safe for concurrent use;
// the cache is guarded by a mutex since concurrent first calls would
// otherwise race to populate it.
type Resolver struct {
	mu       sync.Mutex
	cached   []*credential.Credential
	seed     *credential.Credential
	homeUser string

	registry      *credstore.Registry
	envFilePath   string
	tokenFilePath string
	out           io.Writer
	prompt        PromptFunc
	flowOpts      []oauthflow.FlowOption
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRegistry supplies the named credential registry searched when no
// file-based source matches.
func WithRegistry(reg *credstore.Registry) Option {
	return func(r *Resolver) { r.registry = reg }
}

// WithEnvFilePath overrides the persistent KEY=VALUE config file location.
func WithEnvFilePath(path string) Option {
	return func(r *Resolver) { r.envFilePath = path }
}

// WithTokenFilePath overrides the pre-staged token file location.
func WithTokenFilePath(path string) Option {
	return func(r *Resolver) { r.tokenFilePath = path }
}

// WithOutput sets the writer for user-facing messages. Defaults to stdout.
func WithOutput(out io.Writer) Option {
	return func(r *Resolver) { r.out = out }
}

// WithPrompt overrides the interactive prompt used for home-user resolution.
func WithPrompt(f PromptFunc) Option {
	return func(r *Resolver) { r.prompt = f }
}

// WithFlowOptions passes options through to interactive OAuth flows.
func WithFlowOptions(opts ...oauthflow.FlowOption) Option {
	return func(r *Resolver) { r.flowOpts = append(r.flowOpts, opts...) }
}

// New creates a Resolver with an empty cache.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		registry: credstore.NewRegistry(),
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.prompt == nil {
		r.prompt = terminalPrompt(r.out)
	}
	return r
}

// Registry returns the named credential registry for caller registration.
func (r *Resolver) Registry() *credstore.Registry {
	return r.registry
}

// SetToken seeds the legacy single-token slot. A seeded valid credential
// short-circuits resolution exactly like a cached one.
func (r *Resolver) SetToken(cred *credential.Credential) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seed = cred
}

// Resolve returns the process credentials, walking the fallback chain on
// first use and the cache afterwards. Multiple TWITTER_PAT entries resolve
// independently and concatenate positionally.
func (r *Resolver) Resolve(ctx context.Context) ([]*credential.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveLocked(ctx)
}

func (r *Resolver) resolveLocked(ctx context.Context) ([]*credential.Credential, error) {
	if len(r.cached) > 0 {
		return append([]*credential.Credential(nil), r.cached...), nil
	}
	if r.seed.Valid() {
		r.cached = []*credential.Credential{r.seed}
		return append([]*credential.Credential(nil), r.cached...), nil
	}

	if pat := os.Getenv(EnvPAT); pat != "" {
		creds, err := r.resolveFromPAT(ctx, pat)
		if err != nil {
			return nil, err
		}
		if len(creds) == 0 {
			return nil, &tkerrors.MissingCredentialError{
				Hint: EnvPAT + " did not reference any usable credential",
			}
		}
		r.cached = creds
		return append([]*credential.Credential(nil), r.cached...), nil
	}

	// No source list configured: fall back to the pre-staged token from a
	// prior interactive flow, then record its location for future processes.
	cred := r.loadStagedToken(ctx)
	if cred == nil {
		return nil, &tkerrors.MissingCredentialError{
			Hint: EnvPAT + " is unset and no saved token was found",
		}
	}
	if _, err := r.persistLocked(ctx, cred, r.stagedTokenPath()); err != nil {
		return nil, err
	}
	r.cached = []*credential.Credential{cred}
	return append([]*credential.Credential(nil), r.cached...), nil
}

// resolveFromPAT resolves each delimited entry independently, in order.
func (r *Resolver) resolveFromPAT(ctx context.Context, pat string) ([]*credential.Credential, error) {
	var creds []*credential.Credential
	for _, entry := range splitSourceList(pat) {
		cred, err := r.resolveEntry(ctx, entry)
		if err != nil {
			return nil, err
		}
		if cred != nil {
			creds = append(creds, cred)
		}
	}
	return creds, nil
}

// resolveEntry tries each strategy for one source entry; the first strategy
// yielding a valid credential wins. Load failures are non-matches.
func (r *Resolver) resolveEntry(ctx context.Context, entry string) (*credential.Credential, error) {
	if entry == systemSentinel {
		// Clearing the variable here keeps a broken sentinel entry from
		// wedging every later call in this process.
		_ = os.Unsetenv(EnvPAT)
		return nil, &tkerrors.MissingCredentialError{
			Hint: EnvPAT + " is set to \"" + systemSentinel + "\"; unset it and configure a real credential source",
		}
	}

	if filepath.Base(entry) == DotfileName {
		if cred := loadIfValid(entry); cred != nil {
			return cred, nil
		}
	}

	if cred := loadByType(entry); cred != nil {
		return cred, nil
	}

	if cred, ok := r.registry.Lookup(); ok && cred.Valid() {
		return cred, nil
	}

	return r.loadStagedToken(ctx), nil
}

// loadStagedToken reads the token file written by a prior interactive flow.
func (r *Resolver) loadStagedToken(_ context.Context) *credential.Credential {
	return loadIfValid(r.stagedTokenPath())
}

// loadIfValid deserializes a single credential file, returning nil for any
// failure or an invalid credential.
func loadIfValid(path string) *credential.Credential {
	if path == "" {
		return nil
	}
	cred, err := credential.Load(path)
	if err != nil || !cred.Valid() {
		return nil
	}
	return cred
}

// loadByType attempts generic deserialization of recognized file types:
// first as a single credential, then as a named bundle where any single
// valid entry wins.
func loadByType(path string) *credential.Credential {
	if filepath.Base(path) != DotfileName && !strings.EqualFold(filepath.Ext(path), ".json") {
		return nil
	}
	if cred := loadIfValid(path); cred != nil {
		return cred
	}
	bundle, err := credential.LoadBundle(path)
	if err != nil {
		return nil
	}
	for _, name := range sortedKeys(bundle) {
		if cred := bundle[name]; cred.Valid() {
			return cred
		}
	}
	return nil
}

// IsCredentialFile reports whether the path denotes a loadable credential:
// the conventional dotfile or a recognized serialized file deserializing to
// a valid credential, a bundle with any valid entry, or failing those, a
// registry match. Deserialization failures are swallowed.
func (r *Resolver) IsCredentialFile(path string) bool {
	if filepath.Base(path) == DotfileName && loadIfValid(path) != nil {
		return true
	}
	if loadByType(path) != nil {
		return true
	}
	cred, ok := r.registry.Lookup()
	return ok && cred.Valid()
}

// splitSourceList splits a TWITTER_PAT value on commas and semicolons,
// dropping empty entries.
func splitSourceList(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var entries []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			entries = append(entries, p)
		}
	}
	return entries
}

func sortedKeys(m map[string]*credential.Credential) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Bundle iteration order must be deterministic across calls.
	slices.Sort(keys)
	return keys
}

// envFile returns the persistent config file path, defaulting to the home
// directory convention.
func (r *Resolver) envFile() (string, error) {
	if r.envFilePath != "" {
		return r.envFilePath, nil
	}
	return envfile.DefaultPath()
}

// stagedTokenPath returns the pre-staged token file path; empty when the
// home directory cannot be determined.
func (r *Resolver) stagedTokenPath() string {
	if r.tokenFilePath != "" {
		return r.tokenFilePath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, defaultTokenName)
}

// persistLocked writes the credential to a collision-free variant of path
// and records the final location in TWITTER_PAT, both for this process and
// in the persistent config file. Returns the path written.
func (r *Resolver) persistLocked(ctx context.Context, cred *credential.Credential, path string) (string, error) {
	target, err := pathutil.UniquePath(path)
	if err != nil {
		return "", err
	}
	store, err := credstore.NewFileStore(target)
	if err != nil {
		return "", err
	}
	if err := store.Write(ctx, cred); err != nil {
		return "", err
	}

	if err := os.Setenv(EnvPAT, target); err != nil {
		return "", err
	}
	envPath, err := r.envFile()
	if err != nil {
		return "", err
	}
	if err := envfile.Set(envPath, EnvPAT, target); err != nil {
		return "", err
	}
	return target, nil
}

// Persist writes the credential and records its location for future
// processes. The destination is made collision-free first.
func (r *Resolver) Persist(ctx context.Context, cred *credential.Credential, path string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.persistLocked(ctx, cred, path)
}
