package credstore

import (
	"strings"
	"sync"

	"github.com/kvistad/tweetkit/pkg/credential"
)

// preferredNames is the disambiguation order applied when several registered
// entries could serve as the token source.
var preferredNames = []string{"twitter_tokens", "twitter_token", "tokens", "token"}

// Registry is an ordered set of named credentials supplied by the caller.
// It replaces loose conventions like "whatever token-ish variable happens to
// be lying around" with an explicit list: callers register candidates under
// names of their choosing and Lookup applies a fixed preference order over
// them. Caller environments are uncurated, so several token-like names may
// be registered at once.
type Registry struct {
	mu      sync.RWMutex
	names   []string
	entries map[string]*credential.Credential
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: map[string]*credential.Credential{},
	}
}

// Register adds a named credential candidate, overwriting any previous entry
// under the same name. Registration order is preserved for reporting but has
// no bearing on Lookup, which uses the fixed preference order.
func (r *Registry) Register(name string, cred *credential.Credential) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; !exists {
		r.names = append(r.names, name)
	}
	r.entries[name] = cred
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Lookup searches the registered entries for a credential.
//
// Matching is two-tier. First any entry literally named twitter_tokens, then
// twitter_token, then tokens, then token wins. Failing that, entries whose
// name contains "token" (case-insensitively) form a fuzzy candidate set: a
// single fuzzy match is used as-is, while several fuzzy matches are
// re-disambiguated with the same preference list, which cannot name any of
// them, so an ambiguous set resolves to nothing found.
func (r *Registry) Lookup() (*credential.Credential, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range preferredNames {
		if cred, ok := r.entries[name]; ok {
			return cred, true
		}
	}

	var fuzzy []string
	for _, name := range r.names {
		if strings.Contains(strings.ToLower(name), "token") {
			fuzzy = append(fuzzy, name)
		}
	}
	switch len(fuzzy) {
	case 0:
		return nil, false
	case 1:
		return r.entries[fuzzy[0]], true
	}

	matched := make(map[string]bool, len(fuzzy))
	for _, name := range fuzzy {
		matched[name] = true
	}
	for _, name := range preferredNames {
		if matched[name] {
			return r.entries[name], true
		}
	}
	return nil, false
}
