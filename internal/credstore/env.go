package credstore

import (
	"context"
	"fmt"
	"os"

	"github.com/kvistad/tweetkit/pkg/credential"
)

// EnvStore provides read-only access to a credential serialized as JSON in
// an environment variable. Suitable for pre-provisioned tokens but not for
// interactive creation (requires writable storage).
type EnvStore struct {
	envKey string
}

// Compile-time check to ensure EnvStore implements Store
var _ Store = (*EnvStore)(nil)

// NewEnvStore creates an EnvStore for the given environment variable.
// Returns error if the variable name is empty or not set in the environment.
func NewEnvStore(envKey string) (*EnvStore, error) {
	if envKey == "" {
		return nil, fmt.Errorf("environment key cannot be empty")
	}

	if _, exists := os.LookupEnv(envKey); !exists {
		return nil, fmt.Errorf("environment variable %s not set", envKey)
	}

	return &EnvStore{
		envKey: envKey,
	}, nil
}

// Read deserializes the credential from the environment variable. Returns
// error if empty or malformed.
func (e *EnvStore) Read(ctx context.Context) (*credential.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw := os.Getenv(e.envKey)
	if raw == "" {
		return nil, fmt.Errorf("environment variable %s is empty", e.envKey)
	}
	return credential.Unmarshal([]byte(raw))
}

// Write is not supported for environment variables (they are read-only).
func (e *EnvStore) Write(ctx context.Context, cred *credential.Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return fmt.Errorf("environment variable storage is read-only")
}
