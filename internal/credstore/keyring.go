package credstore

import (
	"context"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/kvistad/tweetkit/pkg/credential"
)

// KeyringStore provides OS-native secure credential storage.
// Uses macOS Keychain, Windows Credential Manager, or Linux Secret Service.
type KeyringStore struct {
	service string
	user    string
}

// Compile-time check to ensure KeyringStore implements Store
var _ Store = (*KeyringStore)(nil)

// NewKeyringStore creates a KeyringStore for the OS-native credential storage
// (macOS Keychain, Windows Credential Manager, etc.) using the given service
// and user identifiers.
func NewKeyringStore(service, user string) (*KeyringStore, error) {
	if service == "" {
		return nil, fmt.Errorf("service cannot be empty")
	}
	if user == "" {
		return nil, fmt.Errorf("user cannot be empty")
	}

	return &KeyringStore{
		service: service,
		user:    user,
	}, nil
}

// Read returns the credential from the system keyring. Returns error if not
// found or empty.
func (k *KeyringStore) Read(ctx context.Context) (*credential.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := keyring.Get(k.service, k.user)
	if err != nil {
		return nil, err
	}

	if raw == "" {
		return nil, fmt.Errorf("empty credential in keyring for service %s, user %s", k.service, k.user)
	}

	return credential.Unmarshal([]byte(raw))
}

// Write persists the credential to the system keyring, overwriting any
// existing value.
func (k *KeyringStore) Write(ctx context.Context, cred *credential.Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := credential.Marshal(cred)
	if err != nil {
		return err
	}

	return keyring.Set(k.service, k.user, string(data))
}
