package credstore

import (
	"context"

	"github.com/kvistad/tweetkit/pkg/credential"
)

// Store reads and writes credentials to persistent storage.
//
// Interactive token creation requires writable storage.
type Store interface {
	// Read returns the stored credential. Returns error if it is missing or empty.
	Read(ctx context.Context) (*credential.Credential, error)

	// Write persists the credential to storage. Returns error if the storage
	// backend is read-only (e.g., environment variables) or if the write fails.
	Write(ctx context.Context, cred *credential.Credential) error
}
