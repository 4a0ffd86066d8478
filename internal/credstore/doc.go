// Package credstore provides persistent storage abstractions for Twitter
// credentials.
//
// Supports three storage backends with different security and deployment
// tradeoffs:
//   - File: Local filesystem storage with atomic writes and secure permissions
//   - Env: Read-only credential JSON held in an environment variable
//   - Keyring: OS-native credential storage (macOS Keychain, Windows Credential Manager, etc.)
//
// Interactive token creation requires writable storage (file or keyring),
// while pre-provisioned tokens can come from any backend including read-only
// env storage.
//
// The package also provides Registry, an ordered set of caller-supplied named
// credentials searched by the resolver when no file-based source matches.
package credstore
