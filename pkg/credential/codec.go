package credential

import (
	"encoding/json"
	"fmt"
	"os"
)

// Marshal serializes a credential for on-disk storage.
func Marshal(c *Credential) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("cannot marshal nil credential")
	}
	return json.MarshalIndent(c, "", "  ")
}

// Unmarshal deserializes a single stored credential.
func Unmarshal(data []byte) (*Credential, error) {
	c := &Credential{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing credential: %w", err)
	}
	return c, nil
}

// Load reads and deserializes a single credential file.
func Load(path string) (*Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// LoadBundle reads a named-object bundle file: a JSON object mapping names
// to credentials. One bundle file may hold several tokens.
func LoadBundle(path string) (map[string]*Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	bundle := map[string]*Credential{}
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing credential bundle: %w", err)
	}
	return bundle, nil
}
