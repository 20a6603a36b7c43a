// Package credentials stores Open Agents Builder API keys per database in
// credentials.toml inside the .oab/ directory.
package credentials

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/openagentsbuilder/oab/pkg/dotdir"
)

const (
	credentialsFile = "credentials.toml"

	currentVersion = 0

	// EnvAPIKey overrides any stored key.
	EnvAPIKey = "OAB_API_KEY"
)

// ErrNoAPIKey is returned by ResolveKey when neither the environment nor
// credentials.toml holds a key for the database.
var ErrNoAPIKey = errors.New("no API key configured")

// Manager reads and writes credentials.toml.
type Manager struct {
	path string
}

// NewManager creates a Manager for the .oab/ directory resolved from override.
func NewManager(override string) (*Manager, error) {
	path, err := dotdir.NewManager().File(override, credentialsFile)
	if err != nil {
		return nil, err
	}
	return &Manager{path: path}, nil
}

// Load reads credentials.toml. A missing file yields empty Credentials.
func (m *Manager) Load() (*Credentials, error) {
	creds := &Credentials{Version: currentVersion}
	if _, err := dotdir.ReadTOML(m.path, creds); err != nil {
		return nil, err
	}
	if creds.Databases == nil {
		creds.Databases = make(map[string]DatabaseCredential)
	}
	return creds, nil
}

// Save replaces credentials.toml with creds, readable by the owner only.
func (m *Manager) Save(creds *Credentials) error {
	if creds == nil {
		return errors.New("cannot save nil credentials")
	}
	return dotdir.WriteTOML(m.path, creds)
}

func (m *Manager) update(fn func(*Credentials)) error {
	creds, err := m.Load()
	if err != nil {
		return err
	}
	fn(creds)
	return m.Save(creds)
}

// SetKey stores an API key for the given database.
func (m *Manager) SetKey(databaseIDHash, key string) error {
	if databaseIDHash == "" {
		return errors.New("database id hash is required")
	}
	return m.update(func(c *Credentials) {
		c.Databases[databaseIDHash] = DatabaseCredential{APIKey: key}
	})
}

// GetKey returns the stored API key for the given database, or "" when none
// is stored.
func (m *Manager) GetKey(databaseIDHash string) (string, error) {
	creds, err := m.Load()
	if err != nil {
		return "", err
	}
	return creds.Databases[databaseIDHash].APIKey, nil
}

// ResolveKey returns the key to use for a database: OAB_API_KEY when set,
// the stored key otherwise.
func (m *Manager) ResolveKey(databaseIDHash string) (string, error) {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key, nil
	}

	key, err := m.GetKey(databaseIDHash)
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", fmt.Errorf("%w for database %q: run \"oab auth\" or set %s", ErrNoAPIKey, databaseIDHash, EnvAPIKey)
	}

	return key, nil
}

// RemoveKey deletes the stored key of a database. Removing an unknown
// database is not an error.
func (m *Manager) RemoveKey(databaseIDHash string) error {
	return m.update(func(c *Credentials) {
		delete(c.Databases, databaseIDHash)
	})
}

// ListDatabases returns the sorted database id hashes that have stored keys.
func (m *Manager) ListDatabases() ([]string, error) {
	creds, err := m.Load()
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(creds.Databases)), nil
}

// GetTarget returns the path of credentials.toml.
func (m *Manager) GetTarget() string {
	return m.path
}
