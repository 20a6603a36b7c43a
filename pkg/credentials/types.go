package credentials

// Credentials represents the stored API keys in credentials.toml, one per
// tenant database.
type Credentials struct {
	Version   int                           `toml:"version"`
	Databases map[string]DatabaseCredential `toml:"databases"`
}

// DatabaseCredential holds the API key for a single database id hash.
type DatabaseCredential struct {
	APIKey string `toml:"api_key"`
}
