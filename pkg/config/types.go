package config

// Config represents the persistent crucible configuration stored as
// config.toml in the .crucible/ directory. The TOML layout uses sections
// for logical grouping.
type Config struct {
	Version   int             `toml:"version"`
	Storage   StorageConfig   `toml:"storage"`
	API       APIConfig       `toml:"api"`
	Generator GeneratorConfig `toml:"generator"`
}

// StorageConfig selects and configures the combination store backend.
type StorageConfig struct {
	// Backend is one of "memory", "sqlite", or "postgres".
	Backend     string `toml:"backend,omitempty"`
	SQLitePath  string `toml:"sqlite_path,omitempty"`
	PostgresDSN string `toml:"postgres_dsn,omitempty"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// GeneratorConfig holds text-generation provider settings.
type GeneratorConfig struct {
	// Provider is one of "gemini" or "ollama".
	Provider string `toml:"provider,omitempty"`
	Model    string `toml:"model,omitempty"`

	// Target is the base URL of an HTTP provider (ollama).
	Target string `toml:"target,omitempty"`

	// Project and Location select Gemini's Vertex AI backend; when
	// Project is empty the Gemini API key from the environment is used.
	Project  string `toml:"project,omitempty"`
	Location string `toml:"location,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"storage.backend": {
		get: func(c *Config) string { return c.Storage.Backend },
		set: func(c *Config, v string) error { c.Storage.Backend = v; return nil },
	},
	"storage.sqlite_path": {
		get: func(c *Config) string { return c.Storage.SQLitePath },
		set: func(c *Config, v string) error { c.Storage.SQLitePath = v; return nil },
	},
	"storage.postgres_dsn": {
		get: func(c *Config) string { return c.Storage.PostgresDSN },
		set: func(c *Config, v string) error { c.Storage.PostgresDSN = v; return nil },
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
	"generator.provider": {
		get: func(c *Config) string { return c.Generator.Provider },
		set: func(c *Config, v string) error { c.Generator.Provider = v; return nil },
	},
	"generator.model": {
		get: func(c *Config) string { return c.Generator.Model },
		set: func(c *Config, v string) error { c.Generator.Model = v; return nil },
	},
	"generator.target": {
		get: func(c *Config) string { return c.Generator.Target },
		set: func(c *Config, v string) error { c.Generator.Target = v; return nil },
	},
	"generator.project": {
		get: func(c *Config) string { return c.Generator.Project },
		set: func(c *Config, v string) error { c.Generator.Project = v; return nil },
	},
	"generator.location": {
		get: func(c *Config) string { return c.Generator.Location },
		set: func(c *Config, v string) error { c.Generator.Location = v; return nil },
	},
}
