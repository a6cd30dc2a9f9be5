package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands.
type Flag struct {
	// Name is the long flag name (e.g. "listen").
	Name string

	// Shorthand is the one-letter short flag (e.g. "l"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "api.listen").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag and BindRegisteredFlags
// to avoid typos or drift from one command to another.
const (
	FlagListen      = "listen"
	FlagBackend     = "backend"
	FlagSQLite      = "sqlite"
	FlagPostgresDSN = "postgres-dsn"
	FlagProvider    = "provider"
	FlagModel       = "model"
	FlagTarget      = "target"
	FlagProject     = "project"
	FlagLocation    = "location"
)

// ServeFlags is the flag registry for the serve command.
var ServeFlags = FlagSet{
	FlagListen: {
		Name:        "listen",
		Shorthand:   "l",
		ViperKey:    "api.listen",
		Description: "address for the HTTP API to listen on",
	},
	FlagBackend: {
		Name:        "backend",
		Shorthand:   "b",
		ViperKey:    "storage.backend",
		Description: "storage backend: memory, sqlite, or postgres",
	},
	FlagSQLite: {
		Name:        "sqlite",
		Shorthand:   "s",
		ViperKey:    "storage.sqlite_path",
		Description: "path to the SQLite database file",
	},
	FlagPostgresDSN: {
		Name:        "postgres-dsn",
		ViperKey:    "storage.postgres_dsn",
		Description: "PostgreSQL connection string",
	},
	FlagProvider: {
		Name:        "provider",
		Shorthand:   "p",
		ViperKey:    "generator.provider",
		Description: "generation provider: gemini or ollama",
	},
	FlagModel: {
		Name:        "model",
		Shorthand:   "m",
		ViperKey:    "generator.model",
		Description: "model name used for generation (default chosen by the provider)",
	},
	FlagTarget: {
		Name:        "target",
		Shorthand:   "t",
		ViperKey:    "generator.target",
		Description: "base URL of the generation provider (ollama)",
	},
	FlagProject: {
		Name:        "project",
		ViperKey:    "generator.project",
		Description: "Google Cloud project for Vertex AI generation",
	},
	FlagLocation: {
		Name:        "location",
		ViperKey:    "generator.location",
		Description: "Google Cloud region for Vertex AI generation",
	},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}
