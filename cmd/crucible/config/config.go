// Package configcmder provides the config command for managing persistent
// crucible configuration stored in the .crucible/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent crucible configuration.

Configuration is stored as config.toml in the .crucible/ directory and
provides default values for command flags. CLI flags always take precedence
over config file values.

Keys use dotted notation matching the TOML section structure:
  storage.backend, storage.sqlite_path, storage.postgres_dsn,
  api.listen,
  generator.provider, generator.model, generator.target,
  generator.project, generator.location

Use subcommands to get, set, or list configuration values:
  crucible config set <key> <value>    Set a configuration value
  crucible config get <key>            Get a configuration value
  crucible config list                 List all configuration values

Examples:
  crucible config set generator.provider gemini
  crucible config set storage.backend sqlite
  crucible config get generator.model
  crucible config list`

const configShortDesc string = "Manage persistent crucible configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
