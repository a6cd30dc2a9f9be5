// Package cruciblecmder
package cruciblecmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/papercomputeco/crucible/cmd/crucible/config"
	initcmder "github.com/papercomputeco/crucible/cmd/crucible/init"
	servecmder "github.com/papercomputeco/crucible/cmd/crucible/serve"
	versioncmder "github.com/papercomputeco/crucible/cmd/crucible/version"
)

const crucibleLongDesc string = `Crucible resolves element combinations with a generative model and
caches every result.

Run the server using:
  crucible serve       Run the combination API server

Manage configuration using:
  crucible init        Initialize a local .crucible/ directory
  crucible config      Get, set, and list configuration values`

const crucibleShortDesc string = "Crucible - Element Combination Engine"

func NewCrucibleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crucible",
		Short: crucibleShortDesc,
		Long:  crucibleLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Directory containing config.toml (default: ./.crucible or ~/.crucible)")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
