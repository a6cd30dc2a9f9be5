// Package initcmder provides the init command for initializing a local
// .crucible directory in the current working directory.
package initcmder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/crucible/pkg/cliui"
	"github.com/papercomputeco/crucible/pkg/config"
)

const (
	dirName = ".crucible"
)

const initLongDesc string = `Initialize a new .crucible/ directory in the current working directory.

Creates a local .crucible/ directory that takes precedence over the default
~/.crucible/ directory for storage and configuration.

With --preset, also writes a config.toml preconfigured for a generation
provider. Available presets: gemini, vertex, ollama.

Examples:
  crucible init
  crucible init --preset gemini
  crucible init --preset ollama`

const initShortDesc string = "Initialize a local .crucible/ directory"

func NewInitCmd() *cobra.Command {
	var preset string

	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(preset)
		},
	}

	cmd.Flags().StringVarP(&preset, "preset", "p", "",
		fmt.Sprintf("Write a config.toml for a provider preset (%s)",
			strings.Join(config.ValidPresetNames(), ", ")))

	return cmd
}

func runInit(preset string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		fmt.Printf("Already initialized: %s\n", dir)
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating .crucible directory: %w", err)
		}
		fmt.Printf("%s Initialized .crucible directory: %s\n", cliui.SuccessMark, dir)
	}

	cfger, err := config.NewConfiger(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if preset == "" {
		// Seed a default config.toml unless one already exists.
		if _, err := os.Stat(cfger.GetTarget()); err == nil {
			return nil
		}
		if err := cfger.SaveConfig(config.NewDefaultConfig()); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
		fmt.Printf("%s Wrote default config to %s\n",
			cliui.SuccessMark,
			cliui.DimStyle.Render(cfger.GetTarget()),
		)
		return nil
	}

	cfg, err := config.PresetConfig(preset)
	if err != nil {
		return err
	}

	if err := cfger.SaveConfig(cfg); err != nil {
		return fmt.Errorf("writing preset config: %w", err)
	}

	fmt.Printf("%s Wrote %s preset to %s\n",
		cliui.SuccessMark,
		cliui.ValueStyle.Render(preset),
		cliui.DimStyle.Render(cfger.GetTarget()),
	)
	return nil
}
