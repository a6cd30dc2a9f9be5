// Package servecmder provides the serve command for running the combination
// API server.
package servecmder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/crucible/api"
	"github.com/papercomputeco/crucible/pkg/config"
	"github.com/papercomputeco/crucible/pkg/dotdir"
	"github.com/papercomputeco/crucible/pkg/generate"
	"github.com/papercomputeco/crucible/pkg/generate/gemini"
	"github.com/papercomputeco/crucible/pkg/generate/ollama"
	"github.com/papercomputeco/crucible/pkg/logger"
	"github.com/papercomputeco/crucible/pkg/resolver"
	"github.com/papercomputeco/crucible/pkg/storage"
	"github.com/papercomputeco/crucible/pkg/storage/inmemory"
	"github.com/papercomputeco/crucible/pkg/storage/postgres"
	"github.com/papercomputeco/crucible/pkg/storage/sqlite"
)

type serveCommander struct {
	listen      string
	backend     string
	sqlitePath  string
	postgresDSN string
	provider    string
	model       string
	target      string
	project     string
	location    string
	logFile     string
	debug       bool
	configDir   string
	logger      *slog.Logger
	v           *viper.Viper
}

// serveFlagKeys lists the registry keys bound on this command.
var serveFlagKeys = []string{
	config.FlagListen,
	config.FlagBackend,
	config.FlagSQLite,
	config.FlagPostgresDSN,
	config.FlagProvider,
	config.FlagModel,
	config.FlagTarget,
	config.FlagProject,
	config.FlagLocation,
}

const serveLongDesc string = `Run the combination API server.

The server answers GET /get_combination by looking the pair up in the
combination store and, on a miss, asking the configured generation provider
to invent a result. Fresh results are deduplicated against stored ones by
canonical name before being persisted.

Flags override environment variables (CRUCIBLE_*), which override
config.toml values, which override built-in defaults.

Examples:
  crucible serve
  crucible serve --backend sqlite --sqlite crucible.sqlite
  crucible serve --provider gemini --project my-project --location us-central1`

const serveShortDesc string = "Run the combination API server"

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			cmder.v, err = config.InitViper(cmder.configDir)
			if err != nil {
				return err
			}

			config.BindRegisteredFlags(cmder.v, cmd, config.ServeFlags, serveFlagKeys)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}

			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.ServeFlags, config.FlagListen, &cmder.listen)
	config.AddStringFlag(cmd, config.ServeFlags, config.FlagBackend, &cmder.backend)
	config.AddStringFlag(cmd, config.ServeFlags, config.FlagSQLite, &cmder.sqlitePath)
	config.AddStringFlag(cmd, config.ServeFlags, config.FlagPostgresDSN, &cmder.postgresDSN)
	config.AddStringFlag(cmd, config.ServeFlags, config.FlagProvider, &cmder.provider)
	config.AddStringFlag(cmd, config.ServeFlags, config.FlagModel, &cmder.model)
	config.AddStringFlag(cmd, config.ServeFlags, config.FlagTarget, &cmder.target)
	config.AddStringFlag(cmd, config.ServeFlags, config.FlagProject, &cmder.project)
	config.AddStringFlag(cmd, config.ServeFlags, config.FlagLocation, &cmder.location)

	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also write JSON logs to this file")

	return cmd
}

func (c *serveCommander) run() error {
	log, closeLog, err := c.newLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	c.logger = log

	ctx := context.Background()

	driver, err := c.newStorageDriver(ctx)
	if err != nil {
		return err
	}
	defer driver.Close()

	gen, err := c.newGenerator(ctx)
	if err != nil {
		return err
	}
	defer gen.Close()

	res := resolver.New(driver, gen, c.logger)

	server := api.NewServer(api.Config{
		ListenAddr: c.v.GetString("api.listen"),
	}, res, driver, c.logger)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", "signal", sig.String())
		return server.Shutdown()
	}
}

// newLogger builds the process logger. With --log-file, logs are duplicated
// as JSON lines into the file alongside the terminal output.
func (c *serveCommander) newLogger() (*slog.Logger, func(), error) {
	term := logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(true),
		logger.WithSource(c.debug),
	)

	if c.logFile == "" {
		return term, func() {}, nil
	}

	f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	file := logger.New(
		logger.WithDebug(c.debug),
		logger.WithJSON(true),
		logger.WithWriter(f),
		logger.WithSource(c.debug),
	)

	return logger.Multi(term, file), func() { f.Close() }, nil
}

func (c *serveCommander) newStorageDriver(ctx context.Context) (storage.Driver, error) {
	backend := c.v.GetString("storage.backend")

	switch backend {
	case "sqlite":
		path := c.v.GetString("storage.sqlite_path")
		if path == "" {
			ddm := dotdir.NewManager()
			target, err := ddm.Target(c.configDir)
			if err != nil {
				return nil, fmt.Errorf("resolving sqlite path: %w", err)
			}
			path = filepath.Join(target, "crucible.sqlite")
		}

		driver, err := sqlite.NewDriver(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite storer: %w", err)
		}
		c.logger.Info("using SQLite storage", "path", path)
		return driver, nil

	case "postgres":
		dsn := c.v.GetString("storage.postgres_dsn")
		if dsn == "" {
			return nil, fmt.Errorf("postgres backend requires storage.postgres_dsn")
		}

		driver, err := postgres.NewDriver(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to create Postgres storer: %w", err)
		}
		c.logger.Info("using Postgres storage")
		return driver, nil

	case "memory", "":
		c.logger.Info("using in-memory storage")
		return inmemory.NewDriver(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q (valid: memory, sqlite, postgres)", backend)
	}
}

func (c *serveCommander) newGenerator(ctx context.Context) (generate.Generator, error) {
	provider := c.v.GetString("generator.provider")

	// generator.model has no global default; each provider falls back to
	// its own DefaultModel when the value is empty.
	model := c.v.GetString("generator.model")

	switch provider {
	case "gemini":
		gen, err := gemini.New(ctx, gemini.Config{
			APIKey:   os.Getenv("GEMINI_API_KEY"),
			Project:  c.v.GetString("generator.project"),
			Location: c.v.GetString("generator.location"),
			Model:    model,
		})
		if err != nil {
			return nil, fmt.Errorf("creating gemini generator: %w", err)
		}
		if model == "" {
			model = gemini.DefaultModel
		}
		c.logger.Info("using gemini generation",
			"model", model,
			"project", c.v.GetString("generator.project"),
		)
		return gen, nil

	case "ollama", "":
		gen, err := ollama.New(ollama.Config{
			BaseURL: c.v.GetString("generator.target"),
			Model:   model,
		})
		if err != nil {
			return nil, fmt.Errorf("creating ollama generator: %w", err)
		}
		if model == "" {
			model = ollama.DefaultModel
		}
		c.logger.Info("using ollama generation",
			"target", c.v.GetString("generator.target"),
			"model", model,
		)
		return gen, nil

	default:
		return nil, fmt.Errorf("unknown generation provider: %q (valid: gemini, ollama)", provider)
	}
}
