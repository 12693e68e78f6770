// Package cli implements the pathmaker command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathmaker/pkg/buildinfo"
	"github.com/matzehuels/pathmaker/pkg/config"
	"github.com/matzehuels/pathmaker/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "pathmaker"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded by the root command before any subcommand runs.
	Config *config.Config

	flags rootFlags

	// openStore is replaced in tests.
	openStore func(ctx context.Context, cfg *config.Config) (store.Store, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:    newLogger(w, level),
		Config:    config.Default(),
		openStore: store.Open,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Pathmaker draws and stores waypoint maps",
		Long: `Pathmaker manages maps of hand-drawn paths: connected waypoints grouped
into bundles, stored as compact $<{id(x,y)[t]}>$ text.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.preRun,
	}

	root.SetVersionTemplate(buildinfo.Template())
	c.flags.register(root)

	root.AddCommand(c.showCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.lsCommand())
	root.AddCommand(c.rmCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store Factory
// =============================================================================

// mapStore opens the configured map store. Callers close it.
func (c *CLI) mapStore(ctx context.Context) (store.Store, error) {
	st, err := c.openStore(ctx, c.Config)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("opened store", "backend", st.Backend())
	return st, nil
}
