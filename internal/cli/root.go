package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathmaker/pkg/config"
	"github.com/matzehuels/pathmaker/pkg/errors"
)

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	verbose    bool
	configPath string
	backend    string
	dir        string
	noCache    bool
}

func (f *rootFlags) register(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&f.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&f.backend, "store", "", "store backend: file, memory, redis, s3, mongo")
	pf.StringVar(&f.dir, "dir", "", "map directory for the file backend")
	pf.BoolVar(&f.noCache, "no-cache", false, "disable the in-process map cache")
}

// apply overrides cfg with the flags that were set.
func (f *rootFlags) apply(cfg *config.Config) error {
	if f.backend != "" {
		cfg.Store.Backend = f.backend
	}
	if f.dir != "" {
		cfg.Store.Dir = f.dir
		if f.backend == "" {
			cfg.Store.Backend = config.BackendFile
		}
	}
	if f.noCache {
		cfg.Store.CacheSize = 0
	}
	return cfg.Validate()
}

// preRun configures logging, loads the configuration and registers the
// logging hooks before any subcommand runs.
func (c *CLI) preRun(cmd *cobra.Command, args []string) error {
	level := LogInfo
	if c.flags.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))

	cfg, err := config.Load(c.flags.configPath)
	if err != nil {
		return err
	}
	if err := c.flags.apply(cfg); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "command line")
	}
	c.Config = cfg

	registerLogHooks(c.Logger)
	return nil
}
