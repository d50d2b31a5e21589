// Package cli implements the gallerywall command-line interface.
//
// Commands load a generation request from a JSON or TOML file, run one or
// all layout strategies on it and write the results as JSON, layout PDFs
// and QR hanging labels. The serve command exposes the same generation
// stream over HTTP, and the library commands manage saved frame and wall
// presets.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context and handed to the orchestrator and server.
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/gallerywall/internal/engine"
	"github.com/piwi3910/gallerywall/internal/model"
	"github.com/piwi3910/gallerywall/internal/project"
	"github.com/piwi3910/gallerywall/internal/worker"
)

const (
	// appName is the application name used for display.
	appName = "gallerywall"

	// maxRecentRequests bounds the recent request list kept in the config.
	maxRecentRequests = 10
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath  string
	libraryPath string
	verbose     bool
	config      model.AppConfig
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:      newLogger(w, level),
		configPath:  project.DefaultConfigPath(),
		libraryPath: project.DefaultLibraryPath(),
		config:      model.DefaultAppConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Gallerywall arranges picture frames on a wall",
		Long:         `Gallerywall recommends gallery wall layouts: given a wall, the frames you own and the windows, outlets and switches to keep clear, it searches for non-overlapping arrangements with several packing strategies.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", c.configPath, "config file")
	root.PersistentFlags().StringVar(&c.libraryPath, "library", c.libraryPath, "frame library file")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.estimateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.requestCommand())
	root.AddCommand(c.libraryCommand())
	root.AddCommand(c.configCommand())

	return root
}

// loadConfig reads the config file and applies its log level unless
// --verbose asks for debug output.
func (c *CLI) loadConfig() error {
	cfg, err := project.LoadAppConfig(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.config = cfg

	switch {
	case c.verbose:
		c.SetLogLevel(LogDebug)
	case cfg.LogLevel != "":
		level, err := log.ParseLevel(strings.ToLower(cfg.LogLevel))
		if err != nil {
			c.Logger.Warn("ignoring log level from config", "level", cfg.LogLevel)
			break
		}
		c.SetLogLevel(level)
	}
	return nil
}

// searchOptions derives the search budget from the config.
func (c *CLI) searchOptions(seed uint64) engine.SearchOptions {
	return engine.SearchOptions{
		TimeBudget:      time.Duration(c.config.TimeBudgetSeconds * float64(time.Second)),
		MaxAttempts:     c.config.MaxAttempts,
		TargetSolutions: c.config.TargetSolutions,
		Seed:            seed,
	}
}

// newOrchestrator builds an orchestrator configured from the app config.
func (c *CLI) newOrchestrator(logger *log.Logger, seed uint64) *worker.Orchestrator {
	orch := worker.NewOrchestrator(logger, c.searchOptions(seed))
	if c.config.MaxEmitted > 0 {
		orch.MaxEmitted = c.config.MaxEmitted
	}
	return orch
}

// rememberRequest records path in the recent request list. Failing to save
// the config only warrants a warning.
func (c *CLI) rememberRequest(logger *log.Logger, path string) {
	c.config.AddRecentRequest(path, maxRecentRequests)
	if err := project.SaveAppConfig(c.configPath, c.config); err != nil {
		logger.Warn("could not update recent requests", "err", err)
	}
}
