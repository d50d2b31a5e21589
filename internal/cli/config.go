package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/gallerywall/internal/project"
)

// configCommand creates the config command group.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the configuration and back it up",
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configBackupCommand())
	cmd.AddCommand(c.configRestoreCommand())

	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config
			printTitle("Configuration")
			printKeyValue("Spacing", fmt.Sprintf("%g in", cfg.DefaultSpacing))
			printKeyValue("Margin", fmt.Sprintf("%g in", cfg.DefaultMargin))
			printKeyValue("Algorithm", string(cfg.DefaultAlgorithm))
			printKeyValue("Shelves", fmt.Sprintf("%d", cfg.DefaultShelfCount))
			printKeyValue("Time budget", fmt.Sprintf("%gs", cfg.TimeBudgetSeconds))
			printKeyValue("Max attempts", fmt.Sprintf("%d", cfg.MaxAttempts))
			printKeyValue("Target layouts", fmt.Sprintf("%d", cfg.TargetSolutions))
			printKeyValue("Layouts emitted", fmt.Sprintf("%d", cfg.MaxEmitted))
			printKeyValue("Log level", cfg.LogLevel)
			printKeyValue("Listen address", cfg.ListenAddr)
			printKeyValue("Recent requests", strings.Join(cfg.RecentRequests, ", "))
			printNewline()
			printDetail("Config: %s", c.configPath)
			printDetail("Library: %s", c.libraryPath)
			return nil
		},
	}
}

func (c *CLI) configBackupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [backup.json]",
		Short: "Write the configuration and library to one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := project.LoadLibrary(c.libraryPath)
			if err != nil {
				return fmt.Errorf("load library: %w", err)
			}
			if err := project.ExportAllData(args[0], c.config, lib); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
			printSuccess("Backup written")
			printFile(args[0])
			return nil
		},
	}
}

func (c *CLI) configRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [backup.json]",
		Short: "Replace the configuration and library from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := project.ImportAllData(args[0])
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}
			if err := project.SaveAppConfig(c.configPath, data.Config); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			if err := project.SaveLibrary(c.libraryPath, data.Library); err != nil {
				return fmt.Errorf("save library: %w", err)
			}
			printSuccess("Restored backup from %s", data.CreatedAt)
			return nil
		},
	}
}
