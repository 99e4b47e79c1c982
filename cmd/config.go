package cmd

import (
	"github.com/spf13/cobra"

	errs "github.com/manav03panchal/trackedit/internal/errors"
	"github.com/manav03panchal/trackedit/internal/serial"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg", "settings"},
	Short:   "Show the effective configuration",
	Long: `Show the configuration in effect after merging defaults, the config file
and TRACKEDIT_* environment variables.

Examples:
  trackedit config
  trackedit config --format json
  TRACKEDIT_HISTORY_DEPTH=500 trackedit config`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(ctx.Config)
	}

	data, err := serial.Marshal(ctx.Config, serial.FormatYAML)
	if err != nil {
		return errs.NewSystemErrorWithOp("show config", "cannot encode config", err)
	}

	cli := ctx.CLIFormatter()
	if ctx.Config.Source != "" {
		cli.Muted("# " + ctx.Config.Source)
	} else {
		cli.Muted("# defaults (no config file)")
	}
	cli.Print(string(data))
	return nil
}
