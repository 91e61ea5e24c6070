package configcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbmark/internal/config"
)

// NewCmdClear creates the config clear command.
func NewCmdClear() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove stored configuration",
		Long:  `Delete the bbm configuration file. Environment variables will still be used if set.`,
		Example: `  # Clear config
  bbm config clear`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runClear(cmd.OutOrStdout(), config.ResolvePath(configPath), noColor)
		},
	}

	return cmd
}

func runClear(w io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	err := os.Remove(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}

	green := color.New(color.FgGreen)
	dim := color.New(color.Faint)

	if os.IsNotExist(err) {
		_, _ = green.Fprintf(w, "✓ No config file to remove\n")
	} else {
		_, _ = green.Fprintf(w, "✓ Configuration cleared from %s\n", configPath)
	}

	var activeVars []string
	for _, v := range config.EnvVars {
		if os.Getenv(v) != "" {
			activeVars = append(activeVars, v)
		}
	}

	if len(activeVars) > 0 {
		_, _ = dim.Fprintf(w, "\nNote: Environment variables will still be used: %s\n", strings.Join(activeVars, ", "))
	}

	return nil
}
