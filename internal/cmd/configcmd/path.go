package configcmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbmark/internal/config"
)

// NewCmdPath creates the config path command.
func NewCmdPath() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Example: `  # Edit the config file
  $EDITOR "$(bbm config path)"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runPath(cmd.OutOrStdout(), configPath)
		},
	}

	return cmd
}

func runPath(w io.Writer, configPath string) error {
	_, err := fmt.Fprintln(w, config.ResolvePath(configPath))
	return err
}
