// Package root provides the root command for the bbm CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbmark/internal/cmd/completion"
	"github.com/open-cli-collective/bbmark/internal/cmd/compose"
	"github.com/open-cli-collective/bbmark/internal/cmd/configcmd"
	initcmd "github.com/open-cli-collective/bbmark/internal/cmd/init"
	"github.com/open-cli-collective/bbmark/internal/cmd/render"
	"github.com/open-cli-collective/bbmark/internal/cmd/tags"
	"github.com/open-cli-collective/bbmark/internal/cmd/video"
	"github.com/open-cli-collective/bbmark/internal/version"
)

// NewCmdRoot creates the root command for bbm.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bbm",
		Short: "Render BBCode forum markup to safe HTML",
		Long: `bbm renders user-authored BBCode into HTML that is safe to embed.

It escapes everything first, then turns a fixed set of tags, mentions,
line breaks and bare media links into markup. Documents can also be
exported as markdown or plain text, and composed from the command line.

Get started by running: bbm init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/bbm/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log debug details to stderr")

	// Set version template
	cmd.SetVersionTemplate("bbm version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(compose.NewCmdCompose())
	cmd.AddCommand(video.NewCmdVideo())
	cmd.AddCommand(tags.NewCmdTags())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
