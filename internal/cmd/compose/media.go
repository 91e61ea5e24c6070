package compose

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbmark/pkg/bbcode"
)

// NewCmdURL creates the compose url command.
func NewCmdURL() *cobra.Command {
	return &cobra.Command{
		Use:     "url <url> [label]",
		Short:   "Build a link",
		Example: `  bbm compose url https://example.com "our site"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, err := text(cmd, args[1:])
			if err != nil {
				return err
			}
			return emit(cmd, bbcode.Link(args[0], label))
		},
	}
}

// NewCmdImg creates the compose img command.
func NewCmdImg() *cobra.Command {
	return &cobra.Command{
		Use:     "img <url>",
		Short:   "Build an image",
		Example: `  bbm compose img https://example.com/cat.png`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(cmd, bbcode.Image(args[0]))
		},
	}
}
