package compose

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbmark/pkg/bbcode"
)

// NewCmdQuote creates the compose quote command.
func NewCmdQuote() *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   "quote [text]",
		Short: "Quote a post for a reply",
		Long: `Build the quote block that starts a reply, followed by a blank line for
the reply text. The author defaults to "Unknown".`,
		Example: `  bbm compose quote --author alice "see you at eight"
  bbm compose quote --author alice - < post.bbcode`,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := text(cmd, args)
			if err != nil {
				return err
			}
			return emit(cmd, bbcode.Quote(author, body))
		},
	}

	cmd.Flags().StringVarP(&author, "author", "a", "", "Author of the quoted post")

	return cmd
}
