// Package compose provides commands that build BBCode source.
package compose

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbmark/pkg/bbcode"
)

// NewCmdCompose creates the compose command.
func NewCmdCompose() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Build BBCode snippets",
		Long: `Build BBCode the way the editor toolbar does.

Each sub-command prints BBCode source. Use --render to print the rendered
HTML instead. A text argument of "-" reads the text from stdin.`,
	}

	cmd.PersistentFlags().Bool("render", false, "Print rendered HTML instead of BBCode")

	cmd.AddCommand(NewCmdWrap())
	cmd.AddCommand(NewCmdList())
	cmd.AddCommand(NewCmdQuote())
	cmd.AddCommand(NewCmdURL())
	cmd.AddCommand(NewCmdImg())
	cmd.AddCommand(NewCmdSize())
	cmd.AddCommand(NewCmdColor())

	return cmd
}

// emit prints the composed source, or its rendering when --render is set.
func emit(cmd *cobra.Command, source string) error {
	render, _ := cmd.Flags().GetBool("render")
	out := source
	if render {
		out = bbcode.Render(source)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
	return err
}

// text joins args into the text to compose, reading stdin for "-".
func text(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	return strings.Join(args, " "), nil
}

// NewCmdWrap creates the compose wrap command.
func NewCmdWrap() *cobra.Command {
	return &cobra.Command{
		Use:   "wrap <tag> [text]",
		Short: "Wrap text in a tag",
		Example: `  bbm compose wrap b "important"
  bbm compose wrap spoiler -
  bbm compose wrap list`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := bbcode.LookupTag(args[0]); !ok {
				return fmt.Errorf("unknown tag %q (run 'bbm tags' to list tags)", args[0])
			}
			body, err := text(cmd, args[1:])
			if err != nil {
				return err
			}
			return emit(cmd, bbcode.Wrap(args[0], body))
		},
	}
}
