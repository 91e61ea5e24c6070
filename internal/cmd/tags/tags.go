// Package tags provides the tags command.
package tags

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbmark/internal/view"
	"github.com/open-cli-collective/bbmark/pkg/bbcode"
)

type tagsOptions struct {
	output  string
	noColor bool
	stdout  io.Writer
}

// NewCmdTags creates the tags command.
func NewCmdTags() *cobra.Command {
	opts := &tagsOptions{}

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List supported BBCode tags",
		Long: `List every tag the renderer recognizes.

VALUE shows whether the tag takes a [tag=value] argument. CONTENT shows how
the body is treated: recursive bodies may hold other tags, verbatim bodies
are shown exactly as typed, and literal bodies are data such as a URL or
video id. PHASE is the order in which tags are recognized.`,
		Example: `  bbm tags
  bbm tags -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdout = cmd.OutOrStdout()
			return runTags(opts)
		},
	}

	return cmd
}

func runTags(opts *tagsOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}

	var rows [][]string
	for _, tag := range bbcode.Tags() {
		rows = append(rows, []string{
			tag.Name,
			tag.Arity.String(),
			tag.Content.String(),
			tag.Phase.String(),
		})
	}

	renderer.RenderTable([]string{"TAG", "VALUE", "CONTENT", "PHASE"}, rows)
	return nil
}
