// Package video provides the video command.
package video

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbmark/internal/view"
	"github.com/open-cli-collective/bbmark/pkg/bbcode"
)

const embedBase = "https://www.youtube.com/embed/"

type videoOptions struct {
	output  string
	noColor bool
	stdout  io.Writer
}

// NewCmdVideo creates the video command.
func NewCmdVideo() *cobra.Command {
	opts := &videoOptions{}

	cmd := &cobra.Command{
		Use:   "video <url-or-id>...",
		Short: "Extract YouTube video ids",
		Long: `Extract the video id from YouTube links or bare ids.

Accepted forms are a bare 11-character id and youtube.com/watch?v=,
youtu.be/, youtube.com/embed/ and youtube.com/shorts/ links. The command
fails if any input is not a YouTube video.`,
		Example: `  # Single link
  bbm video https://youtu.be/dQw4w9WgXcQ

  # Several inputs as JSON
  bbm video dQw4w9WgXcQ "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s" -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdout = cmd.OutOrStdout()
			return runVideo(args, opts)
		},
	}

	return cmd
}

func runVideo(inputs []string, opts *videoOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}

	rows := make([][]string, 0, len(inputs))
	invalid := 0
	for _, input := range inputs {
		id, ok := bbcode.ExtractVideoID(input)
		if !ok {
			invalid++
			rows = append(rows, []string{input, "-", "-"})
			continue
		}
		rows = append(rows, []string{input, id, embedBase + id})
	}

	renderer.RenderTable([]string{"INPUT", "ID", "EMBED"}, rows)

	if invalid > 0 {
		return fmt.Errorf("%d of %d inputs are not YouTube videos", invalid, len(inputs))
	}
	return nil
}
