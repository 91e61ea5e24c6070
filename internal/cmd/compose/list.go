package compose

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbmark/pkg/bbcode"
)

// NewCmdList creates the compose list command.
func NewCmdList() *cobra.Command {
	return &cobra.Command{
		Use:   "list [item]...",
		Short: "Build a bulleted list",
		Long: `Build a [list] with one [*] item per argument, or one per line of stdin
when the only argument is "-". With no items a two-item sample is printed.`,
		Example: `  bbm compose list "first" "second"
  printf 'a\nb\n' | bbm compose list -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return emit(cmd, bbcode.Wrap("list", ""))
			}
			if len(args) == 1 && args[0] == "-" {
				body, err := text(cmd, args)
				if err != nil {
					return err
				}
				return emit(cmd, bbcode.List(strings.Split(body, "\n")))
			}
			return emit(cmd, bbcode.List(args))
		},
	}
}
