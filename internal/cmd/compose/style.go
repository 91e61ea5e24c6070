package compose

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbmark/pkg/bbcode"
)

// NewCmdSize creates the compose size command.
func NewCmdSize() *cobra.Command {
	return &cobra.Command{
		Use:   "size <size> [text]",
		Short: "Change text size",
		Long: fmt.Sprintf(`Wrap text in a [size] tag. The size is an alias (xs, sm, md, lg, xl, xxl,
huge) or a number of pixels, clamped to %d-%d.`, bbcode.MinFontSize, bbcode.MaxFontSize),
		Example: `  bbm compose size lg "big news"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := text(cmd, args[1:])
			if err != nil {
				return err
			}
			return emit(cmd, bbcode.Size(args[0], body))
		},
	}
}

// NewCmdColor creates the compose color command.
func NewCmdColor() *cobra.Command {
	return &cobra.Command{
		Use:   "color <color> [text]",
		Short: "Change text color",
		Long: `Wrap text in a [color] tag. The color is a CSS color name or a #RGB /
#RRGGBB hex value; anything else is rejected.`,
		Example: `  bbm compose color red "warning"
  bbm compose color "#3366ff" "link-ish"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := bbcode.LookupColor(args[0]); !ok {
				return fmt.Errorf("unsupported color %q", args[0])
			}
			body, err := text(cmd, args[1:])
			if err != nil {
				return err
			}
			return emit(cmd, bbcode.Color(args[0], body))
		},
	}
}
