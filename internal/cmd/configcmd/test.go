package configcmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbmark/internal/config"
	"github.com/open-cli-collective/bbmark/pkg/bbcode"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Check the configuration against sample documents",
		Long: `Validate the current configuration and render a set of sample documents
with it, reporting any sample that the configured limits degrade.`,
		Example: `  # Test configuration
  bbm config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runTest(cmd.OutOrStdout(), config.ResolvePath(configPath), noColor)
		},
	}

	return cmd
}

// probe is a sample document and the markup its rendering must contain.
type probe struct {
	name  string
	input string
	want  string
}

var probes = []probe{
	{"bold", "[b]bold[/b]", "<strong"},
	{"quote", "[quote=bbm]hi[/quote]", "<blockquote"},
	{"nested list", "[list][*]a[list][*]b[/list][/list]", "<li>b</li>"},
	{"code", "[code][b]x[/b][/code]", ">[b]x[/b]</pre>"},
	{"link", "[url=https://example.com]site[/url]", `href="https://example.com"`},
	{"video", "https://youtu.be/dQw4w9WgXcQ", "youtube.com/embed/dQw4w9WgXcQ"},
}

func runTest(w io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w (run 'bbm init' to configure)", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'bbm init' to configure)", err)
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	_, _ = green.Fprintln(w, "✓ Configuration is valid")

	r := bbcode.NewRenderer(cfg.RenderOptions(nil))
	var failed []string
	for _, p := range probes {
		out := r.Render(p.input)
		if strings.Contains(out, p.want) {
			_, _ = green.Fprintf(w, "✓ %s\n", p.name)
			continue
		}
		_, _ = red.Fprintf(w, "✗ %s: got %s\n", p.name, out)
		failed = append(failed, p.name)
	}

	if len(failed) > 0 {
		fmt.Fprintln(w, "\nCheck your limits with: bbm config show")
		fmt.Fprintln(w, "Reconfigure with: bbm init")
		return fmt.Errorf("%d sample(s) did not render: %s", len(failed), strings.Join(failed, ", "))
	}

	return nil
}
