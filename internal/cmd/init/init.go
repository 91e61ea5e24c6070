// Package init provides the init command for bbm.
package init

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbmark/internal/config"
	"github.com/open-cli-collective/bbmark/pkg/bbcode"
)

// sample nests a few tags so that unusably low limits show up at init time.
const sample = "[quote=bbm][b]bold[/b] @someone\n[list][*]item[/list][/quote]"

type initOptions struct {
	configPath string
	defaults   bool
	noVerify   bool
	stdout     io.Writer
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize bbm configuration",
		Long: `Initialize bbm with your rendering preferences.

This command will guide you through the renderer limits, quote handling,
sanitizing and the default output format. The configuration will be saved
to ~/.config/bbm/config.yml (or $XDG_CONFIG_HOME/bbm/config.yml).

Leave a limit empty or 0 to use the built-in default.`,
		Example: `  # Interactive setup
  bbm init

  # Write the defaults without prompting
  bbm init --defaults`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.stdout = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.defaults, "defaults", false, "Write default settings without prompting")
	cmd.Flags().BoolVar(&opts.noVerify, "no-verify", false, "Skip the sample render check")

	return cmd
}

func runInit(opts *initOptions) error {
	configPath := config.ResolvePath(opts.configPath)
	out := opts.stdout
	if out == nil {
		out = os.Stdout
	}

	cfg := &config.Config{}

	if !opts.defaults {
		// Check if config already exists
		if _, err := os.Stat(configPath); err == nil {
			var overwrite bool
			err := huh.NewConfirm().
				Title("Configuration already exists").
				Description(fmt.Sprintf("Overwrite %s?", configPath)).
				Value(&overwrite).
				Run()
			if err != nil {
				return err
			}
			if !overwrite {
				fmt.Fprintln(out, "Initialization cancelled.")
				return nil
			}
		}

		if err := runForm(cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !opts.noVerify {
		fmt.Fprint(out, "Verifying settings... ")
		if err := verifyConfig(cfg); err != nil {
			fmt.Fprintln(out, "failed!")
			return fmt.Errorf("settings verification failed: %w", err)
		}
		fmt.Fprintln(out, "success!")
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(out, "\nYou're all set! Try running:")
	fmt.Fprintln(out, "  echo '[b]hello[/b]' | bbm render")
	fmt.Fprintln(out, "  bbm tags")

	return nil
}

func runForm(cfg *config.Config) error {
	var maxInput, maxTags, maxDepth string
	quoteMode := bbcode.QuoteRecursive.String()
	format := config.OutputHTML

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Max input length (bytes)").
				Description(fmt.Sprintf("Input past this is escaped only. Default %d.", bbcode.DefaultMaxInputLength)).
				Placeholder(strconv.Itoa(bbcode.DefaultMaxInputLength)).
				Value(&maxInput).
				Validate(validateLimit),

			huh.NewInput().
				Title("Max tags").
				Description(fmt.Sprintf("Tags past this are left as text. Default %d.", bbcode.DefaultMaxTags)).
				Placeholder(strconv.Itoa(bbcode.DefaultMaxTags)).
				Value(&maxTags).
				Validate(validateLimit),

			huh.NewInput().
				Title("Max nesting depth").
				Description(fmt.Sprintf("Deeper tags are left as text. Default %d.", bbcode.DefaultMaxDepth)).
				Placeholder(strconv.Itoa(bbcode.DefaultMaxDepth)).
				Value(&maxDepth).
				Validate(validateLimit),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Quote bodies").
				Options(
					huh.NewOption("Render tags inside quotes", bbcode.QuoteRecursive.String()),
					huh.NewOption("Show quoted text literally", bbcode.QuoteLiteral.String()),
				).
				Value(&quoteMode),

			huh.NewConfirm().
				Title("Sanitize output").
				Description("Run rendered HTML through an allowlist sanitizer as well.").
				Value(&cfg.Sanitize),

			huh.NewSelect[string]().
				Title("Default output format").
				Options(
					huh.NewOption("HTML", config.OutputHTML),
					huh.NewOption("Markdown", config.OutputMarkdown),
					huh.NewOption("Plain text", config.OutputText),
				).
				Value(&format),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.MaxInputLength, _ = parseLimit(maxInput)
	cfg.MaxTags, _ = parseLimit(maxTags)
	cfg.MaxDepth, _ = parseLimit(maxDepth)
	cfg.QuoteMode = quoteMode
	cfg.OutputFormat = format
	return nil
}

// parseLimit reads a non-negative limit. Empty means 0, the default.
func parseLimit(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("must be a whole number of 0 or more")
	}
	return n, nil
}

func validateLimit(s string) error {
	_, err := parseLimit(s)
	return err
}

// verifyConfig renders a sample with the chosen settings and checks that its
// outer quote survived the limits.
func verifyConfig(cfg *config.Config) error {
	r := bbcode.NewRenderer(cfg.RenderOptions(nil))
	out := r.Render(sample)
	if !strings.Contains(out, "<blockquote") {
		return fmt.Errorf("sample quote was not rendered, limits are too low: %q", out)
	}
	return nil
}
