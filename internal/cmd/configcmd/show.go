package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbmark/internal/config"
	"github.com/open-cli-collective/bbmark/pkg/bbcode"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective bbm configuration with the source of each value.`,
		Example: `  # Show current config
  bbm config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(cmd.OutOrStdout(), config.ResolvePath(configPath), noColor)
		},
	}

	return cmd
}

// showField is one line of config show output.
type showField struct {
	label   string
	value   string
	fileSet bool
	envVar  string
}

func runShow(w io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	opts := bbcode.NewRenderer(cfg.RenderOptions(nil)).Options()
	quoteMode, _ := bbcode.ParseQuoteMode(cfg.QuoteMode)

	fields := []showField{
		{"Max input", strconv.Itoa(opts.MaxInputLength), fileCfg.MaxInputLength != 0, config.EnvMaxInputLength},
		{"Max tags", strconv.Itoa(opts.MaxTags), fileCfg.MaxTags != 0, config.EnvMaxTags},
		{"Max depth", strconv.Itoa(opts.MaxDepth), fileCfg.MaxDepth != 0, config.EnvMaxDepth},
		{"Quote mode", quoteMode.String(), fileCfg.QuoteMode != "", config.EnvQuoteMode},
		{"Sanitize", strconv.FormatBool(cfg.Sanitize), fileCfg.Sanitize, config.EnvSanitize},
		{"Format", cfg.Format(), fileCfg.OutputFormat != "", config.EnvOutputFormat},
		{"Mentions", strconv.Itoa(len(cfg.Mentions)), len(fileCfg.Mentions) > 0, ""},
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	for _, f := range fields {
		_, _ = bold.Fprintf(w, "%-12s", f.label+":")
		fmt.Fprint(w, f.value)
		_, _ = dim.Fprintf(w, "  (source: %s)\n", source(f))
	}

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}

// source names where a value came from: an env var, the file, or the default.
func source(f showField) string {
	if f.envVar != "" && os.Getenv(f.envVar) != "" {
		return f.envVar
	}
	if f.fileSet {
		return "config"
	}
	return "default"
}
