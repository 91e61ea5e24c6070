// Package render provides the render command.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbmark/internal/config"
	"github.com/open-cli-collective/bbmark/internal/logging"
	"github.com/open-cli-collective/bbmark/internal/view"
	"github.com/open-cli-collective/bbmark/pkg/bbcode"
)

type renderOptions struct {
	configPath  string
	output      string
	noColor     bool
	verbose     bool
	format      string
	quoteMode   string
	sanitize    bool
	sanitizeSet bool
	plain       bool
	excerpt     int

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// renderResult is the JSON shape of a rendered document.
type renderResult struct {
	Source      string `json:"source"`
	Format      string `json:"format"`
	InputBytes  int    `json:"input_bytes"`
	OutputBytes int    `json:"output_bytes"`
	Content     string `json:"content"`
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render BBCode to HTML",
		Long: `Render user-authored BBCode into safe HTML.

All input is escaped before any tag is recognized, so the output only ever
contains markup that bbm produced itself. Reads from stdin when no file is
given or the file is "-".

Limits, quote handling and sanitizing come from the config file and BBM_*
environment variables; flags override both.`,
		Example: `  # Render a file
  bbm render post.bbcode

  # Render from stdin
  echo '[b]hello[/b] @alice' | bbm render

  # Export as markdown
  bbm render post.bbcode --format markdown

  # Short plain-text preview
  bbm render post.bbcode --format text --excerpt 50

  # Chat message: escape and line breaks only
  bbm render message.txt --plain`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			opts.sanitizeSet = cmd.Flags().Changed("sanitize")
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()

			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runRender(path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Document format: html, markdown, text (default from config, else html)")
	cmd.Flags().StringVar(&opts.quoteMode, "quote-mode", "", "Quote body handling: recursive, literal")
	cmd.Flags().BoolVar(&opts.sanitize, "sanitize", false, "Run output through the sanitizer allowlist")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Escape and keep line breaks only, without BBCode")
	cmd.Flags().IntVar(&opts.excerpt, "excerpt", 0, "Truncate text output to N characters (0 for no limit)")

	return cmd
}

func runRender(path string, opts *renderOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	cfg, err := config.LoadWithEnv(config.ResolvePath(opts.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.format != "" {
		cfg.OutputFormat = opts.format
	}
	if opts.quoteMode != "" {
		cfg.QuoteMode = opts.quoteMode
	}
	if opts.sanitizeSet {
		cfg.Sanitize = opts.sanitize
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	raw, err := readInput(path, opts.stdin)
	if err != nil {
		return err
	}
	// A file's final newline is not part of the post.
	raw = strings.TrimRight(raw, "\r\n")

	logger := logging.New(opts.stderr, opts.verbose, opts.noColor)
	renderer := bbcode.NewRenderer(cfg.RenderOptions(&logger))

	var markup string
	if opts.plain {
		markup = bbcode.RenderPlain(raw)
	} else {
		markup = renderer.Render(raw)
	}
	logger.Debug().
		Str("source", path).
		Int("input_bytes", len(raw)).
		Int("output_bytes", len(markup)).
		Msg("Rendered document")

	content, err := convert(markup, cfg.Format(), opts.excerpt)
	if err != nil {
		return err
	}

	if opts.output == string(view.FormatJSON) {
		v := view.NewRenderer(view.FormatJSON, opts.noColor)
		v.SetWriter(opts.stdout)
		return v.RenderJSON(renderResult{
			Source:      path,
			Format:      cfg.Format(),
			InputBytes:  len(raw),
			OutputBytes: len(content),
			Content:     content,
		})
	}

	_, err = fmt.Fprintln(opts.stdout, content)
	return err
}

// convert turns rendered markup into the requested document format.
func convert(markup, format string, excerpt int) (string, error) {
	switch format {
	case config.OutputMarkdown:
		if markup == "" {
			return "", nil
		}
		md, err := htmltomarkdown.ConvertString(markup)
		if err != nil {
			return "", fmt.Errorf("failed to convert to markdown: %w", err)
		}
		return strings.TrimSpace(md), nil
	case config.OutputText:
		return bbcode.Excerpt(markup, excerpt), nil
	default:
		return markup, nil
	}
}

// readInput reads a file, or stdin when path is empty or "-".
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
