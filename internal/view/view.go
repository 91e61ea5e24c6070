// Package view provides output formatting for bbm commands.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// ValidFormats returns the accepted --output values.
func ValidFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatPlain)}
}

// ValidateFormat checks an --output value. Empty means table.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	for _, f := range ValidFormats() {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (valid: %s)", format, strings.Join(ValidFormats(), ", "))
}

// Field is one labelled value in a record.
type Field struct {
	Key   string
	Value string
}

// Renderer renders data in a specific format.
type Renderer struct {
	format  Format
	writer  io.Writer
	noColor bool
}

// NewRenderer creates a new renderer with the specified format.
func NewRenderer(format Format, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	if format == "" {
		format = FormatTable
	}
	return &Renderer{
		format:  format,
		writer:  os.Stdout,
		noColor: noColor,
	}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format {
	return r.format
}

// RenderTable renders rows under headers. JSON output is an array of objects
// keyed by lowercased header; plain output is tab-separated without headers.
func (r *Renderer) RenderTable(headers []string, rows [][]string) {
	switch r.format {
	case FormatJSON:
		r.renderTableAsJSON(headers, rows)
		return
	case FormatPlain:
		r.renderTableAsPlain(rows)
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(val))
			}
		}
	}

	bold := color.New(color.Bold)
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(r.writer, "  ")
		}
		_, _ = bold.Fprint(r.writer, pad(h, widths[i], i == len(headers)-1))
	}
	fmt.Fprintln(r.writer)

	for _, row := range rows {
		for i, val := range row {
			if i > 0 {
				fmt.Fprint(r.writer, "  ")
			}
			last := i == len(row)-1 || i >= len(widths)
			if last {
				fmt.Fprint(r.writer, val)
				continue
			}
			fmt.Fprint(r.writer, pad(val, widths[i], false))
		}
		fmt.Fprintln(r.writer)
	}
}

// pad right-pads s to width runes unless it ends the line.
func pad(s string, width int, last bool) string {
	if last {
		return s
	}
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func (r *Renderer) renderTableAsJSON(headers []string, rows [][]string) {
	var result []map[string]string
	for _, row := range rows {
		item := make(map[string]string)
		for i, header := range headers {
			if i < len(row) {
				item[strings.ToLower(header)] = row[i]
			}
		}
		result = append(result, item)
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(r.writer, string(data))
}

func (r *Renderer) renderTableAsPlain(rows [][]string) {
	for _, row := range rows {
		fmt.Fprintln(r.writer, strings.Join(row, "\t"))
	}
}

// RenderJSON renders an object as JSON.
func (r *Renderer) RenderJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fmt.Fprintln(r.writer, string(data))
	return nil
}

// RenderText renders plain text.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, text)
}

// RenderKeyValue renders a key-value pair.
func (r *Renderer) RenderKeyValue(key, value string) {
	r.RenderFields([]Field{{Key: key, Value: value}})
}

// RenderFields renders a record. JSON output is a single object with keys in
// the given order; plain output is one tab-separated pair per line.
func (r *Renderer) RenderFields(fields []Field) {
	switch r.format {
	case FormatJSON:
		var sb strings.Builder
		sb.WriteString("{")
		for i, f := range fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			k, _ := json.Marshal(f.Key)
			v, _ := json.Marshal(f.Value)
			sb.Write(k)
			sb.WriteString(": ")
			sb.Write(v)
		}
		sb.WriteString("}")
		fmt.Fprintln(r.writer, sb.String())
	case FormatPlain:
		for _, f := range fields {
			fmt.Fprintf(r.writer, "%s\t%s\n", f.Key, f.Value)
		}
	default:
		bold := color.New(color.Bold)
		for _, f := range fields {
			_, _ = bold.Fprintf(r.writer, "%s: ", f.Key)
			fmt.Fprintln(r.writer, f.Value)
		}
	}
}

// Success prints a success message.
func (r *Renderer) Success(msg string) {
	green := color.New(color.FgGreen)
	_, _ = green.Fprintln(r.writer, "✓ "+msg)
}

// Warning prints a warning message.
func (r *Renderer) Warning(msg string) {
	yellow := color.New(color.FgYellow)
	_, _ = yellow.Fprintln(r.writer, "! "+msg)
}

// Error prints an error message.
func (r *Renderer) Error(msg string) {
	red := color.New(color.FgRed)
	_, _ = red.Fprintln(r.writer, "✗ "+msg)
}

// Truncate truncates a string to at most maxLen runes.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
