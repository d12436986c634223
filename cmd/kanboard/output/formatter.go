package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format represents the output format type
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTSV  Format = "tsv"
)

// Tabular is implemented by values that can be printed one record per line
type Tabular interface {
	Rows() [][]string
}

// Formatter handles output formatting for different formats
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a new output formatter
func NewFormatter(format Format, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
	}
}

// Format returns the configured format
func (f *Formatter) Format() Format {
	return f.format
}

// Structured reports whether output is meant for machines rather than people
func (f *Formatter) Structured() bool {
	return f.format != FormatText
}

// Print outputs data in the configured format
func (f *Formatter) Print(data interface{}) error {
	if l, ok := data.(Listing); ok && (f.format == FormatJSON || f.format == FormatYAML) {
		data = l.payload()
	}

	switch f.format {
	case FormatJSON:
		return f.printJSON(data)
	case FormatYAML:
		return f.printYAML(data)
	case FormatTSV:
		return f.printTSV(data)
	case FormatText:
		return f.printText(data)
	default:
		return fmt.Errorf("unsupported output format: %s", f.format)
	}
}

func (f *Formatter) printJSON(data interface{}) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (f *Formatter) printYAML(data interface{}) error {
	encoder := yaml.NewEncoder(f.writer)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(data)
}

// printTSV writes one tab-separated line per row. Tabs and newlines inside
// cells are replaced with spaces so every record stays on one line.
func (f *Formatter) printTSV(data interface{}) error {
	tab, ok := data.(Tabular)
	if !ok {
		return fmt.Errorf("tsv output is not supported for %T", data)
	}
	clean := strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")
	for _, row := range tab.Rows() {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = clean.Replace(cell)
		}
		if _, err := fmt.Fprintln(f.writer, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) printText(data interface{}) error {
	switch v := data.(type) {
	case Listing:
		NewPrinter(f.writer).Table(v.Header, v.displayRows())
		return nil
	case string:
		_, err := fmt.Fprintln(f.writer, v)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(f.writer, v.String())
		return err
	default:
		_, err := fmt.Fprintln(f.writer, v)
		return err
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "tsv":
		return FormatTSV, nil
	default:
		return FormatText, fmt.Errorf("invalid format '%s': must be one of: text, json, yaml, tsv", s)
	}
}
