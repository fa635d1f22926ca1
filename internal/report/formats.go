// Package report renders benchmark results and probe surveys.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/pagelat/internal/bench"
	"github.com/wesleyorama2/pagelat/internal/sysinfo"
)

// Format represents the available output formats
type Format string

const (
	// FormatText is the default human-readable table
	FormatText Format = "text"
	// FormatJSON outputs the full result as JSON
	FormatJSON Format = "json"
	// FormatYAML outputs the full result as YAML
	FormatYAML Format = "yaml"
	// FormatHTML outputs a standalone HTML page
	FormatHTML Format = "html"
)

// ParseFormat accepts text, json, yaml or html.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json, yaml or html)", s)
	}
}

// Report is the document written for a benchmark run.
type Report struct {
	Result *bench.Result `json:"result" yaml:"result"`
	Host   *sysinfo.Host `json:"host,omitempty" yaml:"host,omitempty"`
}

// Options controls rendering.
type Options struct {
	// NoColor disables ANSI colors in text output.
	NoColor bool
	// ForceColors enables colors even when w is not a terminal.
	ForceColors bool
}

// Write renders rep to w in format f.
func Write(w io.Writer, f Format, rep *Report, opts Options) error {
	if rep == nil || rep.Result == nil {
		return fmt.Errorf("result cannot be nil")
	}

	switch f {
	case FormatText, "":
		c := NewConsole(ConsoleConfig{Writer: w, NoColor: opts.NoColor, ForceColors: opts.ForceColors})
		return c.PrintResult(rep)
	case FormatJSON:
		return writeJSON(w, rep)
	case FormatYAML:
		return writeYAML(w, rep)
	case FormatHTML:
		html, err := GenerateHTMLString(rep)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, html)
		return err
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// WriteSurvey renders a probe survey. HTML is not available for surveys.
func WriteSurvey(w io.Writer, f Format, s *bench.Survey, opts Options) error {
	if s == nil {
		return fmt.Errorf("survey cannot be nil")
	}

	switch f {
	case FormatText, "":
		c := NewConsole(ConsoleConfig{Writer: w, NoColor: opts.NoColor, ForceColors: opts.ForceColors})
		return c.PrintSurvey(s)
	case FormatJSON:
		return writeJSON(w, s)
	case FormatYAML:
		return writeYAML(w, s)
	default:
		return fmt.Errorf("format %q is not supported for probe output", f)
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error formatting YAML: %w", err)
	}
	return enc.Close()
}
