package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/wesleyorama2/pagelat/internal/bench"
)

// htmlData contains all data needed to render the HTML report.
type htmlData struct {
	*Report
	Generated string
	Cases     []htmlCase
}

type htmlCase struct {
	Name  string
	Class string
	Phase bench.PhaseResult
	// Width is the bar width in percent of the slower case.
	Width float64
}

// GenerateHTML generates an HTML report and writes it to a file.
func GenerateHTML(rep *Report, outputPath string) error {
	html, err := GenerateHTMLString(rep)
	if err != nil {
		return fmt.Errorf("failed to generate HTML: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	return nil
}

// GenerateHTMLString generates an HTML report and returns it as a string.
func GenerateHTMLString(rep *Report) (string, error) {
	if rep == nil || rep.Result == nil {
		return "", fmt.Errorf("result cannot be nil")
	}

	tmpl, err := template.New("report").Funcs(templateFuncs()).Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	res := rep.Result
	slowest := max(res.Cold.Summary.Mean, res.Hot.Summary.Mean)
	width := func(mean float64) float64 {
		if slowest <= 0 {
			return 0
		}
		return mean / slowest * 100
	}

	data := htmlData{
		Report:    rep,
		Generated: res.StartTime.Format(time.RFC3339),
		Cases: []htmlCase{
			{Name: CaseCold, Class: "cold", Phase: res.Cold, Width: width(res.Cold.Summary.Mean)},
			{Name: CaseHot, Class: "hot", Phase: res.Hot, Width: width(res.Hot.Summary.Mean)},
		},
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// templateFuncs returns the template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatNumber":  formatNumber,
		"formatBytes":   formatBytes,
		"formatLatency": formatLatency,
		"nanos":         func(ns int64) string { return formatLatency(time.Duration(ns)) },
		"slowdown":      slowdown,
	}
}

// formatNumber formats an integer with thousands separators.
func formatNumber(v any) string {
	switch n := v.(type) {
	case int:
		return humanize.Comma(int64(n))
	case int64:
		return humanize.Comma(n)
	case uint64:
		return humanize.Comma(int64(n))
	default:
		return fmt.Sprint(v)
	}
}

// formatBytes formats a byte count with binary units.
func formatBytes(v any) string {
	switch n := v.(type) {
	case int64:
		if n < 0 {
			return fmt.Sprintf("%d B", n)
		}
		return humanize.IBytes(uint64(n))
	case uint64:
		return humanize.IBytes(n)
	default:
		return fmt.Sprint(v)
	}
}

// formatLatency formats a latency duration in a human-readable way.
func formatLatency(d time.Duration) string {
	if d == 0 {
		return "0"
	}
	if d < time.Microsecond {
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
	if d < time.Millisecond {
		us := float64(d.Nanoseconds()) / 1000.0
		if us < 100 {
			return fmt.Sprintf("%.1fµs", us)
		}
		return fmt.Sprintf("%dµs", int(us))
	}
	if d < time.Second {
		ms := float64(d.Microseconds()) / 1000.0
		if ms < 10 {
			return fmt.Sprintf("%.2fms", ms)
		}
		return fmt.Sprintf("%.1fms", ms)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

func slowdown(res *bench.Result) string {
	if res.Hot.Summary.Mean <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1fx", res.Cold.Summary.Mean/res.Hot.Summary.Mean)
}
