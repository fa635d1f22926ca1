package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/wesleyorama2/pagelat/internal/bench"
	"github.com/wesleyorama2/pagelat/internal/order"
	"github.com/wesleyorama2/pagelat/internal/pagemem"
	"github.com/wesleyorama2/pagelat/internal/stats"
)

const (
	tableHeader = "%20s %12s %12s %16s %16s %16s %16s"
	tableRow    = "%20s %12d %12d %16.2f %16.2f %16d %16d"

	surveyHeader = "%-12s %-16s %-12s %-12s %-20s %-12s"
	surveyRow    = "%-12d 0x%-14x %-12s %-12d %-20d %-12s\n"
)

// Row labels of the result table.
const (
	CaseCold = "cold_first_touch"
	CaseHot  = "hot_resident"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Header    *color.Color
	Cold      *color.Color
	Hot       *color.Color
	Label     *color.Color
	Warn      *color.Color
	Highlight *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Header:    color.New(color.Bold),
		Cold:      color.New(color.FgYellow),
		Hot:       color.New(color.FgGreen),
		Label:     color.New(color.FgCyan),
		Warn:      color.New(color.FgRed, color.Bold),
		Highlight: color.New(color.FgMagenta, color.Bold),
	}
}

func (s *ColorScheme) all() []*color.Color {
	return []*color.Color{s.Header, s.Cold, s.Hot, s.Label, s.Warn, s.Highlight}
}

// ConsoleConfig contains configuration for Console.
type ConsoleConfig struct {
	Writer      io.Writer
	NoColor     bool
	ForceColors bool
}

// Console writes human-readable tables.
type Console struct {
	w      io.Writer
	colors *ColorScheme
}

// NewConsole creates a console writer. Colors are used only on terminals
// unless forced, and never when NoColor is set.
func NewConsole(config ConsoleConfig) *Console {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	useColors := !config.NoColor && (config.ForceColors || (isTerminal(config.Writer) && supportsColors()))

	scheme := DefaultColorScheme()
	for _, c := range scheme.all() {
		if useColors {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return &Console{w: config.Writer, colors: scheme}
}

// PrintResult writes the cold/hot table followed by the summary line and
// the supporting measurements.
func (c *Console) PrintResult(rep *Report) error {
	res := rep.Result
	pageKB := res.PageSize / 1024

	out := c.colors.Header.Sprintf(tableHeader,
		"case", "pages", "page_KB", "mean_ns", "stddev_ns", "min_ns", "max_ns") + "\n"
	out += c.colors.Cold.Sprintf(tableRow, CaseCold, res.Pages, pageKB,
		res.Cold.Summary.Mean, res.Cold.Summary.StdDev, res.Cold.Summary.Min, res.Cold.Summary.Max) + "\n"
	out += c.colors.Hot.Sprintf(tableRow, CaseHot, res.Pages, pageKB,
		res.Hot.Summary.Mean, res.Hot.Summary.StdDev, res.Hot.Summary.Min, res.Hot.Summary.Max) + "\n"

	out += fmt.Sprintf("\nSummary: region=%s, repeats=%d, order=%s\n",
		humanize.IBytes(uint64(res.SizeBytes)), res.Repeats, res.Order)

	out += "\n"
	out += c.line("Run", fmt.Sprintf("%s policy=%s%s", res.RunID, res.Policy, seedSuffix(res)))
	out += c.line("Percentiles", fmt.Sprintf("cold %s | hot %s",
		formatPercentiles(res.Cold.Percentiles), formatPercentiles(res.Hot.Percentiles)))
	out += c.line("Faults", fmt.Sprintf("cold minor=%s major=%s | hot minor=%s major=%s",
		humanize.Comma(res.Cold.Faults.Minor), humanize.Comma(res.Cold.Faults.Major),
		humanize.Comma(res.Hot.Faults.Minor), humanize.Comma(res.Hot.Faults.Major)))
	if res.Clock.Resolution > 0 || res.Clock.OverheadMean > 0 {
		out += c.line("Clock", fmt.Sprintf("resolution=%s overhead min=%s mean=%s",
			res.Clock.Resolution, res.Clock.OverheadMin, res.Clock.OverheadMean))
	}
	if res.Hot.Summary.Mean > 0 {
		out += c.line("Slowdown", c.colors.Highlight.Sprintf("%.1fx", res.Cold.Summary.Mean/res.Hot.Summary.Mean))
	}
	if rep.Host != nil && rep.Host.AvailableMemory > 0 {
		out += c.line("Host", fmt.Sprintf("%s/%s cpus=%d memory=%s available=%s",
			rep.Host.OS, rep.Host.Arch, rep.Host.CPUs,
			humanize.IBytes(rep.Host.TotalMemory), humanize.IBytes(rep.Host.AvailableMemory)))
	}
	if res.ResidencyHints > 0 {
		out += c.colors.Warn.Sprintf("Warning: %d eviction(s) were not fully honored; cold samples may include resident pages\n",
			res.ResidencyHints)
	}

	_, err := io.WriteString(c.w, out)
	return err
}

// PrintSurvey writes the page geometry survey.
func (c *Console) PrintSurvey(s *bench.Survey) error {
	ps := s.PageSize
	out := fmt.Sprintf("System-reported page size: %d bytes (%d KB)\n\n", ps, ps/1024)

	out += c.colors.Header.Sprint("Heap allocations of increasing size") + "\n\n"
	out += c.geometryTable(s.Heap)

	out += "\n" + c.colors.Header.Sprint("Allocations near the page size") + "\n\n"
	out += c.geometryTable(s.NearPage)

	out += "\n" + c.colors.Header.Sprint("Access times") + "\n\n"
	for _, row := range s.Access {
		out += fmt.Sprintf("Array size: %d bytes (%d pages)\n", row.Size, row.Pages)
		out += c.colors.Cold.Sprintf("  Cold access (page fault): min=%d, max=%d, avg=%.0f ns\n",
			row.Cold.Min, row.Cold.Max, row.Cold.Mean)
		out += c.colors.Hot.Sprintf("  Hot access (resident):    min=%d, max=%d, avg=%.0f ns\n",
			row.Hot.Min, row.Hot.Max, row.Hot.Mean)
		out += fmt.Sprintf("  Difference:                avg=%.0f ns (%.1fx slower)\n",
			max(row.Cold.Mean-row.Hot.Mean, 0), row.Slowdown())
		out += fmt.Sprintf("  Time variation (cold):     %d ns\n\n", row.Cold.Max-row.Cold.Min)
	}

	out += c.colors.Header.Sprint("Cold touches around the first page boundary") + "\n\n"
	out += "Position (bytes)  Access Time (ns)  Page Offset\n"
	out += "----------------  ----------------  -----------\n"
	for _, p := range s.Boundary {
		out += fmt.Sprintf("%16d  %16d  Page %d, offset %d\n", p.Position, p.Nanos, p.Page, p.PageOffset)
	}

	if s.ResidencyHints > 0 {
		out += c.colors.Warn.Sprintf("\nWarning: %d eviction(s) were not fully honored\n", s.ResidencyHints)
	}

	_, err := io.WriteString(c.w, out)
	return err
}

func (c *Console) geometryTable(rows []pagemem.Geometry) string {
	out := c.colors.Header.Sprintf(surveyHeader,
		"Size (bytes)", "Address", "Page-aligned", "Offset", "Pages Spanned", "Status") + "\n"
	for _, g := range rows {
		aligned := "No"
		if g.Aligned {
			aligned = "Yes"
		}
		status := "Fits in 1 page"
		if g.Pages > 1 {
			status = "Spans multiple"
		}
		out += fmt.Sprintf(surveyRow, g.Size, g.Addr, aligned, g.Offset, g.Pages, status)
	}
	return out
}

func (c *Console) line(label, value string) string {
	return c.colors.Label.Sprintf("%-12s", label+":") + " " + value + "\n"
}

func seedSuffix(res *bench.Result) string {
	if res.Order != order.ModeRandom {
		return ""
	}
	return fmt.Sprintf(" seed=%d", res.Seed)
}

func formatPercentiles(p stats.Percentiles) string {
	return fmt.Sprintf("p50=%s p90=%s p99=%s p99.9=%s",
		time.Duration(p.P50), time.Duration(p.P90), time.Duration(p.P99), time.Duration(p.P999))
}
