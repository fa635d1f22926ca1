package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/wesleyorama2/pagelat/internal/history"
)

const (
	historyHeader = "%-20s %-20s %10s %7s %-10s %-9s %12s %12s %9s"
	historyRow    = "%-20s %-20s %10s %7d %-10s %-9s %12.2f %12.2f %9s"
)

// WriteHistory renders recorded runs, newest first as given.
func WriteHistory(w io.Writer, f Format, entries []history.Entry, opts Options) error {
	if entries == nil {
		entries = []history.Entry{}
	}

	switch f {
	case FormatText, "":
		c := NewConsole(ConsoleConfig{Writer: w, NoColor: opts.NoColor, ForceColors: opts.ForceColors})
		return c.PrintHistory(entries)
	case FormatJSON:
		return writeJSON(w, entries)
	case FormatYAML:
		return writeYAML(w, entries)
	default:
		return fmt.Errorf("format %q is not supported for history output", f)
	}
}

// PrintHistory writes one line per recorded run.
func (c *Console) PrintHistory(entries []history.Entry) error {
	if len(entries) == 0 {
		_, err := io.WriteString(c.w, "No runs recorded.\n")
		return err
	}

	out := c.colors.Header.Sprintf(historyHeader,
		"run", "started", "region", "repeats", "order", "policy", "cold_ns", "hot_ns", "slowdown") + "\n"
	for _, e := range entries {
		slow := "-"
		if e.HotMean > 0 {
			slow = fmt.Sprintf("%.1fx", e.ColdMean/e.HotMean)
		}
		line := fmt.Sprintf(historyRow,
			e.ID, e.StartTime.Local().Format(time.DateTime), humanize.IBytes(uint64(e.SizeBytes)),
			e.Repeats, e.Order, e.Policy, e.ColdMean, e.HotMean, slow)
		if e.ResidencyHints > 0 {
			line = c.colors.Warn.Sprint(line)
		}
		out += line + "\n"
	}

	_, err := io.WriteString(c.w, out)
	return err
}
