package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/pagelat/internal/bench"
	"github.com/wesleyorama2/pagelat/internal/order"
	"github.com/wesleyorama2/pagelat/internal/pagemem"
	"github.com/wesleyorama2/pagelat/internal/stats"
	"github.com/wesleyorama2/pagelat/internal/sysinfo"
)

func sampleResult() *bench.Result {
	return &bench.Result{
		RunID:     "cs0vq3ttsk8gf2nsv7ag",
		StartTime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
		SizeBytes: 1 << 30,
		Pages:     262144,
		PageSize:  4096,
		Repeats:   3,
		Order:     order.ModeRandom,
		Seed:      42,
		Policy:    bench.PolicyOverwrite,
		Cold: bench.PhaseResult{
			Summary:     stats.Summary{Count: 262144, Mean: 2345.5, StdDev: 410.25, Min: 1100, Max: 98000},
			Percentiles: stats.Percentiles{P50: 2200, P90: 2900, P99: 5100, P999: 21000},
			Faults:      bench.Faults{Minor: 786432},
		},
		Hot: bench.PhaseResult{
			Summary:     stats.Summary{Count: 262144, Mean: 45.25, StdDev: 12.5, Min: 20, Max: 900},
			Percentiles: stats.Percentiles{P50: 40, P90: 60, P99: 120, P999: 400},
		},
		Clock: bench.ClockInfo{Resolution: time.Nanosecond, OverheadMin: 18, OverheadMean: 21},
	}
}

func TestPrintResult_Table(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(ConsoleConfig{Writer: &buf, NoColor: true})

	require.NoError(t, c.PrintResult(&Report{Result: sampleResult()}))
	lines := strings.Split(buf.String(), "\n")

	assert.Equal(t, fmt.Sprintf("%20s %12s %12s %16s %16s %16s %16s",
		"case", "pages", "page_KB", "mean_ns", "stddev_ns", "min_ns", "max_ns"), lines[0])
	assert.Equal(t, fmt.Sprintf("%20s %12d %12d %16.2f %16.2f %16d %16d",
		"cold_first_touch", 262144, 4, 2345.5, 410.25, 1100, 98000), lines[1])
	assert.Equal(t, fmt.Sprintf("%20s %12d %12d %16.2f %16.2f %16d %16d",
		"hot_resident", 262144, 4, 45.25, 12.5, 20, 900), lines[2])
	assert.Equal(t, "", lines[3])
	assert.Equal(t, "Summary: region=1.0 GiB, repeats=3, order=random", lines[4])

	out := buf.String()
	assert.Contains(t, out, "seed=42")
	assert.Contains(t, out, "p99=5.1µs")
	assert.Contains(t, out, "cold minor=786,432")
	assert.Contains(t, out, "51.8x")
	assert.NotContains(t, out, "Warning")
	assert.NotContains(t, out, "\x1b[", "no escape codes without color")
}

func TestPrintResult_Colors(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(ConsoleConfig{Writer: &buf, ForceColors: true})

	require.NoError(t, c.PrintResult(&Report{Result: sampleResult()}))
	assert.Contains(t, buf.String(), "\x1b[")

	buf.Reset()
	c = NewConsole(ConsoleConfig{Writer: &buf, ForceColors: true, NoColor: true})
	require.NoError(t, c.PrintResult(&Report{Result: sampleResult()}))
	assert.NotContains(t, buf.String(), "\x1b[", "NoColor wins over ForceColors")
}

func TestPrintResult_Extras(t *testing.T) {
	res := sampleResult()
	res.Order = order.ModeSequential
	res.ResidencyHints = 2

	var buf bytes.Buffer
	c := NewConsole(ConsoleConfig{Writer: &buf, NoColor: true})
	host := &sysinfo.Host{OS: "linux", Arch: "amd64", CPUs: 8, TotalMemory: 16 << 30, AvailableMemory: 8 << 30}
	require.NoError(t, c.PrintResult(&Report{Result: res, Host: host}))

	out := buf.String()
	assert.Contains(t, out, "order=sequential")
	assert.NotContains(t, out, "seed=")
	assert.Contains(t, out, "Warning: 2 eviction(s)")
	assert.Contains(t, out, "linux/amd64 cpus=8 memory=16 GiB available=8.0 GiB")
}

func TestPrintSurvey(t *testing.T) {
	s := &bench.Survey{
		PageSize: 4096,
		Heap: []pagemem.Geometry{
			{Addr: 0x1000, Size: 1, Aligned: true, Offset: 0, Pages: 1},
			{Addr: 0x1ff0, Size: 32, Aligned: false, Offset: 4080, Pages: 2},
		},
		Access: []bench.AccessRow{{
			Size: 4096, Pages: 1,
			Cold: stats.Summary{Count: 10, Mean: 1000, Min: 800, Max: 1500},
			Hot:  stats.Summary{Count: 10, Mean: 10, Min: 5, Max: 20},
		}},
		Boundary: []bench.BoundaryPoint{{Position: 3896, Page: 0, PageOffset: 3896, Nanos: 700}},
	}

	var buf bytes.Buffer
	c := NewConsole(ConsoleConfig{Writer: &buf, NoColor: true})
	require.NoError(t, c.PrintSurvey(s))

	out := buf.String()
	assert.Contains(t, out, "System-reported page size: 4096 bytes (4 KB)")
	assert.Contains(t, out, fmt.Sprintf("%-12d 0x%-14x %-12s %-12d %-20d %-12s", 32, 0x1ff0, "No", 4080, 2, "Spans multiple"))
	assert.Contains(t, out, "Fits in 1 page")
	assert.Contains(t, out, "Cold access (page fault): min=800, max=1500, avg=1000 ns")
	assert.Contains(t, out, "(100.0x slower)")
	assert.Contains(t, out, "Time variation (cold):     700 ns")
	assert.Contains(t, out, "Page 0, offset 3896")
}
