package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/xid"

	"github.com/wesleyorama2/pagelat/internal/bench"
	"github.com/wesleyorama2/pagelat/internal/order"
	"github.com/wesleyorama2/pagelat/internal/report"
	"github.com/wesleyorama2/pagelat/internal/stats"
	"github.com/wesleyorama2/pagelat/internal/sysinfo"
)

func main() {
	rep := createSampleReport()

	outputPath := "sample-report.html"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	err := report.GenerateHTML(rep, outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sample report generated: %s\n", outputPath)
}

func createSampleReport() *report.Report {
	const (
		pageSize = 4096
		pages    = 262144
	)
	now := time.Now()

	return &report.Report{
		Result: &bench.Result{
			RunID:     xid.NewWithTime(now).String(),
			StartTime: now.Add(-3 * time.Second),
			Duration:  2840 * time.Millisecond,
			SizeBytes: pages * pageSize,
			Pages:     pages,
			PageSize:  pageSize,
			Repeats:   3,
			Order:     order.ModeRandom,
			Seed:      20260315,
			Policy:    bench.PolicyPool,
			Cold: bench.PhaseResult{
				Summary: stats.Summary{
					Count:  3 * pages,
					Mean:   2417.83,
					StdDev: 688.41,
					Min:    1052,
					Max:    187340,
				},
				Percentiles: stats.Percentiles{P50: 2271, P90: 3016, P99: 5887, P999: 24511},
				Faults:      bench.Faults{Minor: 3 * pages, Major: 0},
				Elapsed:     1960 * time.Millisecond,
			},
			Hot: bench.PhaseResult{
				Summary: stats.Summary{
					Count:  3 * pages,
					Mean:   47.12,
					StdDev: 19.86,
					Min:    21,
					Max:    12873,
				},
				Percentiles: stats.Percentiles{P50: 42, P90: 63, P99: 141, P999: 512},
				Faults:      bench.Faults{Minor: 0, Major: 0},
				Elapsed:     41 * time.Millisecond,
			},
			ResidencyHints: 0,
			Clock: bench.ClockInfo{
				Resolution:   time.Nanosecond,
				OverheadMin:  18 * time.Nanosecond,
				OverheadMean: 23 * time.Nanosecond,
			},
		},
		Host: &sysinfo.Host{
			OS:              "linux",
			Arch:            "amd64",
			CPUs:            8,
			TotalMemory:     16 << 30,
			AvailableMemory: 11 << 30,
			ProcessRSS:      38 << 20,
		},
	}
}
