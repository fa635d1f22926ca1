package stats

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Percentiles are latency quantiles in nanoseconds.
type Percentiles struct {
	P50  int64 `json:"p50Ns" yaml:"p50Ns"`
	P90  int64 `json:"p90Ns" yaml:"p90Ns"`
	P99  int64 `json:"p99Ns" yaml:"p99Ns"`
	P999 int64 `json:"p999Ns" yaml:"p999Ns"`
}

// DistributionConfig bounds the histogram.
type DistributionConfig struct {
	// Highest is the largest recordable value in nanoseconds (default: 60s).
	// Larger samples are clamped.
	Highest int64

	// SigFigs is the number of significant figures kept (default: 3).
	SigFigs int
}

// DefaultDistributionConfig returns the default configuration.
func DefaultDistributionConfig() DistributionConfig {
	return DistributionConfig{
		Highest: int64(time.Minute),
		SigFigs: 3,
	}
}

// Distribution tracks the shape of a sample set in an HDR histogram.
// Values are kept to SigFigs precision, so quantiles are approximate; the
// exact moments come from Summarize.
type Distribution struct {
	hist    *hdrhistogram.Histogram
	highest int64
	clamped int64
}

// NewDistribution creates a distribution with the default configuration.
func NewDistribution() *Distribution {
	return NewDistributionWithConfig(DefaultDistributionConfig())
}

// NewDistributionWithConfig creates a distribution with custom bounds.
func NewDistributionWithConfig(cfg DistributionConfig) *Distribution {
	def := DefaultDistributionConfig()
	if cfg.Highest <= 0 {
		cfg.Highest = def.Highest
	}
	if cfg.SigFigs <= 0 {
		cfg.SigFigs = def.SigFigs
	}
	return &Distribution{
		hist:    hdrhistogram.New(1, cfg.Highest, cfg.SigFigs),
		highest: cfg.Highest,
	}
}

// Record adds samples. Negative values count as zero; values above the
// configured maximum are clamped and counted in Clamped.
func (d *Distribution) Record(samples []int64) {
	for _, v := range samples {
		if v < 0 {
			v = 0
		}
		if v > d.highest {
			v = d.highest
			d.clamped++
		}
		// Cannot fail: v is within [0, highest].
		_ = d.hist.RecordValue(v)
	}
}

// Count returns the number of recorded values.
func (d *Distribution) Count() int64 {
	return d.hist.TotalCount()
}

// Clamped returns how many values exceeded the histogram range.
func (d *Distribution) Clamped() int64 {
	return d.clamped
}

// Percentiles returns P50/P90/P99/P99.9. All are zero when empty.
func (d *Distribution) Percentiles() Percentiles {
	if d.hist.TotalCount() == 0 {
		return Percentiles{}
	}
	return Percentiles{
		P50:  d.hist.ValueAtQuantile(50),
		P90:  d.hist.ValueAtQuantile(90),
		P99:  d.hist.ValueAtQuantile(99),
		P999: d.hist.ValueAtQuantile(99.9),
	}
}

// Reset clears all recorded values.
func (d *Distribution) Reset() {
	d.hist.Reset()
	d.clamped = 0
}
