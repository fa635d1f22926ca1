// Package stats aggregates per-page latency samples.
package stats

import (
	"math"
	"math/bits"
)

// Summary holds population statistics over a set of nanosecond samples.
type Summary struct {
	Count  int64   `json:"count" yaml:"count"`
	Mean   float64 `json:"meanNs" yaml:"meanNs"`
	StdDev float64 `json:"stddevNs" yaml:"stddevNs"`
	Min    int64   `json:"minNs" yaml:"minNs"`
	Max    int64   `json:"maxNs" yaml:"maxNs"`
}

// Variance returns the population variance.
func (s Summary) Variance() float64 {
	return s.StdDev * s.StdDev
}

// Summarize computes mean, standard deviation, min and max of samples in
// two passes.
//
// The first pass finds min and max and sums into an exact 128-bit
// accumulator, so the mean carries no rounding from the summation however
// many samples there are. The second pass sums squared deviations from that
// mean with Neumaier compensation. An empty input yields the zero Summary.
func Summarize(samples []int64) Summary {
	n := len(samples)
	if n == 0 {
		return Summary{}
	}

	minV, maxV := samples[0], samples[0]
	var acc wideSum
	for _, v := range samples {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
		acc.add(v)
	}
	mean := acc.mean(uint64(n))

	var sum, comp float64
	for _, v := range samples {
		d := float64(v) - mean
		sum, comp = neumaierAdd(sum, comp, d*d)
	}
	variance := (sum + comp) / float64(n)

	return Summary{
		Count:  int64(n),
		Mean:   mean,
		StdDev: math.Sqrt(variance),
		Min:    minV,
		Max:    maxV,
	}
}

// Merge combines two summaries as if they had been computed over the
// concatenation of their samples (Chan et al. pairwise update).
func Merge(a, b Summary) Summary {
	if a.Count == 0 {
		return b
	}
	if b.Count == 0 {
		return a
	}

	n := float64(a.Count + b.Count)
	na, nb := float64(a.Count), float64(b.Count)
	delta := b.Mean - a.Mean
	mean := a.Mean + delta*nb/n
	m2 := a.Variance()*na + b.Variance()*nb + delta*delta*na*nb/n

	return Summary{
		Count:  a.Count + b.Count,
		Mean:   mean,
		StdDev: math.Sqrt(m2 / n),
		Min:    min(a.Min, b.Min),
		Max:    max(a.Max, b.Max),
	}
}

// wideSum is a signed 128-bit two's complement accumulator.
type wideSum struct {
	hi, lo uint64
}

func (w *wideSum) add(v int64) {
	var carry uint64
	w.lo, carry = bits.Add64(w.lo, uint64(v), 0)
	ext := uint64(0)
	if v < 0 {
		ext = math.MaxUint64
	}
	w.hi, _ = bits.Add64(w.hi, ext, carry)
}

// mean returns sum/n, dividing in integers first so only the final
// conversion rounds.
func (w wideSum) mean(n uint64) float64 {
	hi, lo := w.hi, w.lo
	neg := int64(hi) < 0
	if neg {
		// Negate: invert and add one.
		var borrow uint64
		lo, borrow = bits.Add64(^lo, 1, 0)
		hi = ^hi + borrow
	}

	qhi := hi / n
	qlo, rem := bits.Div64(hi%n, lo, n)
	m := float64(qhi)*0x1p64 + float64(qlo) + float64(rem)/float64(n)
	if neg {
		return -m
	}
	return m
}

func neumaierAdd(sum, comp, x float64) (float64, float64) {
	t := sum + x
	if math.Abs(sum) >= math.Abs(x) {
		comp += (sum - t) + x
	} else {
		comp += (x - t) + sum
	}
	return t, comp
}
