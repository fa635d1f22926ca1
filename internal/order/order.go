// Package order generates the page visiting sequence for a benchmark run.
package order

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Mode selects how pages are visited.
type Mode int

const (
	// ModeSequential visits pages 0, 1, ..., n-1.
	ModeSequential Mode = iota
	// ModeRandom visits pages in a uniform random permutation.
	ModeRandom
)

func (m Mode) String() string {
	switch m {
	case ModeSequential:
		return "sequential"
	case ModeRandom:
		return "random"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "sequential" or "random" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential", "seq":
		return ModeSequential, nil
	case "random", "shuffled", "rand":
		return ModeRandom, nil
	default:
		return 0, fmt.Errorf("unknown order %q (want sequential or random)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Sequential returns the identity sequence [0, n).
func Sequential(n int) []int {
	if n <= 0 {
		return []int{}
	}
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i
	}
	return seq
}

// Shuffled returns a uniform random permutation of [0, n) drawn from a PCG
// source seeded with seed. The same (n, seed) always yields the same
// permutation.
func Shuffled(n int, seed uint64) []int {
	seq := Sequential(n)
	Shuffle(seq, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
	return seq
}

// Shuffle permutes seq in place with the Fisher-Yates algorithm: for i from
// len-1 down to 1, element i is swapped with one chosen uniformly from
// [0, i].
func Shuffle(seq []int, r *rand.Rand) {
	for i := len(seq) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		seq[i], seq[j] = seq[j], seq[i]
	}
}

// Generate returns the sequence for mode. seed is ignored for sequential
// order.
func Generate(mode Mode, n int, seed uint64) []int {
	if mode == ModeRandom {
		return Shuffled(n, seed)
	}
	return Sequential(n)
}
