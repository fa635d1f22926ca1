package bench

import (
	"fmt"
	"strings"

	"github.com/wesleyorama2/pagelat/internal/order"
	"github.com/wesleyorama2/pagelat/internal/pagemem"
)

// Policy decides what the sample sets keep across repeats.
type Policy int

const (
	// PolicyOverwrite keeps only the last repeat: slot k is overwritten on
	// every traversal. Memory stays bounded at one slot per page.
	PolicyOverwrite Policy = iota
	// PolicyPool summarizes every repeat and pools the summaries, so mean
	// and variance cover all repeats without storing them.
	PolicyPool
)

func (p Policy) String() string {
	switch p {
	case PolicyOverwrite:
		return "overwrite"
	case PolicyPool:
		return "pool"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses "overwrite" or "pool".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "overwrite", "last":
		return PolicyOverwrite, nil
	case "pool", "pooled":
		return PolicyPool, nil
	default:
		return 0, fmt.Errorf("unknown policy %q (want overwrite or pool)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(b []byte) error {
	parsed, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Config describes one benchmark run.
type Config struct {
	// SizeBytes is the working set; it is rounded down to whole pages.
	SizeBytes int64

	// Repeats is the number of traversals per phase (>= 1).
	Repeats int

	// Order selects sequential or shuffled traversal.
	Order order.Mode

	// Seed drives the shuffle. Ignored for sequential order.
	Seed uint64

	// Policy selects overwrite or pooled sample retention.
	Policy Policy

	// VerifyEviction checks residency with mincore after every eviction.
	VerifyEviction bool
}

// DefaultConfig returns a 1 GiB, 3-repeat sequential run.
func DefaultConfig() Config {
	return Config{
		SizeBytes:      1 << 30,
		Repeats:        3,
		Order:          order.ModeSequential,
		Policy:         PolicyOverwrite,
		VerifyEviction: true,
	}
}

// Pages returns the number of whole pages in the working set.
func (c Config) Pages(pageSize int) int {
	if pageSize <= 0 || c.SizeBytes <= 0 {
		return 0
	}
	return int(c.SizeBytes / int64(pageSize))
}

// Validate checks the configuration against pageSize. Errors match
// pagemem.ErrConfiguration.
func (c Config) Validate(pageSize int) error {
	if c.SizeBytes <= 0 {
		return fmt.Errorf("%w: working set must be positive, got %d bytes", pagemem.ErrConfiguration, c.SizeBytes)
	}
	if c.Pages(pageSize) < 1 {
		return fmt.Errorf("%w: working set of %d bytes is smaller than one %d-byte page",
			pagemem.ErrConfiguration, c.SizeBytes, pageSize)
	}
	if c.Repeats < 1 {
		return fmt.Errorf("%w: repeats must be at least 1, got %d", pagemem.ErrConfiguration, c.Repeats)
	}
	if c.Order != order.ModeSequential && c.Order != order.ModeRandom {
		return fmt.Errorf("%w: unknown order %v", pagemem.ErrConfiguration, c.Order)
	}
	if c.Policy != PolicyOverwrite && c.Policy != PolicyPool {
		return fmt.Errorf("%w: unknown policy %v", pagemem.ErrConfiguration, c.Policy)
	}
	return nil
}
