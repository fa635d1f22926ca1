//go:build linux

package touch

import (
	"time"

	"golang.org/x/sys/unix"
)

// Resolution returns the granularity of CLOCK_MONOTONIC.
func Resolution() (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGetres(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, err
	}
	return time.Duration(ts.Nano()), nil
}
