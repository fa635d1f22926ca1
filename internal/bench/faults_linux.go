//go:build linux

package bench

import (
	"golang.org/x/sys/unix"
)

func (ThreadFaults) Faults() (Faults, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_THREAD, &ru); err != nil {
		return Faults{}, err
	}
	return Faults{Minor: int64(ru.Minflt), Major: int64(ru.Majflt)}, nil
}
