//go:build !linux

package bench

import "errors"

func (ThreadFaults) Faults() (Faults, error) {
	return Faults{}, errors.New("bench: per-thread fault counters not supported")
}
