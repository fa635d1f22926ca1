// Package sysinfo reports host memory facts around a run.
package sysinfo

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/process"
)

// ErrInsufficientMemory is returned by Preflight when the working set does
// not fit in available memory.
var ErrInsufficientMemory = errors.New("working set exceeds available memory")

// Host describes the machine a run executed on.
type Host struct {
	OS              string `json:"os" yaml:"os"`
	Arch            string `json:"arch" yaml:"arch"`
	CPUs            int    `json:"cpus" yaml:"cpus"`
	TotalMemory     uint64 `json:"totalMemory" yaml:"totalMemory"`
	AvailableMemory uint64 `json:"availableMemory" yaml:"availableMemory"`
	ProcessRSS      uint64 `json:"processRss,omitempty" yaml:"processRss,omitempty"`
}

// Collect gathers host facts. Memory figures are left zero when the
// platform cannot report them.
func Collect() Host {
	h := Host{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
		CPUs: runtime.NumCPU(),
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		h.TotalMemory = vm.Total
		h.AvailableMemory = vm.Available
	}
	if rss, err := ProcessRSS(); err == nil {
		h.ProcessRSS = rss
	}
	return h
}

// ProcessRSS returns the resident set size of this process.
func ProcessRSS() (uint64, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	info, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}

// Preflight checks that size bytes fit in currently available memory. It
// returns ErrInsufficientMemory when they do not, and nil when the platform
// cannot tell.
func Preflight(size int64) error {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil
	}
	return checkAvailable(size, vm.Available)
}

func checkAvailable(size int64, available uint64) error {
	if size > 0 && available > 0 && uint64(size) > available {
		return fmt.Errorf("%w: need %d bytes, %d available", ErrInsufficientMemory, size, available)
	}
	return nil
}
