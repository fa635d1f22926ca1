//go:build !linux

package pagemem

import (
	"fmt"
	"runtime"
)

const adviseDontNeed = 0

var errUnsupported = fmt.Errorf("%w: anonymous page control is not supported on %s", ErrPlatformQuery, runtime.GOOS)

func osMapAnon(length int) ([]byte, error) {
	return nil, errUnsupported
}

func osUnmap(data []byte) error {
	return nil
}

func osAdvise(data []byte, advice int) error {
	return errUnsupported
}

func osResident(data []byte, pageSize int) (int, error) {
	return 0, errUnsupported
}
