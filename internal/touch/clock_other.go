//go:build !linux

package touch

import (
	"errors"
	"time"
)

// Resolution is not available on this platform.
func Resolution() (time.Duration, error) {
	return 0, errors.New("touch: clock resolution query not supported")
}
