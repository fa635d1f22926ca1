package pagemem

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned for sizes or ranges that cannot describe
	// at least one whole page.
	ErrConfiguration = errors.New("configuration error")
	// ErrPlatformQuery is returned when the platform cannot report its page
	// geometry or does not support the required memory primitives.
	ErrPlatformQuery = errors.New("platform query failed")
	// ErrOutOfMemory is returned when an anonymous mapping cannot be created.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrResidencyHint marks an eviction request the kernel did not honor.
	// It is never fatal.
	ErrResidencyHint = errors.New("residency hint not honored")
	// ErrReleased is returned when using a region after Release.
	ErrReleased = errors.New("pagemem: region is released")
)

// ResidencyHintError describes an eviction that was refused or only partly
// honored.
type ResidencyHintError struct {
	First    int   // first page of the requested range
	Count    int   // pages in the requested range
	Resident int   // pages still resident afterwards, -1 if unknown
	Err      error // underlying madvise error, nil if the call succeeded
}

func (e *ResidencyHintError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("evict pages [%d,%d): %v", e.First, e.First+e.Count, e.Err)
	}
	return fmt.Sprintf("evict pages [%d,%d): %d pages still resident", e.First, e.First+e.Count, e.Resident)
}

// Is makes errors.Is(err, ErrResidencyHint) match.
func (e *ResidencyHintError) Is(target error) bool {
	return target == ErrResidencyHint
}

func (e *ResidencyHintError) Unwrap() error {
	return e.Err
}
