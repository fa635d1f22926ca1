package pagemem

import (
	"errors"
	"fmt"
)

// Region is a private anonymous mapping measured in whole pages.
//
// A Region is not safe for concurrent use. Bytes returns memory that is
// valid only until Release.
type Region struct {
	data     []byte
	pageSize int
	verify   bool
}

// Option configures Allocate.
type Option func(*Region)

// WithoutVerification disables the mincore check that follows every
// eviction. Evict then only reports madvise failures.
func WithoutVerification() Option {
	return func(r *Region) { r.verify = false }
}

// Allocate maps size bytes, rounded up to a page boundary, of zero-filled
// anonymous memory. The mapping always starts on a page boundary.
//
// Requests smaller than a page are rounded up to one page, not rejected.
// Callers that need at least one full page of working set, such as
// bench.Config.Validate, enforce that minimum themselves.
func Allocate(size int, opts ...Option) (*Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: region size must be positive, got %d", ErrConfiguration, size)
	}
	pageSize, err := PageSize()
	if err != nil {
		return nil, err
	}

	length := RoundUp(size, pageSize)
	if length < size {
		return nil, fmt.Errorf("%w: region size %d overflows", ErrConfiguration, size)
	}

	data, err := osMapAnon(length)
	if errors.Is(err, ErrPlatformQuery) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %v", ErrOutOfMemory, length, err)
	}

	r := &Region{data: data, pageSize: pageSize, verify: true}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Bytes returns the mapped memory, or nil once released.
func (r *Region) Bytes() []byte {
	return r.data
}

// Len returns the mapped length in bytes.
func (r *Region) Len() int {
	return len(r.data)
}

// PageSize returns the page size the region was sized with.
func (r *Region) PageSize() int {
	return r.pageSize
}

// Pages returns the number of pages in the region.
func (r *Region) Pages() int {
	if r.pageSize == 0 {
		return 0
	}
	return len(r.data) / r.pageSize
}

// Released reports whether Release has been called.
func (r *Region) Released() bool {
	return r.data == nil
}

// Evict discards every page of the region.
func (r *Region) Evict() error {
	return r.EvictPages(0, r.Pages())
}

// EvictPages advises the kernel that pages [first, first+count) are no
// longer needed. A subsequent touch of an evicted page takes a fresh
// zero-fill fault.
//
// A refused request, or one that leaves pages resident, is returned as a
// *ResidencyHintError. Other errors indicate misuse.
func (r *Region) EvictPages(first, count int) error {
	span, err := r.span(first, count)
	if err != nil {
		return err
	}
	if err := osAdvise(span, adviseDontNeed); err != nil {
		return &ResidencyHintError{First: first, Count: count, Resident: -1, Err: err}
	}
	if !r.verify {
		return nil
	}

	resident, err := osResident(span, r.pageSize)
	if err != nil {
		// Nothing to say about the outcome; the hint itself went through.
		return nil
	}
	if resident > 0 {
		return &ResidencyHintError{First: first, Count: count, Resident: resident}
	}
	return nil
}

// ResidentPages counts how many of pages [first, first+count) the kernel
// currently reports as resident.
func (r *Region) ResidentPages(first, count int) (int, error) {
	span, err := r.span(first, count)
	if err != nil {
		return 0, err
	}
	n, err := osResident(span, r.pageSize)
	if err != nil {
		return 0, fmt.Errorf("%w: mincore: %v", ErrPlatformQuery, err)
	}
	return n, nil
}

// Release unmaps the region. It is safe to call more than once.
func (r *Region) Release() error {
	if r.data == nil {
		return nil
	}
	data := r.data
	r.data = nil
	if err := osUnmap(data); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}

func (r *Region) span(first, count int) ([]byte, error) {
	if r.data == nil {
		return nil, ErrReleased
	}
	if first < 0 || count < 0 || first+count > r.Pages() {
		return nil, fmt.Errorf("%w: page range [%d,%d) outside region of %d pages",
			ErrConfiguration, first, first+count, r.Pages())
	}
	return r.data[first*r.pageSize : (first+count)*r.pageSize], nil
}
