// Package pagemem owns page-granular anonymous memory for latency
// measurement.
//
// # Geometry
//
// PageSize, PagesSpanned, OffsetInPage and IsPageAligned answer questions
// about where an arbitrary (address, size) pair falls relative to the
// platform page grid. They are pure functions and never touch memory.
//
// # Residency
//
// A Region is a private anonymous mapping whose pages can be pushed into a
// cold state with Evict (madvise MADV_DONTNEED) and inspected with
// ResidentPages (mincore). Eviction is a hint: the kernel may ignore it, so a
// failed or partially honored request is reported as a *ResidencyHintError
// and the caller decides whether to continue. Latency measured on the next
// touch is the only reliable evidence of residency.
//
//	r, err := pagemem.Allocate(64 << 20)
//	if err != nil { ... }
//	defer r.Release()
//
//	if err := r.Evict(); errors.Is(err, pagemem.ErrResidencyHint) {
//		// continue, but cold numbers may include resident pages
//	}
//
// # Platform Support
//
// Mapping, eviction and residency queries are implemented for Linux. Other
// platforms fail Allocate with ErrPlatformQuery.
package pagemem
