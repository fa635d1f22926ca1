package pagemem

import (
	"fmt"
	"unsafe"

	"github.com/tklauser/go-sysconf"
)

// Geometry describes how a byte range sits on the page grid.
type Geometry struct {
	Addr    uintptr `json:"addr" yaml:"addr"`
	Size    int     `json:"size" yaml:"size"`
	Aligned bool    `json:"aligned" yaml:"aligned"`
	Offset  int     `json:"offset" yaml:"offset"`
	Pages   int     `json:"pages" yaml:"pages"`
}

// PageSize returns the platform page size as reported by sysconf.
func PageSize() (int, error) {
	ps, err := sysconf.Sysconf(sysconf.SC_PAGESIZE)
	if err != nil {
		return 0, fmt.Errorf("%w: sysconf(_SC_PAGESIZE): %v", ErrPlatformQuery, err)
	}
	if ps <= 0 || ps&(ps-1) != 0 {
		return 0, fmt.Errorf("%w: implausible page size %d", ErrPlatformQuery, ps)
	}
	return int(ps), nil
}

// PagesSpanned returns how many pages the range [addr, addr+size) touches.
// An empty range touches none.
func PagesSpanned(addr uintptr, size, pageSize int) int {
	if size <= 0 {
		return 0
	}
	ps := uintptr(pageSize)
	end := addr + uintptr(size) - 1
	return int(end/ps-addr/ps) + 1
}

// OffsetInPage returns addr's byte offset within its page.
func OffsetInPage(addr uintptr, pageSize int) int {
	return int(addr % uintptr(pageSize))
}

// IsPageAligned reports whether addr starts a page.
func IsPageAligned(addr uintptr, pageSize int) bool {
	return OffsetInPage(addr, pageSize) == 0
}

// AddrOf returns the address of b's first element, or 0 for an empty slice.
func AddrOf(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

// Describe computes the geometry of b.
func Describe(b []byte, pageSize int) Geometry {
	addr := AddrOf(b)
	return Geometry{
		Addr:    addr,
		Size:    len(b),
		Aligned: IsPageAligned(addr, pageSize),
		Offset:  OffsetInPage(addr, pageSize),
		Pages:   PagesSpanned(addr, len(b), pageSize),
	}
}

// RoundUp rounds size up to a multiple of pageSize.
func RoundUp(size, pageSize int) int {
	return (size + pageSize - 1) / pageSize * pageSize
}
