package bench

import (
	"errors"
	"fmt"
	"time"

	"github.com/wesleyorama2/pagelat/internal/pagemem"
	"github.com/wesleyorama2/pagelat/internal/stats"
	"github.com/wesleyorama2/pagelat/internal/touch"
)

// surveySizes are the heap allocation sizes probed for geometry.
var surveySizes = []int{
	1, 2, 4, 8, 16, 32, 64, 128, 256, 512,
	1024, 2048, 4096, 8192, 16384, 32768, 65536,
}

// accessPositions is the number of offsets sampled per access row.
const accessPositions = 10

// OffsetTimer times a touch at an arbitrary byte offset.
type OffsetTimer interface {
	TouchOffset(mem []byte, off int) time.Duration
}

// AccessRow compares cold and hot touches spread over one mapping.
type AccessRow struct {
	Size  int           `json:"size" yaml:"size"`
	Pages int           `json:"pages" yaml:"pages"`
	Cold  stats.Summary `json:"cold" yaml:"cold"`
	Hot   stats.Summary `json:"hot" yaml:"hot"`
}

// Slowdown returns cold mean over hot mean, or 0 when hot is 0.
func (r AccessRow) Slowdown() float64 {
	if r.Hot.Mean == 0 {
		return 0
	}
	return r.Cold.Mean / r.Hot.Mean
}

// BoundaryPoint is one cold touch near a page boundary.
type BoundaryPoint struct {
	Position   int   `json:"position" yaml:"position"`
	Page       int   `json:"page" yaml:"page"`
	PageOffset int   `json:"pageOffset" yaml:"pageOffset"`
	Nanos      int64 `json:"ns" yaml:"ns"`
}

// Survey is the output of Probe.
type Survey struct {
	PageSize int                `json:"pageSize" yaml:"pageSize"`
	Heap     []pagemem.Geometry `json:"heap" yaml:"heap"`
	NearPage []pagemem.Geometry `json:"nearPage" yaml:"nearPage"`
	Access   []AccessRow        `json:"access" yaml:"access"`
	Boundary []BoundaryPoint    `json:"boundary" yaml:"boundary"`

	// ResidencyHints counts evictions the kernel did not fully honor.
	ResidencyHints int `json:"residencyHints" yaml:"residencyHints"`
}

// Prober runs the page geometry survey.
type Prober struct {
	PageSize  int
	Allocator Allocator
	Timer     OffsetTimer
}

// NewProber returns a Prober using the platform page size, mmap regions and
// the system clock.
func NewProber() (*Prober, error) {
	ps, err := pagemem.PageSize()
	if err != nil {
		return nil, err
	}
	return &Prober{PageSize: ps, Allocator: RegionAllocator{SkipVerify: true}, Timer: touch.New(nil)}, nil
}

// Probe surveys heap allocation geometry, then times cold and hot touches
// on small mappings and around the first page boundary.
func (p *Prober) Probe() (*Survey, error) {
	ps := p.PageSize
	if ps <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive, got %d", pagemem.ErrConfiguration, ps)
	}
	s := &Survey{PageSize: ps}

	for _, size := range surveySizes {
		s.Heap = append(s.Heap, heapGeometry(size, ps))
	}
	for _, size := range []int{ps - 1, ps, ps + 1, 2*ps - 1, 2 * ps, 2*ps + 1} {
		s.NearPage = append(s.NearPage, heapGeometry(size, ps))
	}

	for _, size := range []int{ps / 2, ps, ps + 1, 2 * ps} {
		row, err := p.accessRow(size, s)
		if err != nil {
			return nil, err
		}
		s.Access = append(s.Access, row)
	}

	boundary, err := p.boundary(s)
	if err != nil {
		return nil, err
	}
	s.Boundary = boundary

	return s, nil
}

func heapGeometry(size, pageSize int) pagemem.Geometry {
	b := make([]byte, size)
	return pagemem.Describe(b, pageSize)
}

func (p *Prober) accessRow(size int, s *Survey) (row AccessRow, err error) {
	mem, err := p.Allocator.Allocate(size)
	if err != nil {
		return AccessRow{}, fmt.Errorf("allocate %d bytes: %w", size, err)
	}
	defer func() {
		if rerr := mem.Release(); rerr != nil && err == nil {
			err = fmt.Errorf("release region: %w", rerr)
		}
	}()

	buf := mem.Bytes()[:size]
	row = AccessRow{
		Size:  size,
		Pages: pagemem.PagesSpanned(pagemem.AddrOf(buf), size, p.PageSize),
	}

	if err := p.evict(mem, s); err != nil {
		return AccessRow{}, err
	}
	cold := make([]int64, 0, accessPositions)
	for i := 0; i < accessPositions; i++ {
		cold = append(cold, int64(p.Timer.TouchOffset(buf, positionAt(i, size))))
	}

	for off := 0; off < size; off += 64 {
		touch.Touch(buf, off)
	}
	hot := make([]int64, 0, accessPositions)
	for i := 0; i < accessPositions; i++ {
		hot = append(hot, int64(p.Timer.TouchOffset(buf, positionAt(i, size))))
	}

	row.Cold = stats.Summarize(cold)
	row.Hot = stats.Summarize(hot)
	return row, nil
}

// positionAt spreads n sample positions evenly over size bytes.
func positionAt(i, size int) int {
	off := i * size / accessPositions
	if off >= size {
		off = size - 1
	}
	return off
}

// boundary touches positions from 200 bytes before to 200 bytes after the
// first page boundary, evicting before each touch so every one is cold.
func (p *Prober) boundary(s *Survey) (points []BoundaryPoint, err error) {
	ps := p.PageSize
	size := 2*ps + 100
	mem, err := p.Allocator.Allocate(size)
	if err != nil {
		return nil, fmt.Errorf("allocate %d bytes: %w", size, err)
	}
	defer func() {
		if rerr := mem.Release(); rerr != nil && err == nil {
			err = fmt.Errorf("release region: %w", rerr)
		}
	}()

	buf := mem.Bytes()[:size]
	base := pagemem.AddrOf(buf)
	for pos := ps - 200; pos < ps+200; pos += 50 {
		if pos < 0 || pos >= size {
			continue
		}
		if err := p.evict(mem, s); err != nil {
			return nil, err
		}
		ns := int64(p.Timer.TouchOffset(buf, pos))
		addr := base + uintptr(pos)
		points = append(points, BoundaryPoint{
			Position:   pos,
			Page:       int((addr - base) / uintptr(ps)),
			PageOffset: pagemem.OffsetInPage(addr, ps),
			Nanos:      ns,
		})
	}
	return points, nil
}

func (p *Prober) evict(mem Memory, s *Survey) error {
	err := mem.Evict()
	if err == nil {
		return nil
	}
	if errors.Is(err, pagemem.ErrResidencyHint) {
		s.ResidencyHints++
		return nil
	}
	return fmt.Errorf("evict region: %w", err)
}
