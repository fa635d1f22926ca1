// Package touch times single-byte memory touches.
//
// A touch is a read-modify-write (byte ^= 1) performed as an atomic
// compare-and-swap on the aligned 32-bit word that holds the byte. Go
// atomics are sequentially consistent, so neither the compiler nor the CPU
// may drop the store or move it across the clock reads on either side.
// A plain read is never used: reading a never-written anonymous page can be
// served from the shared zero page without allocating anything.
package touch

import (
	"sync/atomic"
	"time"
	"unsafe"
)

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now, whose monotonic reading is used for
// differences.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Toucher performs timed touches.
type Toucher struct {
	clock Clock
}

// New returns a Toucher reading clock. A nil clock selects SystemClock.
func New(clock Clock) *Toucher {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Toucher{clock: clock}
}

// TouchAndTime flips the first byte of page and returns how long the access
// took. Intervals below the clock granularity read as zero.
func (t *Toucher) TouchAndTime(mem []byte, page, pageSize int) time.Duration {
	return t.TouchOffset(mem, page*pageSize)
}

// TouchOffset flips mem[off] and returns how long the access took.
func (t *Toucher) TouchOffset(mem []byte, off int) time.Duration {
	word, mask, ok := wordOf(mem, off)

	start := t.clock.Now()
	if ok {
		flipWord(word, mask)
	} else {
		flipByte(&mem[off])
	}
	end := t.clock.Now()

	return end.Sub(start)
}

// Touch flips mem[off] without timing it.
func Touch(mem []byte, off int) {
	if word, mask, ok := wordOf(mem, off); ok {
		flipWord(word, mask)
		return
	}
	flipByte(&mem[off])
}

// byteMask[i] selects byte i of a 32-bit word in memory order.
var byteMask = func() [4]uint32 {
	probe := uint32(1)
	if *(*byte)(unsafe.Pointer(&probe)) == 1 {
		return [4]uint32{1, 1 << 8, 1 << 16, 1 << 24}
	}
	return [4]uint32{1 << 24, 1 << 16, 1 << 8, 1}
}()

// wordOf locates the aligned word holding mem[off]. ok is false when that
// word is not entirely inside mem.
func wordOf(mem []byte, off int) (*uint32, uint32, bool) {
	p := uintptr(unsafe.Pointer(&mem[off]))
	idx := int(p & 3)
	if off-idx < 0 || off-idx+4 > len(mem) {
		return nil, 0, false
	}
	return (*uint32)(unsafe.Pointer(&mem[off-idx])), byteMask[idx], true
}

func flipWord(word *uint32, mask uint32) {
	for {
		old := atomic.LoadUint32(word)
		if atomic.CompareAndSwapUint32(word, old, old^mask) {
			return
		}
	}
}

// flipByte is the fallback for bytes at the unaligned edges of a buffer.
//
//go:noinline
func flipByte(b *byte) {
	*b ^= 1
}

// Overhead measures n back-to-back clock reads and returns the smallest and
// the mean interval. It bounds how much of a touch timing is observer cost.
func Overhead(clock Clock, n int) (minimum, mean time.Duration) {
	if clock == nil {
		clock = SystemClock{}
	}
	if n <= 0 {
		return 0, 0
	}
	var total time.Duration
	minimum = time.Duration(1<<63 - 1)
	for i := 0; i < n; i++ {
		start := clock.Now()
		d := clock.Now().Sub(start)
		total += d
		if d < minimum {
			minimum = d
		}
	}
	return minimum, total / time.Duration(n)
}
