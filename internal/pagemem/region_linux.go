//go:build linux

package pagemem

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const adviseDontNeed = unix.MADV_DONTNEED

func osMapAnon(length int) ([]byte, error) {
	return unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
}

func osUnmap(data []byte) error {
	return unix.Munmap(data)
}

func osAdvise(data []byte, advice int) error {
	if len(data) == 0 {
		return nil
	}
	return unix.Madvise(data, advice)
}

// osResident counts resident pages of data using mincore. Bit 0 of each
// vector entry is the residency flag.
func osResident(data []byte, pageSize int) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	vec := make([]byte, (len(data)+pageSize-1)/pageSize)
	// int mincore(void *addr, size_t length, unsigned char *vec);
	_, _, en := unix.Syscall(unix.SYS_MINCORE,
		uintptr(unsafe.Pointer(&data[0])), uintptr(len(data)), uintptr(unsafe.Pointer(&vec[0])))
	if en != 0 {
		return 0, unix.Errno(en)
	}
	n := 0
	for _, v := range vec {
		n += int(v & 1)
	}
	return n, nil
}
