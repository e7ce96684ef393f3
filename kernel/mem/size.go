// Package mem defines memory sizing constants and address arithmetic helpers
// shared by the kernel packages.
package mem

// Size represents a memory block size in bytes.
type Size uint64

// Common memory block sizes.
const (
	Byte Size = 1
	Kb        = 1024 * Byte
	Mb        = 1024 * Kb
)

// AlignDown rounds addr down to the nearest multiple of align. The align
// argument must be a power of two.
func AlignDown(addr uintptr, align Size) uintptr {
	return addr &^ (uintptr(align) - 1)
}

// AlignUp rounds addr up to the nearest multiple of align. The align argument
// must be a power of two.
func AlignUp(addr uintptr, align Size) uintptr {
	return (addr + uintptr(align) - 1) &^ (uintptr(align) - 1)
}
