package gdt

// PrivilegeLevel is a CPU protection ring.
type PrivilegeLevel uint8

const (
	// Ring0 is the kernel privilege level.
	Ring0 PrivilegeLevel = 0

	// Ring3 is the user privilege level.
	Ring3 PrivilegeLevel = 3
)

// Selector identifies a GDT entry. Bits 3-15 hold the entry index, bit 2 the
// table indicator (always 0 for the GDT) and bits 0-1 the requested privilege
// level.
type Selector uint16

// NewSelector returns the selector for the GDT entry at index with the given
// requested privilege level.
func NewSelector(index uint16, rpl PrivilegeLevel) Selector {
	return Selector(index<<3 | uint16(rpl&3))
}

// Index returns the GDT entry index referenced by the selector.
func (s Selector) Index() uint16 {
	return uint16(s) >> 3
}

// RPL returns the requested privilege level encoded in the selector.
func (s Selector) RPL() PrivilegeLevel {
	return PrivilegeLevel(s & 3)
}
