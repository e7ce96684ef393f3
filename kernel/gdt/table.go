package gdt

import "unsafe"

// TableSize is the number of 8-byte slots in a Table, including the
// mandatory null descriptor.
const TableSize = 8

// Table is a global descriptor table. Slot 0 always holds the null
// descriptor. The zero value is an empty table ready for use.
type Table struct {
	entries [TableSize]uint64

	// used counts the occupied slots after the null descriptor.
	used uint16
}

// Append stores d in the next free slot(s) and returns the selector that
// references it. The selector's RPL equals the descriptor's DPL. Appending
// past the table capacity is a kernel panic.
func (t *Table) Append(d Descriptor) Selector {
	index := t.used + 1
	if int(index+d.Slots()) > TableSize {
		panicFn(errTableFull)
		return 0
	}

	t.entries[index] = d.low
	if d.system {
		t.entries[index+1] = d.high
	}
	t.used += d.Slots()

	return NewSelector(index, d.DPL())
}

// Len returns the number of occupied slots, including the null descriptor.
func (t *Table) Len() uint16 {
	return t.used + 1
}

// Limit returns the value loaded into the limit field of the
// descriptor-table register: the table size in bytes minus one.
func (t *Table) Limit() uint16 {
	return t.Len()*8 - 1
}

// Entry returns the raw 8-byte value stored at slot index.
func (t *Table) Entry(index uint16) uint64 {
	return t.entries[index]
}

// Base returns the address of the first slot. Only the address of a Table in
// static storage may be loaded into the CPU.
func (t *Table) Base() uintptr {
	return uintptr(unsafe.Pointer(&t.entries[0]))
}
