package gdt

import "unsafe"

// InterruptStackTableSize is the number of interrupt stack table slots in a
// 64-bit TSS.
const InterruptStackTableSize = 7

// TaskState is the 64-bit task state segment. The layout is fixed by the
// hardware and is packed: 64-bit fields are split into low/high 32-bit halves
// since they sit on 4-byte boundaries.
type TaskState struct {
	_ uint32

	// privilege stack table: RSP0-RSP2.
	rsp [3][2]uint32

	_ [2]uint32

	// interrupt stack table: IST1-IST7, addressed here by 0-based index.
	ist [InterruptStackTableSize][2]uint32

	_ [2]uint32
	_ uint16

	ioMapBase uint16
}

// init clears t and points the I/O permission bitmap past the end of the
// segment, which denies user-mode port access.
func (t *TaskState) init() {
	*t = TaskState{}
	t.ioMapBase = uint16(unsafe.Sizeof(*t))
}

// SetInterruptStack stores the stack top address in the interrupt stack table
// slot with the given 0-based index.
func (t *TaskState) SetInterruptStack(index uint16, top uintptr) {
	if index >= InterruptStackTableSize {
		panicFn(errISTIndex)
		return
	}

	t.ist[index][0] = uint32(top)
	t.ist[index][1] = uint32(uint64(top) >> 32)
}

// InterruptStack returns the stack top address stored in the interrupt stack
// table slot with the given 0-based index.
func (t *TaskState) InterruptStack(index uint16) uintptr {
	if index >= InterruptStackTableSize {
		panicFn(errISTIndex)
		return 0
	}

	return uintptr(uint64(t.ist[index][1])<<32 | uint64(t.ist[index][0]))
}

// IOMapBase returns the offset of the I/O permission bitmap.
func (t *TaskState) IOMapBase() uint16 {
	return t.ioMapBase
}
