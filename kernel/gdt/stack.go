package gdt

import (
	"gopherkern/kernel/mem"
	"unsafe"
)

// ExceptionStackSize is the size of the stack the CPU switches to when a
// double fault occurs. It is an empirical margin that comfortably fits a
// handler that logs the fault and halts; it has not been derived from a
// measured worst-case handler depth.
const ExceptionStackSize = 5 * mem.PageSize

// The array lengths below fail to compile when ExceptionStackSize is zero or
// not a multiple of mem.StackAlign.
var (
	_ [ExceptionStackSize - 1]struct{}
	_ [-(ExceptionStackSize % mem.StackAlign)]struct{}
)

// exceptionStack is the memory backing the double fault stack. It is
// referenced only through ExceptionStackTop and nothing else writes to it.
var exceptionStack [ExceptionStackSize]byte

// ExceptionStackTop returns the initial stack pointer for the double fault
// handler: the end of the reserved region, since stacks grow downwards.
//
// The linker places objects of this size on a 32-byte boundary so the
// alignment mask never moves the result below base+ExceptionStackSize in a
// linked kernel image.
func ExceptionStackTop() uintptr {
	base := uintptr(unsafe.Pointer(&exceptionStack[0]))
	return mem.AlignDown(base+uintptr(ExceptionStackSize), mem.StackAlign)
}
