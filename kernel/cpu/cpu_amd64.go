// Package cpu exposes the privileged amd64 instructions the kernel needs as
// plain Go functions. All functions are implemented in assembly.
package cpu

// EnableInterrupts enables interrupt handling.
func EnableInterrupts()

// DisableInterrupts disables interrupt handling.
func DisableInterrupts()

// Halt disables interrupts and stops instruction execution. It never returns.
func Halt()

// LoadGDT loads the descriptor-table register with the table located at the
// given base virtual address. The limit is the table size in bytes minus one.
// Segment registers keep their cached descriptors until they are reloaded.
func LoadGDT(base uintptr, limit uint16)

// SetStackSegment loads the SS register with the given selector.
func SetStackSegment(sel uint16)

// SetDataSegment loads the DS register with the given selector.
func SetDataSegment(sel uint16)

// SetCodeSegment loads the CS register with the given selector. CS cannot be
// the target of a MOV so the implementation rewrites its own return frame and
// leaves through a far return, which lands back in the caller running with the
// new code selector.
func SetCodeSegment(sel uint16)

// LoadTaskRegister loads the task register with the given TSS selector. The
// referenced descriptor is marked busy by the CPU; loading the same selector a
// second time raises a general protection fault.
func LoadTaskRegister(sel uint16)

// CodeSegment returns the selector currently held by the CS register.
func CodeSegment() uint16

// TaskRegister returns the selector currently held by the task register.
func TaskRegister() uint16

// PortWriteByte writes a uint8 value to the requested port.
func PortWriteByte(port uint16, val uint8)

// PortReadByte reads a uint8 value from the requested port.
func PortReadByte(port uint16) uint8
