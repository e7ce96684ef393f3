package gdt

import "gopherkern/kernel/cpu"

// The register loads are reached through these variables so tests can
// observe them.
var (
	loadGDTFn          = cpu.LoadGDT
	setStackSegmentFn  = cpu.SetStackSegment
	setDataSegmentFn   = cpu.SetDataSegment
	setCodeSegmentFn   = cpu.SetCodeSegment
	loadTaskRegisterFn = cpu.LoadTaskRegister
)

// install performs the four register loads that switch the CPU over to t, in
// the only order that works: segment reloads look their selectors up in the
// table held by the descriptor-table register, so that register is loaded
// first; the task register is loaded last, once the TSS descriptor is
// reachable.
//
// None of the following preconditions are checked. t must be fully built and
// live in static storage, sel must have been produced by appending to t,
// interrupts must be disabled and no other CPU may be touching segmentation
// state. Violating any of them faults the CPU with no software-visible error.
func install(t *Table, sel Selectors) {
	loadGDTFn(t.Base(), t.Limit())
	setStackSegmentFn(uint16(sel.KernelData))
	setDataSegmentFn(uint16(sel.KernelData))
	setCodeSegmentFn(uint16(sel.KernelCode))
	loadTaskRegisterFn(uint16(sel.TSS))
}
