// Package gdt sets up the segmentation and task state of the boot CPU: a
// global descriptor table with kernel and user segments, and a task state
// segment whose interrupt stack table provides a dedicated stack for the
// double fault handler.
//
// The tables are built lazily on first access, never change afterwards and
// are installed into the CPU exactly once by Init.
package gdt

import (
	"gopherkern/kernel"
	"gopherkern/kernel/kfmt"
	"gopherkern/kernel/sync"
	"sync/atomic"
)

const (
	// DoubleFaultISTIndex is the 0-based interrupt stack table slot that
	// holds the double fault stack.
	DoubleFaultISTIndex uint16 = 0

	// DoubleFaultGateIST is the value to store in the IST field of the
	// double fault IDT gate. The gate field is 1-based; 0 disables the stack
	// switch.
	DoubleFaultGateIST = uint8(DoubleFaultISTIndex + 1)
)

// Selectors holds the selector of every GDT entry.
type Selectors struct {
	KernelCode Selector
	KernelData Selector
	UserData   Selector
	UserCode   Selector
	TSS        Selector
}

var (
	// panicFn is mocked by tests.
	panicFn = kfmt.Panic

	errTableFull        = &kernel.Error{Module: "gdt", Message: "descriptor table full"}
	errISTIndex         = &kernel.Error{Module: "gdt", Message: "interrupt stack table index out of range"}
	errAlreadyInstalled = &kernel.Error{Module: "gdt", Message: "descriptor tables already installed"}

	tss     TaskState
	tssOnce sync.Once

	table     Table
	selectors Selectors
	tableOnce sync.Once

	installed uint32
)

func buildTaskState() {
	tss.init()
	tss.SetInterruptStack(DoubleFaultISTIndex, ExceptionStackTop())
}

// buildTable appends the descriptors in the order the selector values depend
// on: kernel code, kernel data, user data, user code, TSS.
func buildTable() {
	tssOnce.Do(buildTaskState)

	selectors.KernelCode = table.Append(KernelCodeSegment())
	selectors.KernelData = table.Append(KernelDataSegment())
	selectors.UserData = table.Append(UserDataSegment())
	selectors.UserCode = table.Append(UserCodeSegment())
	selectors.TSS = table.Append(TaskStateSegment(&tss))
}

// TSS returns a copy of the task state segment, building it on first use.
func TSS() TaskState {
	tssOnce.Do(buildTaskState)
	return tss
}

// Tables returns a copy of the global descriptor table together with the
// selectors of its entries, building both on first use. Every call returns
// identical values. The copy is for inspection only: its Base is the address
// of the copy, so it must never be loaded into the CPU. Init loads the static
// table.
func Tables() (Table, Selectors) {
	tableOnce.Do(buildTable)
	return table, selectors
}

// Init installs the descriptor tables into the boot CPU. It must be called
// exactly once, with interrupts disabled, before an IDT that references
// DoubleFaultGateIST is loaded. A second call halts the kernel.
func Init() {
	if !atomic.CompareAndSwapUint32(&installed, 0, 1) {
		panicFn(errAlreadyInstalled)
		return
	}

	tableOnce.Do(buildTable)
	install(&table, selectors)

	kfmt.Printf("[gdt] loaded %d descriptor slots (limit 0x%x)\n", table.Len(), table.Limit())
	kfmt.Printf("[gdt] double fault stack: IST%d, top 0x%16x\n", DoubleFaultGateIST, tss.InterruptStack(DoubleFaultISTIndex))
}
