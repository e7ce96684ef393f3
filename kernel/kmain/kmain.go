package kmain

import (
	"gopherkern/kernel"
	"gopherkern/kernel/cpu"
	"gopherkern/kernel/driver/uart"
	"gopherkern/kernel/gdt"
	"gopherkern/kernel/kfmt"
)

var (
	errKmainReturned = &kernel.Error{Module: "kmain", Message: "Kmain returned"}

	// console is the early serial console. It lives in static storage so
	// storing it in kfmt's output sink does not allocate.
	console = uart.Port{Base: uart.COM1}
)

// Kmain is the only Go symbol that is visible (exported) from the rt0
// initialization code. It is invoked with interrupts disabled, running on the
// boot stack set up by rt0 and with the segments left behind by the
// bootloader.
//
// Kmain is not expected to return. If it does, the rt0 code will halt the CPU.
//
//go:noinline
func Kmain() {
	console.Init()
	kfmt.SetOutputSink(&console)

	gdt.Init()
	kfmt.Printf("[kmain] segments reloaded: CS = 0x%4x, TR = 0x%4x\n", cpu.CodeSegment(), cpu.TaskRegister())

	// Use kfmt.Panic instead of panic to prevent the compiler from treating
	// kfmt.Panic as dead-code and eliminating it.
	kfmt.Panic(errKmainReturned)
}
