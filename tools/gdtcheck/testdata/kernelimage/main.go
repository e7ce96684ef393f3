// Command kernelimage links the kernel/cpu register loads and the double
// fault stack into a host executable that gdtcheck can inspect. It never
// calls the privileged primitives.
package main

import (
	"fmt"

	"gopherkern/kernel/cpu"
	"gopherkern/kernel/gdt"
)

var primitives = []interface{}{
	cpu.LoadGDT,
	cpu.SetStackSegment,
	cpu.SetDataSegment,
	cpu.SetCodeSegment,
	cpu.LoadTaskRegister,
}

func main() {
	fmt.Printf("%d primitives, stack top 0x%x\n", len(primitives), gdt.ExceptionStackTop())
}
