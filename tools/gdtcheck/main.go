// Command gdtcheck statically verifies the descriptor-table setup of a linked
// kernel image. It checks that the double fault stack has the expected size,
// ends on a stack-aligned address and does not alias any other data object,
// and that each kernel/cpu register load primitive contains the privileged
// instruction it is responsible for.
//
// Usage:
//
//	gdtcheck [flags] kernel.bin
package main

import (
	"debug/elf"
	"errors"
	"flag"
	"fmt"
	"os"
)

type config struct {
	stackSymbol string
	stackSize   uint64
	align       uint64
	cpuPackage  string
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[gdtcheck] error: %s\n", err.Error())
	os.Exit(1)
}

func run(imgFile string, cfg config) error {
	f, err := elf.Open(imgFile)
	if err != nil {
		return err
	}
	defer f.Close()

	symbols, err := f.Symbols()
	if err != nil {
		return fmt.Errorf("%s: %w", imgFile, err)
	}

	region, err := checkStackRegion(symbols, cfg.stackSymbol, cfg.stackSize, cfg.align)
	if err != nil {
		return fmt.Errorf("%s: %w", imgFile, err)
	}
	fmt.Printf("[gdtcheck] exception stack [0x%x, 0x%x): ok\n", region.base, region.top)

	if err = checkPrimitives(f, symbols, cfg.cpuPackage); err != nil {
		return fmt.Errorf("%s: %w", imgFile, err)
	}
	fmt.Printf("[gdtcheck] %d install primitives: ok\n", len(installPrimitives))

	return nil
}

func main() {
	var cfg config
	flag.StringVar(&cfg.stackSymbol, "stack-symbol", "gopherkern/kernel/gdt.exceptionStack", "symbol name of the double fault stack")
	flag.Uint64Var(&cfg.stackSize, "stack-size", 20*1024, "expected size of the double fault stack in bytes")
	flag.Uint64Var(&cfg.align, "align", 16, "required alignment of the stack top")
	flag.StringVar(&cfg.cpuPackage, "cpu-package", "gopherkern/kernel/cpu", "import path of the package implementing the register loads")
	flag.Parse()

	if flag.NArg() != 1 {
		exit(errors.New("missing path to the kernel image"))
	}

	if err := run(flag.Arg(0), cfg); err != nil {
		exit(err)
	}
}
