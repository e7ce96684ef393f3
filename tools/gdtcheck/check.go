package main

import (
	"debug/elf"
	"errors"
	"fmt"

	"golang.org/x/arch/x86/x86asm"
)

// primitive describes a kernel/cpu function that performs one of the
// descriptor-table register loads and the instruction it must contain.
type primitive struct {
	name  string
	instr string
	match func(x86asm.Inst) bool
}

var installPrimitives = []primitive{
	{"LoadGDT", "LGDT", isOp(x86asm.LGDT)},
	{"SetStackSegment", "MOV to SS", isMovTo(x86asm.SS)},
	{"SetDataSegment", "MOV to DS", isMovTo(x86asm.DS)},
	// A far return without REX.W pops 32-bit RIP/CS values and would
	// return to a truncated address.
	{"SetCodeSegment", "64-bit LRET", func(inst x86asm.Inst) bool {
		return inst.Op == x86asm.LRET && inst.DataSize == 64
	}},
	{"LoadTaskRegister", "LTR", isOp(x86asm.LTR)},
}

func isOp(op x86asm.Op) func(x86asm.Inst) bool {
	return func(inst x86asm.Inst) bool { return inst.Op == op }
}

func isMovTo(seg x86asm.Reg) func(x86asm.Inst) bool {
	return func(inst x86asm.Inst) bool {
		return inst.Op == x86asm.MOV && inst.Args[0] == seg
	}
}

// findSymbol returns the symbol with the given name.
func findSymbol(symbols []elf.Symbol, name string) (elf.Symbol, error) {
	for _, sym := range symbols {
		if sym.Name == name {
			return sym, nil
		}
	}

	return elf.Symbol{}, fmt.Errorf("could not locate symbol %q", name)
}

// findFuncSymbol returns the symbol holding the body of the named function.
// When Go code references an assembly function the linker emits an ABI
// wrapper under the plain name and renames the assembly body with an ".abi0"
// suffix, so the suffixed symbol is preferred.
func findFuncSymbol(symbols []elf.Symbol, name string) (elf.Symbol, error) {
	if sym, err := findSymbol(symbols, name+".abi0"); err == nil {
		return sym, nil
	}

	return findSymbol(symbols, name)
}

// stackRegion describes where the linker placed the exception stack.
type stackRegion struct {
	base, top uint64
}

// checkStackRegion verifies that the exception stack symbol has the expected
// size, that its end address is suitably aligned to serve as an initial stack
// pointer and that no other data object in the same section overlaps it.
func checkStackRegion(symbols []elf.Symbol, name string, size, align uint64) (stackRegion, error) {
	stack, err := findSymbol(symbols, name)
	if err != nil {
		return stackRegion{}, err
	}

	region := stackRegion{base: stack.Value, top: stack.Value + stack.Size}

	var errs []error
	if stack.Size != size {
		errs = append(errs, fmt.Errorf("%s: expected size %d; got %d", name, size, stack.Size))
	}

	if align == 0 || align&(align-1) != 0 {
		errs = append(errs, fmt.Errorf("alignment %d is not a power of two", align))
	} else if region.top&(align-1) != 0 {
		errs = append(errs, fmt.Errorf("%s: stack top 0x%x is not %d-byte aligned", name, region.top, align))
	}

	for _, sym := range symbols {
		if sym.Name == name || sym.Size == 0 || sym.Section != stack.Section ||
			elf.ST_TYPE(sym.Info) != elf.STT_OBJECT {
			continue
		}

		if sym.Value < region.top && region.base < sym.Value+sym.Size {
			errs = append(errs, fmt.Errorf("%s [0x%x, 0x%x) overlaps %s [0x%x, 0x%x)",
				name, region.base, region.top, sym.Name, sym.Value, sym.Value+sym.Size))
		}
	}

	return region, errors.Join(errs...)
}

// symbolCode returns the machine code of a function symbol.
func symbolCode(f *elf.File, sym elf.Symbol) ([]byte, error) {
	if int(sym.Section) >= len(f.Sections) {
		return nil, fmt.Errorf("%s: invalid section index %d", sym.Name, sym.Section)
	}

	section := f.Sections[sym.Section]
	data, err := section.Data()
	if err != nil {
		return nil, fmt.Errorf("%s: reading section %s: %w", sym.Name, section.Name, err)
	}

	start := sym.Value - section.Addr
	if sym.Value < section.Addr || start+sym.Size > uint64(len(data)) {
		return nil, fmt.Errorf("%s: symbol [0x%x, 0x%x) lies outside section %s", sym.Name, sym.Value, sym.Value+sym.Size, section.Name)
	}

	return data[start : start+sym.Size], nil
}

// errUndecodable is reported for bytes that do not form a 64-bit instruction.
var errUndecodable = errors.New("undecodable instruction")

// containsInst decodes code as 64-bit instructions and reports whether any of
// them satisfies match. x86asm.Decode returns truncated or unknown encodings
// as a one-byte instruction with a zero Op instead of an error, so those are
// rejected here.
func containsInst(code []byte, match func(x86asm.Inst) bool) (bool, error) {
	for offset := 0; offset < len(code); {
		inst, err := x86asm.Decode(code[offset:], 64)
		if err == nil && inst.Op == 0 {
			err = errUndecodable
		}
		if err != nil {
			return false, fmt.Errorf("decoding instruction at offset %d: %w", offset, err)
		}

		if match(inst) {
			return true, nil
		}
		offset += inst.Len
	}

	return false, nil
}

// checkPrimitives verifies that each register load primitive exported by
// pkgPath contains the privileged instruction it is responsible for.
func checkPrimitives(f *elf.File, symbols []elf.Symbol, pkgPath string) error {
	var errs []error

	for _, p := range installPrimitives {
		name := pkgPath + "." + p.name

		sym, err := findFuncSymbol(symbols, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		code, err := symbolCode(f, sym)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		found, err := containsInst(code, p.match)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		case !found:
			errs = append(errs, fmt.Errorf("%s: missing %s instruction", name, p.instr))
		}
	}

	return errors.Join(errs...)
}
