package gdt

import "unsafe"

// DescriptorFlag is a bit in the low word of a segment descriptor.
type DescriptorFlag uint64

// Descriptor flag bits. In long mode the CPU ignores base and limit for code
// and data segments, but the limit and granularity bits are still set so the
// descriptors describe flat 4 GiB segments.
const (
	FlagAccessed    DescriptorFlag = 1 << 40
	FlagWritable    DescriptorFlag = 1 << 41
	FlagConforming  DescriptorFlag = 1 << 42
	FlagExecutable  DescriptorFlag = 1 << 43
	FlagUserSegment DescriptorFlag = 1 << 44
	FlagDPLRing3    DescriptorFlag = 3 << 45
	FlagPresent     DescriptorFlag = 1 << 47
	FlagAvailable   DescriptorFlag = 1 << 52
	FlagLongMode    DescriptorFlag = 1 << 53
	FlagDefaultSize DescriptorFlag = 1 << 54
	FlagGranularity DescriptorFlag = 1 << 55

	flagLimit0To15  DescriptorFlag = 0xffff
	flagLimit16To19 DescriptorFlag = 0xf << 48

	flagsCommon = FlagUserSegment | FlagPresent | FlagWritable | FlagAccessed |
		flagLimit0To15 | flagLimit16To19 | FlagGranularity

	flagsKernelData   = flagsCommon | FlagDefaultSize
	flagsKernelCode64 = flagsCommon | FlagExecutable | FlagLongMode
	flagsUserData     = flagsKernelData | FlagDPLRing3
	flagsUserCode64   = flagsKernelCode64 | FlagDPLRing3
)

// typeAvailableTSS64 is the system descriptor type of an available (not
// busy) 64-bit TSS.
const typeAvailableTSS64 = 0x9

// Descriptor is a GDT entry. Code and data segments occupy a single 8-byte
// slot. System segments (the TSS) occupy two consecutive slots, with the upper
// half of the base address in the second one.
type Descriptor struct {
	low, high uint64
	system    bool
}

func userSegment(flags DescriptorFlag) Descriptor {
	return Descriptor{low: uint64(flags)}
}

// KernelCodeSegment returns a ring 0 64-bit code segment descriptor.
func KernelCodeSegment() Descriptor { return userSegment(flagsKernelCode64) }

// KernelDataSegment returns a ring 0 data segment descriptor.
func KernelDataSegment() Descriptor { return userSegment(flagsKernelData) }

// UserDataSegment returns a ring 3 data segment descriptor.
func UserDataSegment() Descriptor { return userSegment(flagsUserData) }

// UserCodeSegment returns a ring 3 64-bit code segment descriptor.
func UserCodeSegment() Descriptor { return userSegment(flagsUserCode64) }

// TaskStateSegment returns a system descriptor referencing tss. The
// descriptor embeds the address of tss so tss must live in static storage for
// as long as the descriptor is loaded.
func TaskStateSegment(tss *TaskState) Descriptor {
	return systemSegment(
		uint64(uintptr(unsafe.Pointer(tss))),
		uint32(unsafe.Sizeof(*tss)-1),
	)
}

func systemSegment(base uint64, limit uint32) Descriptor {
	low := uint64(FlagPresent) |
		typeAvailableTSS64<<40 |
		uint64(limit&0xffff) |
		uint64(limit>>16&0xf)<<48 |
		(base&0xffffff)<<16 |
		(base>>24&0xff)<<56

	return Descriptor{low: low, high: base >> 32, system: true}
}

// Words returns the raw descriptor words. high is only meaningful for system
// descriptors.
func (d Descriptor) Words() (low, high uint64) {
	return d.low, d.high
}

// IsSystem reports whether d is a two-slot system descriptor.
func (d Descriptor) IsSystem() bool {
	return d.system
}

// Slots returns the number of GDT slots d occupies.
func (d Descriptor) Slots() uint16 {
	if d.system {
		return 2
	}
	return 1
}

// DPL returns the descriptor privilege level.
func (d Descriptor) DPL() PrivilegeLevel {
	return PrivilegeLevel(d.low >> 45 & 3)
}

// Base returns the segment base address. For system descriptors this is the
// full 64-bit address.
func (d Descriptor) Base() uint64 {
	base := d.low>>16&0xffffff | d.low>>56<<24
	if d.system {
		base |= d.high << 32
	}
	return base
}

// Limit returns the raw 20-bit segment limit.
func (d Descriptor) Limit() uint32 {
	return uint32(d.low&0xffff | d.low>>48&0xf<<16)
}
