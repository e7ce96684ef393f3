package gdt

import (
	"testing"
	"unsafe"
)

func TestSegmentDescriptors(t *testing.T) {
	specs := []struct {
		descr  string
		desc   Descriptor
		exp    uint64
		expDPL PrivilegeLevel
	}{
		{"kernel code", KernelCodeSegment(), 0x00af9b000000ffff, Ring0},
		{"kernel data", KernelDataSegment(), 0x00cf93000000ffff, Ring0},
		{"user data", UserDataSegment(), 0x00cff3000000ffff, Ring3},
		{"user code", UserCodeSegment(), 0x00affb000000ffff, Ring3},
	}

	for _, spec := range specs {
		t.Run(spec.descr, func(t *testing.T) {
			low, high := spec.desc.Words()
			if low != spec.exp {
				t.Errorf("expected descriptor 0x%016x; got 0x%016x", spec.exp, low)
			}

			if high != 0 || spec.desc.IsSystem() || spec.desc.Slots() != 1 {
				t.Errorf("expected a single-slot user segment; got high=0x%x system=%t slots=%d", high, spec.desc.IsSystem(), spec.desc.Slots())
			}

			if got := spec.desc.DPL(); got != spec.expDPL {
				t.Errorf("expected DPL %d; got %d", spec.expDPL, got)
			}

			if got := spec.desc.Limit(); got != 0xfffff {
				t.Errorf("expected flat 0xfffff limit; got 0x%x", got)
			}
		})
	}
}

func TestSystemSegment(t *testing.T) {
	d := systemSegment(0xffff800012345678, 103)

	low, high := d.Words()
	if exp := uint64(0x1200893456780067); low != exp {
		t.Errorf("expected low word 0x%016x; got 0x%016x", exp, low)
	}

	if exp := uint64(0xffff8000); high != exp {
		t.Errorf("expected high word 0x%016x; got 0x%016x", exp, high)
	}

	if !d.IsSystem() || d.Slots() != 2 {
		t.Errorf("expected a two-slot system descriptor; got system=%t slots=%d", d.IsSystem(), d.Slots())
	}

	if got := d.Base(); got != 0xffff800012345678 {
		t.Errorf("expected base 0xffff800012345678; got 0x%x", got)
	}

	if got := d.Limit(); got != 103 {
		t.Errorf("expected limit 103; got %d", got)
	}

	if got := d.DPL(); got != Ring0 {
		t.Errorf("expected DPL 0; got %d", got)
	}
}

func TestTaskStateSegmentDescriptor(t *testing.T) {
	var ts TaskState
	d := TaskStateSegment(&ts)

	if exp := uint64(uintptr(unsafe.Pointer(&ts))); d.Base() != exp {
		t.Errorf("expected descriptor base to be the TSS address 0x%x; got 0x%x", exp, d.Base())
	}

	if exp := uint32(unsafe.Sizeof(ts) - 1); d.Limit() != exp {
		t.Errorf("expected descriptor limit %d; got %d", exp, d.Limit())
	}

	low, _ := d.Words()
	if got := (low >> 40) & 0xff; got != 0x89 {
		t.Errorf("expected access byte 0x89 (present, available 64-bit TSS); got 0x%x", got)
	}
}

func TestSelector(t *testing.T) {
	specs := []struct {
		index uint16
		rpl   PrivilegeLevel
		exp   Selector
	}{
		{1, Ring0, 0x08},
		{2, Ring0, 0x10},
		{3, Ring3, 0x1b},
		{4, Ring3, 0x23},
		{5, Ring0, 0x28},
	}

	for specIndex, spec := range specs {
		sel := NewSelector(spec.index, spec.rpl)
		if sel != spec.exp {
			t.Errorf("[spec %d] expected selector 0x%x; got 0x%x", specIndex, spec.exp, sel)
		}

		if sel.Index() != spec.index || sel.RPL() != spec.rpl {
			t.Errorf("[spec %d] expected index %d rpl %d; got index %d rpl %d", specIndex, spec.index, spec.rpl, sel.Index(), sel.RPL())
		}
	}
}
