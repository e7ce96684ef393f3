package mem

import "testing"

func TestAlign(t *testing.T) {
	specs := []struct {
		addr    uintptr
		align   Size
		expDown uintptr
		expUp   uintptr
	}{
		{0x1000, PageSize, 0x1000, 0x1000},
		{0x1001, PageSize, 0x1000, 0x2000},
		{0x5fff, PageSize, 0x5000, 0x6000},
		{0x100f, StackAlign, 0x1000, 0x1010},
		{0x1010, StackAlign, 0x1010, 0x1010},
		{0, StackAlign, 0, 0},
	}

	for specIndex, spec := range specs {
		if got := AlignDown(spec.addr, spec.align); got != spec.expDown {
			t.Errorf("[spec %d] expected AlignDown(0x%x, %d) to return 0x%x; got 0x%x", specIndex, spec.addr, spec.align, spec.expDown, got)
		}

		if got := AlignUp(spec.addr, spec.align); got != spec.expUp {
			t.Errorf("[spec %d] expected AlignUp(0x%x, %d) to return 0x%x; got 0x%x", specIndex, spec.addr, spec.align, spec.expUp, got)
		}
	}
}

func TestSizeConstants(t *testing.T) {
	if exp := Size(4096); PageSize != exp {
		t.Errorf("expected PageSize to be %d; got %d", exp, PageSize)
	}

	if exp := 20 * Kb; 5*PageSize != exp {
		t.Errorf("expected 5 pages to equal %d bytes; got %d", exp, 5*PageSize)
	}
}
