package gdt

import "testing"

func TestTableAppend(t *testing.T) {
	defer func() { panicFn = origPanicFn }()

	var panicArg interface{}
	panicFn = func(e interface{}) { panicArg = e }

	var (
		tbl Table
		ts  TaskState
	)

	if tbl.Len() != 1 || tbl.Limit() != 7 {
		t.Fatalf("expected empty table to hold only the null descriptor; got len %d limit %d", tbl.Len(), tbl.Limit())
	}

	if sel := tbl.Append(KernelCodeSegment()); sel != 0x08 {
		t.Errorf("expected first selector to be 0x08; got 0x%x", sel)
	}

	tssDesc := TaskStateSegment(&ts)
	if sel := tbl.Append(tssDesc); sel != 0x10 {
		t.Errorf("expected TSS selector to be 0x10; got 0x%x", sel)
	}

	if sel := tbl.Append(UserCodeSegment()); sel != 0x23 {
		t.Errorf("expected user code selector after a two-slot TSS to be 0x23; got 0x%x", sel)
	}

	low, high := tssDesc.Words()
	if tbl.Entry(0) != 0 || tbl.Entry(2) != low || tbl.Entry(3) != high {
		t.Error("expected null descriptor in slot 0 and the TSS descriptor words in slots 2 and 3")
	}

	if tbl.Len() != 5 || tbl.Limit() != 39 {
		t.Errorf("expected len 5 limit 39; got len %d limit %d", tbl.Len(), tbl.Limit())
	}

	if panicArg != nil {
		t.Fatalf("unexpected panic: %v", panicArg)
	}
}

func TestTableFull(t *testing.T) {
	defer func() { panicFn = origPanicFn }()

	var panicArg interface{}
	panicFn = func(e interface{}) { panicArg = e }

	var (
		tbl Table
		ts  TaskState
	)

	for i := 0; i < 3; i++ {
		tbl.Append(TaskStateSegment(&ts))
	}

	if panicArg != nil {
		t.Fatalf("unexpected panic while filling the table: %v", panicArg)
	}

	if sel := tbl.Append(TaskStateSegment(&ts)); sel != 0 {
		t.Errorf("expected a zero selector when the table is full; got 0x%x", sel)
	}

	if panicArg != errTableFull {
		t.Fatalf("expected errTableFull panic; got %v", panicArg)
	}

	if tbl.Len() != 7 {
		t.Fatalf("expected a failed append to leave the table unchanged; len is %d", tbl.Len())
	}

	panicArg = nil
	if sel := tbl.Append(KernelDataSegment()); sel != 0x38 {
		t.Errorf("expected the last free slot to yield selector 0x38; got 0x%x", sel)
	}

	if panicArg != nil {
		t.Fatalf("unexpected panic: %v", panicArg)
	}
}
