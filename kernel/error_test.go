package kernel

import "testing"

func TestKernelError(t *testing.T) {
	var err error = &Error{Module: "gdt", Message: "descriptor table full"}

	if got, exp := err.Error(), "descriptor table full"; got != exp {
		t.Fatalf("expected err.Error() to return %q; got %q", exp, got)
	}

	kErr, ok := err.(*Error)
	if !ok {
		t.Fatal("expected err to be a *kernel.Error")
	}

	if kErr.Module != "gdt" {
		t.Fatalf("expected module to be %q; got %q", "gdt", kErr.Module)
	}
}
