package mem

const (
	// PageShift is equal to log2(PageSize).
	PageShift = 12

	// PageSize defines the system's page size in bytes.
	PageSize = Size(1 << PageShift)

	// StackAlign is the alignment the System V amd64 ABI (and the CPU when
	// it switches stacks through the interrupt stack table) expects for a
	// stack pointer.
	StackAlign = Size(16)
)
