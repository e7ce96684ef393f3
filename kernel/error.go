// Package kernel contains types shared by all kernel packages.
package kernel

// Error describes an unrecoverable kernel condition. Errors are declared as
// package-level pointers to Error values because the Go allocator is not
// available while the kernel boots, which rules out errors.New.
type Error struct {
	// Module names the kernel package that raised the error.
	Module string

	// Message describes what went wrong.
	Message string
}

// Error implements the error interface. It returns only the message so that
// callers running before the allocator is up never trigger a string
// concatenation; use Module for the prefix.
func (e *Error) Error() string {
	return e.Message
}
