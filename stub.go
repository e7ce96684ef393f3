package main

import "gopherkern/kernel/kmain"

// main makes a dummy call to the actual kernel main entrypoint function. It
// is intentionally defined to prevent the Go compiler from optimizing away the
// real kernel code as it is not aware of the rt0 code that jumps to it.
func main() {
	kmain.Kmain()
}
