package sync

import "sync/atomic"

// Once performs an initialization exactly once. Unlike the standard library
// implementation it is built on a Spinlock instead of runtime semaphores so
// it works before the Go runtime has been bootstrapped.
//
// The zero value is ready to use.
type Once struct {
	done uint32
	lock Spinlock
}

// Do calls fn if and only if Do is being called for the first time on this
// Once. Concurrent callers spin until the first call to fn returns, so every
// caller observes the fully initialized state. fn must not call Do on the
// same Once.
func (o *Once) Do(fn func()) {
	if atomic.LoadUint32(&o.done) == 1 {
		return
	}

	o.lock.Acquire()
	if o.done == 0 {
		fn()
		atomic.StoreUint32(&o.done, 1)
	}
	o.lock.Release()
}

// Done reports whether the initializer has completed.
func (o *Once) Done() bool {
	return atomic.LoadUint32(&o.done) == 1
}
