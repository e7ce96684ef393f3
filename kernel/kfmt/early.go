package kfmt

import "io"

// earlyBufferSize is the number of bytes retained before an output sink is
// attached. Older output is overwritten once the buffer wraps.
const earlyBufferSize = 2048

// earlyBuffer is a fixed-size ring buffer that keeps the most recent
// earlyBufferSize bytes written to it.
type earlyBuffer struct {
	data         [earlyBufferSize]byte
	start, count int
}

// Write appends p to the buffer, discarding the oldest bytes on overflow.
func (b *earlyBuffer) Write(p []byte) (int, error) {
	for _, ch := range p {
		b.data[(b.start+b.count)%earlyBufferSize] = ch
		if b.count < earlyBufferSize {
			b.count++
		} else {
			b.start = (b.start + 1) % earlyBufferSize
		}
	}

	return len(p), nil
}

// Len returns the number of buffered bytes.
func (b *earlyBuffer) Len() int {
	return b.count
}

// drainTo writes the buffered bytes to w in at most two contiguous chunks and
// empties the buffer. io.Copy is avoided since it allocates its own buffer.
func (b *earlyBuffer) drainTo(w io.Writer) {
	for b.count > 0 {
		n := b.count
		if b.start+n > earlyBufferSize {
			n = earlyBufferSize - b.start
		}

		w.Write(b.data[b.start : b.start+n])
		b.start = (b.start + n) % earlyBufferSize
		b.count -= n
	}
	b.start = 0
}
