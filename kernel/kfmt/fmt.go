// Package kfmt implements formatted output for code that runs before the Go
// allocator is available. Nothing in this package allocates memory.
package kfmt

import (
	"io"
	"unsafe"
)

const hexDigits = "0123456789abcdef"

var (
	msgMissingArg = []byte("%!(MISSING)")
	msgWrongType  = []byte("%!(WRONGTYPE)")
	msgNoVerb     = []byte("%!(NOVERB)")
	msgBadVerb    = []byte("%!(BADVERB)")
	msgExtraArg   = []byte("%!(EXTRA)")
	msgTrue       = []byte("true")
	msgFalse      = []byte("false")

	// numBuf holds the rendered digits of a single integer. It fits a
	// 64-bit value in base 8 plus sign and the maximum padding width.
	numBuf [32]byte

	// oneByte is the shared buffer used for writing single characters.
	oneByte [1]byte

	// early captures Printf output until an output sink is attached.
	early earlyBuffer

	// outputSink receives Printf output. While nil, output is captured by
	// the early buffer.
	outputSink io.Writer
)

// SetOutputSink directs Printf output to w and flushes any output captured
// by the early buffer into it.
func SetOutputSink(w io.Writer) {
	outputSink = w
	if w != nil {
		early.drainTo(w)
	}
}

// OutputSink returns the writer currently receiving Printf output or nil if
// output is being buffered.
func OutputSink() io.Writer {
	return outputSink
}

// Printf writes formatted output to the active output sink. It supports a
// subset of the fmt verbs:
//
//	%s  string or []byte, left-padded with spaces to the width
//	%d  base 10 integer, left-padded with spaces to the width
//	%x  base 16 integer (lower-case), left-padded with zeroes to the width
//	%o  base 8 integer, left-padded with zeroes to the width
//	%t  "true" or "false"
//	%%  a literal percent sign
//
// Width is an optional decimal number preceding the verb. Arguments of any
// other type are reported as %!(WRONGTYPE); Stringer and error values are not
// consulted since the itables may not be initialized yet.
func Printf(format string, args ...interface{}) {
	Fprintf(outputSink, format, args...)
}

// Fprintf behaves like Printf but writes the formatted output to w. A nil w
// writes to the early buffer.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	argIndex := 0

	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			writeByte(w, format[i])
			continue
		}

		width := 0
		for i++; i < len(format) && format[i] >= '0' && format[i] <= '9'; i++ {
			width = width*10 + int(format[i]-'0')
		}

		if i == len(format) {
			write(w, msgNoVerb)
			break
		}

		verb := format[i]
		switch verb {
		case '%':
			writeByte(w, '%')
			continue
		case 'd', 'x', 'o', 's', 't':
		default:
			write(w, msgBadVerb)
			continue
		}

		if argIndex >= len(args) {
			write(w, msgMissingArg)
			continue
		}

		arg := args[argIndex]
		argIndex++

		switch verb {
		case 'd':
			writeInt(w, arg, 10, ' ', width)
		case 'x':
			writeInt(w, arg, 16, '0', width)
		case 'o':
			writeInt(w, arg, 8, '0', width)
		case 's':
			writeString(w, arg, width)
		case 't':
			writeBool(w, arg)
		}
	}

	for ; argIndex < len(args); argIndex++ {
		write(w, msgExtraArg)
	}
}

func writeBool(w io.Writer, v interface{}) {
	b, ok := v.(bool)
	switch {
	case !ok:
		write(w, msgWrongType)
	case b:
		write(w, msgTrue)
	default:
		write(w, msgFalse)
	}
}

func writeString(w io.Writer, v interface{}, width int) {
	switch s := v.(type) {
	case string:
		writeRepeat(w, ' ', width-len(s))
		// []byte(s) would allocate.
		for i := 0; i < len(s); i++ {
			writeByte(w, s[i])
		}
	case []byte:
		writeRepeat(w, ' ', width-len(s))
		write(w, s)
	default:
		write(w, msgWrongType)
	}
}

func writeRepeat(w io.Writer, ch byte, count int) {
	for ; count > 0; count-- {
		writeByte(w, ch)
	}
}

// toUint64 returns the magnitude and sign of any built-in integer value.
func toUint64(v interface{}) (val uint64, neg, ok bool) {
	var sval int64

	switch t := v.(type) {
	case uint8:
		return uint64(t), false, true
	case uint16:
		return uint64(t), false, true
	case uint32:
		return uint64(t), false, true
	case uint64:
		return t, false, true
	case uint:
		return uint64(t), false, true
	case uintptr:
		return uint64(t), false, true
	case int8:
		sval = int64(t)
	case int16:
		sval = int64(t)
	case int32:
		sval = int64(t)
	case int64:
		sval = t
	case int:
		sval = int64(t)
	default:
		return 0, false, false
	}

	if sval < 0 {
		return uint64(-sval), true, true
	}
	return uint64(sval), false, true
}

// writeInt renders v in the given base right-to-left into numBuf. Zero
// padding goes between the sign and the digits; space padding goes before
// the sign.
func writeInt(w io.Writer, v interface{}, base uint64, padCh byte, width int) {
	val, neg, ok := toUint64(v)
	if !ok {
		write(w, msgWrongType)
		return
	}

	if maxWidth := len(numBuf) - 2; width > maxWidth {
		width = maxWidth
	}

	end := len(numBuf)
	pos := end
	for {
		pos--
		numBuf[pos] = hexDigits[val%base]
		if val /= base; val == 0 {
			break
		}
	}

	if padCh == '0' {
		digitWidth := width
		if neg {
			digitWidth--
		}
		for end-pos < digitWidth {
			pos--
			numBuf[pos] = '0'
		}
		if neg {
			pos--
			numBuf[pos] = '-'
		}
	} else {
		if neg {
			pos--
			numBuf[pos] = '-'
		}
		for end-pos < width {
			pos--
			numBuf[pos] = padCh
		}
	}

	write(w, numBuf[pos:end])
}

func writeByte(w io.Writer, ch byte) {
	oneByte[0] = ch
	write(w, oneByte[:])
}

// write hides p from escape analysis. The compiler cannot see through the
// io.Writer call and would otherwise flag every Printf argument as escaping,
// turning each boxed argument into a heap allocation.
func write(w io.Writer, p []byte) {
	writeTo(w, noEscape(unsafe.Pointer(&p)))
}

func writeTo(w io.Writer, bufPtr unsafe.Pointer) {
	p := *(*[]byte)(bufPtr)
	if w == nil {
		early.Write(p)
		return
	}
	w.Write(p)
}

// noEscape hides a pointer from escape analysis. Copied from runtime/stubs.go.
// go vet reports the uintptr round trip as a possible misuse of
// unsafe.Pointer; the warning is expected for this idiom.
//
//go:nosplit
func noEscape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}
