// Package uart drives a 16550-compatible serial port. The kernel uses it as
// its early console: it needs no memory mappings and works before interrupts
// are enabled.
package uart

import "gopherkern/kernel/cpu"

// COM1 is the I/O base port of the first serial port on PC-compatible
// machines.
const COM1 = uint16(0x3f8)

// Register offsets relative to the port base.
const (
	regData        = 0 // data (DLAB=0) / divisor low byte (DLAB=1)
	regIntEnable   = 1 // interrupt enable (DLAB=0) / divisor high byte (DLAB=1)
	regFIFOControl = 2
	regLineControl = 3
	regModemCtrl   = 4
	regLineStatus  = 5
)

const (
	lineControlDLAB = 0x80
	lineControl8N1  = 0x03

	// Enable FIFOs, clear them, 14-byte threshold.
	fifoEnableClear14 = 0xc7

	// DTR, RTS and OUT2.
	modemReady = 0x0b

	lineStatusTxEmpty = 0x20

	// baudDivisor selects 115200 baud.
	baudDivisor = 1
)

var (
	portWriteByteFn = cpu.PortWriteByte
	portReadByteFn  = cpu.PortReadByte
)

// Port is a serial port that implements io.Writer.
type Port struct {
	// Base is the I/O port of the data register.
	Base uint16
}

// Init programs the port for 115200 baud, 8 data bits, no parity and one
// stop bit with interrupts disabled.
func (p *Port) Init() {
	portWriteByteFn(p.Base+regIntEnable, 0)
	portWriteByteFn(p.Base+regLineControl, lineControlDLAB)
	portWriteByteFn(p.Base+regData, baudDivisor&0xff)
	portWriteByteFn(p.Base+regIntEnable, baudDivisor>>8)
	portWriteByteFn(p.Base+regLineControl, lineControl8N1)
	portWriteByteFn(p.Base+regFIFOControl, fifoEnableClear14)
	portWriteByteFn(p.Base+regModemCtrl, modemReady)
}

// Write transmits b, translating "\n" into "\r\n". It busy-waits for the
// transmit holding register before each byte and never fails.
func (p *Port) Write(b []byte) (int, error) {
	for _, ch := range b {
		if ch == '\n' {
			p.writeByte('\r')
		}
		p.writeByte(ch)
	}

	return len(b), nil
}

func (p *Port) writeByte(ch byte) {
	for portReadByteFn(p.Base+regLineStatus)&lineStatusTxEmpty == 0 {
	}
	portWriteByteFn(p.Base+regData, ch)
}
