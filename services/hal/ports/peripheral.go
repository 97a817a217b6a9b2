package ports

import "strconv"

// Class is the peripheral class a descriptor belongs to.
type Class uint8

const (
	ClassNone Class = iota
	ClassSPI
	ClassUART
	ClassI2C
)

func (c Class) String() string {
	switch c {
	case ClassSPI:
		return "spi"
	case ClassUART:
		return "uart"
	case ClassI2C:
		return "i2c"
	default:
		return "none"
	}
}

// Peripheral is an opaque handle to an on-chip register block.
// The platform owns the block; descriptors only carry the handle.
type Peripheral struct {
	Class Class
	Name  string  // e.g. "SPI1", "USART2"
	Base  uintptr // register block base address
}

func (p Peripheral) IsZero() bool { return p == Peripheral{} }

func (p Peripheral) String() string {
	if p.Name == "" {
		return "<none>"
	}
	return p.Name + "@0x" + strconv.FormatUint(uint64(p.Base), 16)
}

// IRQ identifies an interrupt vector.
type IRQ struct {
	Name   string // e.g. "USART2_IRQn"
	Number int
}

func (q IRQ) String() string { return q.Name + "(" + strconv.Itoa(q.Number) + ")" }
