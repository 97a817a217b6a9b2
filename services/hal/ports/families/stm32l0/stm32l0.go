// Package stm32l0 describes the STM32L0x3 family (L053/L063/L073/L083 in
// LQFP64): which pins exist, the peripherals the port tables reference, their
// interrupt vectors and the alternate-function muxing of their bus signals.
package stm32l0

import "portmap-go/services/hal/ports"

// Alternate-function codes, named after the reference-manual macros.
const (
	AF0_SPI1    ports.AltFunc = 0
	AF0_SPI2    ports.AltFunc = 0
	AF0_USART1  ports.AltFunc = 0
	AF1_I2C1    ports.AltFunc = 1
	AF4_USART1  ports.AltFunc = 4
	AF4_USART2  ports.AltFunc = 4
	AF4_I2C1    ports.AltFunc = 4
	AF4_LPUART1 ports.AltFunc = 4
	AF6_I2C1    ports.AltFunc = 6
	AF6_I2C2    ports.AltFunc = 6
)

// Peripheral handles (register block base addresses).
var (
	SPI1    = ports.Peripheral{Class: ports.ClassSPI, Name: "SPI1", Base: 0x40013000}
	SPI2    = ports.Peripheral{Class: ports.ClassSPI, Name: "SPI2", Base: 0x40003800}
	USART1  = ports.Peripheral{Class: ports.ClassUART, Name: "USART1", Base: 0x40013800}
	USART2  = ports.Peripheral{Class: ports.ClassUART, Name: "USART2", Base: 0x40004400}
	LPUART1 = ports.Peripheral{Class: ports.ClassUART, Name: "LPUART1", Base: 0x40004800}
	I2C1    = ports.Peripheral{Class: ports.ClassI2C, Name: "I2C1", Base: 0x40005400}
	I2C2    = ports.Peripheral{Class: ports.ClassI2C, Name: "I2C2", Base: 0x40005800}
)

// Interrupt vectors.
var (
	USART1_IRQn  = ports.IRQ{Name: "USART1_IRQn", Number: 27}
	USART2_IRQn  = ports.IRQ{Name: "USART2_IRQn", Number: 28}
	LPUART1_IRQn = ports.IRQ{Name: "RNG_LPUART1_IRQn", Number: 29}
)

// Family is the STM32L0x3 LQFP64 family descriptor.
var Family = &ports.Family{
	Name: "stm32l0x3",
	Banks: map[ports.Bank]uint32{
		ports.BankA: 0xffff,
		ports.BankB: 0xffff,
		ports.BankC: 0xffff,
		ports.BankD: 1 << 2,
		ports.BankH: 1<<0 | 1<<1,
	},
	MaxAltFunc: 7,
	IRQCount:   32,
	AltFuncs:   afTable,
}

// Pin is the family-checked pin constructor; MustPin panics instead.
func Pin(bank ports.Bank, n int) (ports.Pin, error) { return Family.Pin(bank, n) }
func MustPin(bank ports.Bank, n int) ports.Pin      { return Family.MustPin(bank, n) }

type afKey struct {
	pin    ports.Pin
	periph string
	sig    ports.Signal
}

type table struct {
	routes map[afKey][]ports.AltFunc
	known  map[string]bool
}

func (t *table) Lookup(pin ports.Pin, periph ports.Peripheral, sig ports.Signal) ([]ports.AltFunc, bool) {
	if !t.known[periph.Name] {
		return nil, false
	}
	return t.routes[afKey{pin, periph.Name, sig}], true
}

type route struct {
	bank ports.Bank
	n    int
	p    ports.Peripheral
	sig  ports.Signal
	af   ports.AltFunc
}

// Bus-signal rows of the datasheet's alternate-function table.
var routes = []route{
	{ports.BankA, 5, SPI1, ports.SignalSCK, AF0_SPI1},
	{ports.BankA, 6, SPI1, ports.SignalMISO, AF0_SPI1},
	{ports.BankA, 7, SPI1, ports.SignalMOSI, AF0_SPI1},
	{ports.BankA, 11, SPI1, ports.SignalMISO, AF0_SPI1},
	{ports.BankA, 12, SPI1, ports.SignalMOSI, AF0_SPI1},
	{ports.BankB, 3, SPI1, ports.SignalSCK, AF0_SPI1},
	{ports.BankB, 4, SPI1, ports.SignalMISO, AF0_SPI1},
	{ports.BankB, 5, SPI1, ports.SignalMOSI, AF0_SPI1},

	{ports.BankB, 13, SPI2, ports.SignalSCK, AF0_SPI2},
	{ports.BankB, 14, SPI2, ports.SignalMISO, AF0_SPI2},
	{ports.BankB, 15, SPI2, ports.SignalMOSI, AF0_SPI2},
	{ports.BankB, 10, SPI2, ports.SignalSCK, 5},
	{ports.BankC, 2, SPI2, ports.SignalMISO, 2},
	{ports.BankC, 3, SPI2, ports.SignalMOSI, 2},

	{ports.BankA, 9, USART1, ports.SignalTX, AF4_USART1},
	{ports.BankA, 10, USART1, ports.SignalRX, AF4_USART1},
	{ports.BankB, 6, USART1, ports.SignalTX, AF0_USART1},
	{ports.BankB, 7, USART1, ports.SignalRX, AF0_USART1},

	{ports.BankA, 2, USART2, ports.SignalTX, AF4_USART2},
	{ports.BankA, 3, USART2, ports.SignalRX, AF4_USART2},
	{ports.BankA, 14, USART2, ports.SignalTX, AF4_USART2},
	{ports.BankA, 15, USART2, ports.SignalRX, AF4_USART2},

	{ports.BankB, 10, LPUART1, ports.SignalTX, AF4_LPUART1},
	{ports.BankB, 11, LPUART1, ports.SignalRX, AF4_LPUART1},
	{ports.BankC, 10, LPUART1, ports.SignalTX, 0},
	{ports.BankC, 11, LPUART1, ports.SignalRX, 0},

	{ports.BankB, 6, I2C1, ports.SignalSCL, AF1_I2C1},
	{ports.BankB, 7, I2C1, ports.SignalSDA, AF1_I2C1},
	{ports.BankB, 8, I2C1, ports.SignalSCL, AF4_I2C1},
	{ports.BankB, 9, I2C1, ports.SignalSDA, AF4_I2C1},
	{ports.BankA, 9, I2C1, ports.SignalSCL, AF6_I2C1},
	{ports.BankA, 10, I2C1, ports.SignalSDA, AF6_I2C1},

	{ports.BankB, 10, I2C2, ports.SignalSCL, AF6_I2C2},
	{ports.BankB, 11, I2C2, ports.SignalSDA, AF6_I2C2},
	{ports.BankB, 13, I2C2, ports.SignalSCL, 5},
	{ports.BankB, 14, I2C2, ports.SignalSDA, 5},
}

var afTable = buildTable(routes)

func buildTable(rs []route) *table {
	t := &table{routes: make(map[afKey][]ports.AltFunc), known: make(map[string]bool)}
	for _, r := range rs {
		k := afKey{ports.MustPin(r.bank, r.n), r.p.Name, r.sig}
		t.routes[k] = append(t.routes[k], r.af)
		t.known[r.p.Name] = true
	}
	return t
}
