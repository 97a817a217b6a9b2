// Package rp2040 describes the RP2040: one flat bank GP0..GP29, FUNCSEL
// codes as alternate functions, and the fixed pin-to-signal pattern of its
// SPI, UART and I2C blocks.
package rp2040

import "portmap-go/services/hal/ports"

// FUNCSEL values of IO_BANK0 GPIOx_CTRL.
const (
	FuncXIP  ports.AltFunc = 0
	FuncSPI  ports.AltFunc = 1
	FuncUART ports.AltFunc = 2
	FuncI2C  ports.AltFunc = 3
	FuncPWM  ports.AltFunc = 4
	FuncSIO  ports.AltFunc = 5
	FuncPIO0 ports.AltFunc = 6
	FuncPIO1 ports.AltFunc = 7
	FuncGPCK ports.AltFunc = 8
	FuncUSB  ports.AltFunc = 9
)

const numGPIO = 30

var (
	SPI0  = ports.Peripheral{Class: ports.ClassSPI, Name: "SPI0", Base: 0x4003c000}
	SPI1  = ports.Peripheral{Class: ports.ClassSPI, Name: "SPI1", Base: 0x40040000}
	UART0 = ports.Peripheral{Class: ports.ClassUART, Name: "UART0", Base: 0x40034000}
	UART1 = ports.Peripheral{Class: ports.ClassUART, Name: "UART1", Base: 0x40038000}
	I2C0  = ports.Peripheral{Class: ports.ClassI2C, Name: "I2C0", Base: 0x40044000}
	I2C1  = ports.Peripheral{Class: ports.ClassI2C, Name: "I2C1", Base: 0x40048000}
)

var (
	UART0_IRQ = ports.IRQ{Name: "UART0_IRQ", Number: 20}
	UART1_IRQ = ports.IRQ{Name: "UART1_IRQ", Number: 21}
)

var Family = &ports.Family{
	Name:       "rp2040",
	Banks:      map[ports.Bank]uint32{ports.BankGP: 1<<numGPIO - 1},
	MaxAltFunc: FuncUSB,
	IRQCount:   32,
	AltFuncs:   ports.AltFuncFunc(lookup),
}

// GP returns pin GPn, panicking when n is not a GPIO of the part.
func GP(n int) ports.Pin { return Family.MustPin(ports.BankGP, n) }

// instanceOf maps a peripheral handle to its block index.
var instanceOf = map[ports.Peripheral]int{
	SPI0: 0, SPI1: 1,
	UART0: 0, UART1: 1,
	I2C0: 0, I2C1: 1,
}

// lookup applies the RP2040 GPIO function table: every bus signal sits on a
// fixed residue of the pin number, and the block index alternates in groups.
func lookup(pin ports.Pin, periph ports.Peripheral, sig ports.Signal) ([]ports.AltFunc, bool) {
	inst, known := instanceOf[periph]
	if !known {
		return nil, false
	}
	if pin.Bank() != ports.BankGP {
		return nil, true
	}
	n := pin.Number()
	var ok bool
	var af ports.AltFunc
	switch periph.Class {
	case ports.ClassSPI:
		// 0 RX, 1 CSn, 2 SCK, 3 TX; SPI0 on GP0-7, SPI1 on GP8-15, repeating.
		af = FuncSPI
		ok = (n>>3)&1 == inst && spiSignal(n&3) == sig
	case ports.ClassUART:
		// 0 TX, 1 RX, 2 CTS, 3 RTS; UART0 on GP0-3, UART1 on GP4-11, UART0 on GP12-19, ...
		af = FuncUART
		ok = ((n+4)>>3)&1 == inst && uartSignal(n&3) == sig
	case ports.ClassI2C:
		// even SDA, odd SCL; I2C0 and I2C1 alternate every two pins.
		af = FuncI2C
		ok = (n>>1)&1 == inst && i2cSignal(n&1) == sig
	}
	if !ok {
		return nil, true
	}
	return []ports.AltFunc{af}, true
}

func spiSignal(r int) ports.Signal {
	switch r {
	case 0:
		return ports.SignalMISO
	case 2:
		return ports.SignalSCK
	case 3:
		return ports.SignalMOSI
	}
	return ports.SignalNone
}

func uartSignal(r int) ports.Signal {
	switch r {
	case 0:
		return ports.SignalTX
	case 1:
		return ports.SignalRX
	}
	return ports.SignalNone
}

func i2cSignal(r int) ports.Signal {
	if r == 0 {
		return ports.SignalSDA
	}
	return ports.SignalSCL
}
