// Package bringup is the driver-initialisation side of the port registry:
// given a validated *ports.Registry it routes each bus's pins to their
// alternate function, binds the peripheral, enables UART interrupts and
// prepares the debug pins. The hardware itself is reached through the
// Platform interfaces so the same sequence runs on host fakes and on MCUs.
package bringup

import (
	"context"

	"github.com/pkg/errors"
	"tinygo.org/x/drivers"

	"portmap-go/errcode"
	"portmap-go/services/hal/ports"
)

// GPIO programs pin routing.
type GPIO interface {
	ConfigureAltFunc(pin ports.Pin, sig ports.Signal, af ports.AltFunc) error
	ConfigureOutput(pin ports.Pin, initial bool) (Output, error)
}

// Output is a pin configured as a push-pull output.
type Output interface {
	Set(level bool)
	Get() bool
	Toggle()
}

// SPIFactory binds an SPI controller whose pins are already routed.
type SPIFactory interface {
	OpenSPI(d ports.SPIPort, hz uint32) (drivers.SPI, error)
}

// I2CFactory binds an I2C controller whose pins are already routed.
type I2CFactory interface {
	OpenI2C(d ports.I2CPort, hz uint32) (drivers.I2C, error)
}

// Serial is the byte-stream view of a bound UART.
type Serial interface {
	Write(p []byte) (int, error)
	RecvSomeContext(ctx context.Context, p []byte) (int, error)
}

// UARTFactory binds a UART controller whose pins are already routed.
type UARTFactory interface {
	OpenUART(d ports.UARTPort, baud uint32) (Serial, error)
}

// IRQController enables interrupt vectors.
type IRQController interface {
	EnableIRQ(q ports.IRQ) error
}

// Platform bundles the hardware collaborators. A nil factory means the
// platform cannot bind that class of bus.
type Platform struct {
	GPIO GPIO
	SPI  SPIFactory
	I2C  I2CFactory
	UART UARTFactory
	IRQ  IRQController
}

// Params are the operating parameters applied when binding buses.
type Params struct {
	SPIHz    uint32
	I2CHz    uint32
	UARTBaud uint32
}

func DefaultParams() Params {
	return Params{
		SPIHz:    4_000_000,
		I2CHz:    400_000,
		UARTBaud: 115_200,
	}
}

func route(g GPIO, af ports.AltFunc, sigs []ports.SignalPin) error {
	if g == nil {
		return &errcode.E{C: errcode.Unsupported, Op: "route", Msg: "no gpio controller"}
	}
	for _, sp := range sigs {
		if err := g.ConfigureAltFunc(sp.Pin, sp.Signal, af); err != nil {
			return errors.Wrapf(err, "%s %s", sp.Signal, sp.Pin)
		}
	}
	return nil
}

func unsupported(op string) error {
	return &errcode.E{C: errcode.Unsupported, Op: op, Msg: "platform has no factory"}
}

// InitSPI routes MISO, MOSI and SCK of SPI instance i and binds its controller.
func InitSPI(reg *ports.Registry, i int, pf Platform, prm Params) (drivers.SPI, error) {
	d, err := reg.SPIPort(i)
	if err != nil {
		return nil, err
	}
	if pf.SPI == nil {
		return nil, unsupported("init_spi")
	}
	if err := route(pf.GPIO, d.AltFunc, d.Signals()); err != nil {
		return nil, errors.Wrapf(err, "spi[%d]", i)
	}
	bus, err := pf.SPI.OpenSPI(d, prm.SPIHz)
	if err != nil {
		return nil, errors.Wrapf(err, "spi[%d] open %s", i, d.Peripheral.Name)
	}
	return bus, nil
}

// InitUART enables the interrupt vector of UART instance i, then routes TX
// and RX and binds its controller.
func InitUART(reg *ports.Registry, i int, pf Platform, prm Params) (Serial, error) {
	d, err := reg.UARTPort(i)
	if err != nil {
		return nil, err
	}
	if pf.UART == nil {
		return nil, unsupported("init_uart")
	}
	if pf.IRQ == nil {
		return nil, unsupported("init_uart_irq")
	}
	// The vector is enabled before the controller is touched, so a rejected
	// IRQ leaves the UART unconfigured.
	if err := pf.IRQ.EnableIRQ(d.IRQ); err != nil {
		return nil, errors.Wrapf(err, "uart[%d] irq %s", i, d.IRQ)
	}
	if err := route(pf.GPIO, d.AltFunc, d.Signals()); err != nil {
		return nil, errors.Wrapf(err, "uart[%d]", i)
	}
	port, err := pf.UART.OpenUART(d, prm.UARTBaud)
	if err != nil {
		return nil, errors.Wrapf(err, "uart[%d] open %s", i, d.Peripheral.Name)
	}
	return port, nil
}

// InitI2C routes SCL and SDA of I2C instance i and binds its controller.
func InitI2C(reg *ports.Registry, i int, pf Platform, prm Params) (drivers.I2C, error) {
	d, err := reg.I2CPort(i)
	if err != nil {
		return nil, err
	}
	if pf.I2C == nil {
		return nil, unsupported("init_i2c")
	}
	if err := route(pf.GPIO, d.AltFunc, d.Signals()); err != nil {
		return nil, errors.Wrapf(err, "i2c[%d]", i)
	}
	bus, err := pf.I2C.OpenI2C(d, prm.I2CHz)
	if err != nil {
		return nil, errors.Wrapf(err, "i2c[%d] open %s", i, d.Peripheral.Name)
	}
	return bus, nil
}

// InitDebugPin configures debug role i as an output driven low.
func InitDebugPin(reg *ports.Registry, i int, pf Platform) (Output, error) {
	p, err := reg.DebugPin(i)
	if err != nil {
		return nil, err
	}
	if pf.GPIO == nil {
		return nil, unsupported("init_debug_pin")
	}
	out, err := pf.GPIO.ConfigureOutput(p, false)
	if err != nil {
		return nil, errors.Wrapf(err, "debug[%d] %s", i, p)
	}
	return out, nil
}
