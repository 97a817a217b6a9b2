//go:build rp2040 || rp2350

package bringup

import (
	"context"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"

	"portmap-go/errcode"
	"portmap-go/services/hal/ports"
	"portmap-go/services/hal/ports/families/rp2040"
)

func rp2Mode(sig ports.Signal) (machine.PinMode, ports.AltFunc) {
	switch sig {
	case ports.SignalSCK, ports.SignalMOSI, ports.SignalMISO:
		return machine.PinSPI, rp2040.FuncSPI
	case ports.SignalTX, ports.SignalRX:
		return machine.PinUART, rp2040.FuncUART
	case ports.SignalSCL, ports.SignalSDA:
		return machine.PinI2C, rp2040.FuncI2C
	}
	return machine.PinOutput, rp2040.FuncSIO
}

type rp2GPIO struct{ family *ports.Family }

func (g rp2GPIO) pin(p ports.Pin) (machine.Pin, error) {
	if !g.family.HasPin(p) {
		return 0, &errcode.E{C: errcode.InvalidPin, Op: "gpio", Msg: p.String()}
	}
	return machine.Pin(p.Number()), nil
}

// ConfigureAltFunc selects the pin function. The RP2 machine package derives
// FUNCSEL from the mode, so af is only checked for consistency.
func (g rp2GPIO) ConfigureAltFunc(p ports.Pin, sig ports.Signal, af ports.AltFunc) error {
	mp, err := g.pin(p)
	if err != nil {
		return err
	}
	mode, want := rp2Mode(sig)
	if af != want {
		return &errcode.E{C: errcode.InvalidAltFunc, Op: "gpio", Msg: p.String() + " " + sig.String() + " needs " + want.String()}
	}
	mp.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (g rp2GPIO) ConfigureOutput(p ports.Pin, initial bool) (Output, error) {
	mp, err := g.pin(p)
	if err != nil {
		return nil, err
	}
	mp.Configure(machine.PinConfig{Mode: machine.PinOutput})
	mp.Set(initial)
	return &rp2Output{p: mp}, nil
}

type rp2Output struct{ p machine.Pin }

func (o *rp2Output) Set(level bool) { o.p.Set(level) }
func (o *rp2Output) Get() bool      { return o.p.Get() }

func (o *rp2Output) Toggle() {
	if o.p.Get() {
		o.p.Low()
	} else {
		o.p.High()
	}
}

type rp2Buses struct{}

func (rp2Buses) OpenSPI(d ports.SPIPort, hz uint32) (drivers.SPI, error) {
	var hw *machine.SPI
	switch d.Peripheral.Base {
	case rp2040.SPI0.Base:
		hw = machine.SPI0
	case rp2040.SPI1.Base:
		hw = machine.SPI1
	default:
		return nil, &errcode.E{C: errcode.InvalidPeripheral, Op: "open_spi", Msg: d.Peripheral.String()}
	}
	err := hw.Configure(machine.SPIConfig{
		Frequency: hz,
		SCK:       machine.Pin(d.SCK.Number()),
		SDO:       machine.Pin(d.MOSI.Number()),
		SDI:       machine.Pin(d.MISO.Number()),
	})
	if err != nil {
		return nil, err
	}
	return hw, nil
}

func (rp2Buses) OpenI2C(d ports.I2CPort, hz uint32) (drivers.I2C, error) {
	var hw *machine.I2C
	switch d.Peripheral.Base {
	case rp2040.I2C0.Base:
		hw = machine.I2C0
	case rp2040.I2C1.Base:
		hw = machine.I2C1
	default:
		return nil, &errcode.E{C: errcode.InvalidPeripheral, Op: "open_i2c", Msg: d.Peripheral.String()}
	}
	err := hw.Configure(machine.I2CConfig{
		Frequency: hz,
		SCL:       machine.Pin(d.SCL.Number()),
		SDA:       machine.Pin(d.SDA.Number()),
	})
	if err != nil {
		return nil, err
	}
	return hw, nil
}

func (rp2Buses) OpenUART(d ports.UARTPort, baud uint32) (Serial, error) {
	var hw *uartx.UART
	switch d.Peripheral.Base {
	case rp2040.UART0.Base:
		hw = uartx.UART0
	case rp2040.UART1.Base:
		hw = uartx.UART1
	default:
		return nil, &errcode.E{C: errcode.InvalidPeripheral, Op: "open_uart", Msg: d.Peripheral.String()}
	}
	// uartx installs its own handler on the instance's vector.
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.Pin(d.TX.Number()),
		RX:       machine.Pin(d.RX.Number()),
	}); err != nil {
		return nil, err
	}
	return &rp2Serial{u: hw}, nil
}

type rp2Serial struct{ u *uartx.UART }

func (s *rp2Serial) Write(b []byte) (int, error) { return s.u.Write(b) }
func (s *rp2Serial) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	return s.u.RecvSomeContext(ctx, buf)
}

// rp2IRQ only range-checks: uartx enables its vector during Configure.
type rp2IRQ struct{ max int }

func (c rp2IRQ) EnableIRQ(q ports.IRQ) error {
	if q.Number < 0 || q.Number >= c.max {
		return &errcode.E{C: errcode.InvalidIRQ, Op: "enable_irq", Msg: q.String()}
	}
	return nil
}

// DefaultPlatform returns the RP2 collaborators.
func DefaultPlatform(f *ports.Family) Platform {
	b := rp2Buses{}
	return Platform{
		GPIO: rp2GPIO{family: f},
		SPI:  b,
		I2C:  b,
		UART: b,
		IRQ:  rp2IRQ{max: f.IRQCount},
	}
}
