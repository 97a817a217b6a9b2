//go:build stm32

package bringup

import (
	"context"
	"device/arm"
	"device/stm32"
	"machine"
	"time"
	"unsafe"

	"tinygo.org/x/drivers"

	"portmap-go/errcode"
	"portmap-go/services/hal/ports"
)

// machinePin maps a bank/number pin onto TinyGo's flat STM32 numbering
// (PA0 = 0, PB0 = 16, ...).
func machinePin(p ports.Pin) machine.Pin {
	return machine.Pin((int(p.Bank())-int(ports.BankA))*16 + int(p.Number()))
}

func pinMode(sig ports.Signal) machine.PinMode {
	switch sig {
	case ports.SignalSCK:
		return machine.PinModeSPICLK
	case ports.SignalMOSI:
		return machine.PinModeSPISDO
	case ports.SignalMISO:
		return machine.PinModeSPISDI
	case ports.SignalTX:
		return machine.PinModeUARTTX
	case ports.SignalRX:
		return machine.PinModeUARTRX
	case ports.SignalSCL:
		return machine.PinModeI2CSCL
	case ports.SignalSDA:
		return machine.PinModeI2CSDA
	}
	return machine.PinOutput
}

type stm32GPIO struct{ family *ports.Family }

func (g stm32GPIO) ConfigureAltFunc(p ports.Pin, sig ports.Signal, af ports.AltFunc) error {
	if !g.family.HasPin(p) || p.Bank() == ports.BankGP {
		return &errcode.E{C: errcode.InvalidPin, Op: "gpio", Msg: p.String()}
	}
	machinePin(p).ConfigureAltFunc(machine.PinConfig{Mode: pinMode(sig)}, uint8(af))
	return nil
}

func (g stm32GPIO) ConfigureOutput(p ports.Pin, initial bool) (Output, error) {
	if !g.family.HasPin(p) || p.Bank() == ports.BankGP {
		return nil, &errcode.E{C: errcode.InvalidPin, Op: "gpio", Msg: p.String()}
	}
	mp := machinePin(p)
	mp.Configure(machine.PinConfig{Mode: machine.PinOutput})
	mp.Set(initial)
	return &stm32Output{p: mp}, nil
}

type stm32Output struct{ p machine.Pin }

func (o *stm32Output) Set(level bool) { o.p.Set(level) }
func (o *stm32Output) Get() bool      { return o.p.Get() }
func (o *stm32Output) Toggle()        { o.p.Set(!o.p.Get()) }

type stm32Buses struct{}

func (stm32Buses) OpenSPI(d ports.SPIPort, hz uint32) (drivers.SPI, error) {
	bus := &machine.SPI{
		Bus:             (*stm32.SPI_Type)(unsafe.Pointer(d.Peripheral.Base)),
		AltFuncSelector: uint8(d.AltFunc),
	}
	err := bus.Configure(machine.SPIConfig{
		Frequency: hz,
		SCK:       machinePin(d.SCK),
		SDO:       machinePin(d.MOSI),
		SDI:       machinePin(d.MISO),
	})
	if err != nil {
		return nil, err
	}
	return bus, nil
}

func (stm32Buses) OpenI2C(d ports.I2CPort, hz uint32) (drivers.I2C, error) {
	bus := &machine.I2C{
		Bus:             (*stm32.I2C_Type)(unsafe.Pointer(d.Peripheral.Base)),
		AltFuncSelector: uint8(d.AltFunc),
	}
	err := bus.Configure(machine.I2CConfig{
		Frequency: hz,
		SCL:       machinePin(d.SCL),
		SDA:       machinePin(d.SDA),
	})
	if err != nil {
		return nil, err
	}
	return bus, nil
}

// OpenUART binds the board's default UART. TinyGo registers UART interrupt
// handlers at compile time, so other instances cannot be bound here.
func (stm32Buses) OpenUART(d ports.UARTPort, baud uint32) (Serial, error) {
	u := machine.DefaultUART
	if uintptr(unsafe.Pointer(u.Bus)) != d.Peripheral.Base {
		return nil, &errcode.E{C: errcode.Unsupported, Op: "open_uart", Msg: d.Peripheral.Name + " is not the default uart"}
	}
	if err := u.Configure(machine.UARTConfig{
		BaudRate: baud,
		TX:       machinePin(d.TX),
		RX:       machinePin(d.RX),
	}); err != nil {
		return nil, err
	}
	return &stm32Serial{u: u}, nil
}

type stm32Serial struct{ u *machine.UART }

func (s *stm32Serial) Write(p []byte) (int, error) { return s.u.Write(p) }

// RecvSomeContext polls the ring buffer until data arrives or ctx ends.
func (s *stm32Serial) RecvSomeContext(ctx context.Context, p []byte) (int, error) {
	for s.u.Buffered() == 0 {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
	n := 0
	for n < len(p) && s.u.Buffered() > 0 {
		b, err := s.u.ReadByte()
		if err != nil {
			return n, err
		}
		p[n] = b
		n++
	}
	return n, nil
}

type stm32IRQ struct{ max int }

func (c stm32IRQ) EnableIRQ(q ports.IRQ) error {
	if q.Number < 0 || q.Number >= c.max {
		return &errcode.E{C: errcode.InvalidIRQ, Op: "enable_irq", Msg: q.String()}
	}
	arm.EnableIRQ(uint32(q.Number))
	return nil
}

// DefaultPlatform returns the STM32 register-level collaborators.
func DefaultPlatform(f *ports.Family) Platform {
	b := stm32Buses{}
	return Platform{
		GPIO: stm32GPIO{family: f},
		SPI:  b,
		I2C:  b,
		UART: b,
		IRQ:  stm32IRQ{max: f.IRQCount},
	}
}
