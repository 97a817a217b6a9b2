package rp2040

import (
	"testing"

	"portmap-go/errcode"
	"portmap-go/services/hal/ports"
)

func TestGPIORange(t *testing.T) {
	if GP(29).Number() != 29 {
		t.Fatal("GP29")
	}
	if _, err := Family.Pin(ports.BankGP, 30); errcode.Of(err) != errcode.InvalidPin {
		t.Fatalf("GP30 err = %v", err)
	}
	if _, err := Family.Pin(ports.BankA, 1); errcode.Of(err) != errcode.InvalidPin {
		t.Fatalf("PA1 err = %v", err)
	}
}

func TestFunctionPattern(t *testing.T) {
	good := []struct {
		n   int
		p   ports.Peripheral
		sig ports.Signal
		af  ports.AltFunc
	}{
		{16, SPI0, ports.SignalMISO, FuncSPI},
		{18, SPI0, ports.SignalSCK, FuncSPI},
		{19, SPI0, ports.SignalMOSI, FuncSPI},
		{8, SPI1, ports.SignalMISO, FuncSPI},
		{15, SPI1, ports.SignalMOSI, FuncSPI},
		{0, UART0, ports.SignalTX, FuncUART},
		{1, UART0, ports.SignalRX, FuncUART},
		{4, UART1, ports.SignalTX, FuncUART},
		{9, UART1, ports.SignalRX, FuncUART},
		{12, UART0, ports.SignalTX, FuncUART},
		{28, UART0, ports.SignalTX, FuncUART},
		{12, I2C0, ports.SignalSDA, FuncI2C},
		{13, I2C0, ports.SignalSCL, FuncI2C},
		{26, I2C1, ports.SignalSDA, FuncI2C},
		{27, I2C1, ports.SignalSCL, FuncI2C},
	}
	for _, c := range good {
		if err := Family.CheckAltFunc(GP(c.n), c.p, c.sig, c.af); err != nil {
			t.Fatalf("GP%d %s %s: %v", c.n, c.p.Name, c.sig, err)
		}
	}

	bad := []struct {
		n   int
		p   ports.Peripheral
		sig ports.Signal
		af  ports.AltFunc
	}{
		{16, SPI1, ports.SignalMISO, FuncSPI},   // wrong block
		{17, SPI0, ports.SignalSCK, FuncSPI},    // CSn position
		{0, UART0, ports.SignalTX, FuncSPI},     // wrong function
		{4, UART0, ports.SignalTX, FuncUART},    // UART1 pin
		{12, I2C0, ports.SignalSCL, FuncI2C},    // even pin is SDA
		{14, I2C0, ports.SignalSDA, FuncI2C},    // I2C1 pin
		{0, UART0, ports.SignalTX, FuncUSB + 1}, // above max
	}
	for _, c := range bad {
		if err := Family.CheckAltFunc(GP(c.n), c.p, c.sig, c.af); errcode.Of(err) != errcode.InvalidAltFunc {
			t.Fatalf("GP%d %s %s %v: err = %v", c.n, c.p.Name, c.sig, c.af, err)
		}
	}
}
