package boards

import (
	"portmap-go/services/hal/ports"
	"portmap-go/services/hal/ports/families/rp2040"
)

const Pico = "pico"

// Raspberry Pi Pico wired like the rich-dev carrier: both UARTs on their
// default pins, I2C0 on GP12/13, I2C1 moved to GP26/27 to free SPI0.
var pico = ports.Board{
	Name:   Pico,
	Family: rp2040.Family,

	SPICount: 1,
	SPI: []ports.SPIPort{
		{Peripheral: rp2040.SPI0, MISO: rp2040.GP(16), MOSI: rp2040.GP(19), SCK: rp2040.GP(18), AltFunc: rp2040.FuncSPI},
	},

	UARTCount: 2,
	UART: []ports.UARTPort{
		{TX: rp2040.GP(0), RX: rp2040.GP(1), AltFunc: rp2040.FuncUART, Peripheral: rp2040.UART0, IRQ: rp2040.UART0_IRQ},
		{TX: rp2040.GP(4), RX: rp2040.GP(5), AltFunc: rp2040.FuncUART, Peripheral: rp2040.UART1, IRQ: rp2040.UART1_IRQ},
	},

	I2CCount: 2,
	I2C: []ports.I2CPort{
		{Peripheral: rp2040.I2C0, SCL: rp2040.GP(13), SDA: rp2040.GP(12), AltFunc: rp2040.FuncI2C},
		{Peripheral: rp2040.I2C1, SCL: rp2040.GP(27), SDA: rp2040.GP(26), AltFunc: rp2040.FuncI2C},
	},

	DebugPins: []ports.Pin{rp2040.GP(20), rp2040.GP(21), rp2040.GP(22)},
}

func init() { Register(ports.Static(pico)) }
