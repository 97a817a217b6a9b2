package boards

import (
	"portmap-go/services/hal/ports"
	"portmap-go/services/hal/ports/families/stm32l0"
)

const NucleoL053R8 = "nucleo_l053r8"

// Morpho-header build with the second SPI, USART and I2C broken out.
var nucleoL053R8 = ports.Board{
	Name:   NucleoL053R8,
	Family: stm32l0.Family,

	SPICount: 2,
	SPI: []ports.SPIPort{
		{
			Peripheral: stm32l0.SPI1,
			MISO:       stm32l0.MustPin(ports.BankA, 6),
			MOSI:       stm32l0.MustPin(ports.BankA, 7),
			SCK:        stm32l0.MustPin(ports.BankA, 5),
			AltFunc:    stm32l0.AF0_SPI1,
		},
		{
			Peripheral: stm32l0.SPI2,
			MISO:       stm32l0.MustPin(ports.BankB, 14),
			MOSI:       stm32l0.MustPin(ports.BankB, 15),
			SCK:        stm32l0.MustPin(ports.BankB, 13),
			AltFunc:    stm32l0.AF0_SPI2,
		},
	},

	UARTCount: 2,
	UART: []ports.UARTPort{
		{
			TX:         stm32l0.MustPin(ports.BankA, 2),
			RX:         stm32l0.MustPin(ports.BankA, 3),
			AltFunc:    stm32l0.AF4_USART2,
			Peripheral: stm32l0.USART2,
			IRQ:        stm32l0.USART2_IRQn,
		},
		{
			TX:         stm32l0.MustPin(ports.BankA, 9),
			RX:         stm32l0.MustPin(ports.BankA, 10),
			AltFunc:    stm32l0.AF4_USART1,
			Peripheral: stm32l0.USART1,
			IRQ:        stm32l0.USART1_IRQn,
		},
	},

	I2CCount: 2,
	I2C: []ports.I2CPort{
		{
			Peripheral: stm32l0.I2C1,
			SCL:        stm32l0.MustPin(ports.BankB, 8),
			SDA:        stm32l0.MustPin(ports.BankB, 9),
			AltFunc:    stm32l0.AF4_I2C1,
		},
		{
			Peripheral: stm32l0.I2C2,
			SCL:        stm32l0.MustPin(ports.BankB, 10),
			SDA:        stm32l0.MustPin(ports.BankB, 11),
			AltFunc:    stm32l0.AF6_I2C2,
		},
	},

	DebugPins: []ports.Pin{
		stm32l0.MustPin(ports.BankC, 8),
		stm32l0.MustPin(ports.BankC, 6),
		stm32l0.MustPin(ports.BankC, 5),
	},
}

func init() { Register(ports.Static(nucleoL053R8)) }
