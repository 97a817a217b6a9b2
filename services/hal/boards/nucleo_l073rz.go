package boards

import (
	"portmap-go/services/hal/ports"
	"portmap-go/services/hal/ports/families/stm32l0"
)

const NucleoL073RZ = "nucleo_l073rz"

const (
	nucleoL073RZSPICount  = 1
	nucleoL073RZUARTCount = 1
	nucleoL073RZI2CCount  = 1
)

var nucleoL073RZ = ports.Board{
	Name:   NucleoL073RZ,
	Family: stm32l0.Family,

	SPICount: nucleoL073RZSPICount,
	SPI: []ports.SPIPort{
		{
			Peripheral: stm32l0.SPI1,
			MISO:       stm32l0.MustPin(ports.BankA, 6),
			MOSI:       stm32l0.MustPin(ports.BankA, 7),
			SCK:        stm32l0.MustPin(ports.BankA, 5),
			AltFunc:    stm32l0.AF0_SPI1,
		},
	},

	UARTCount: nucleoL073RZUARTCount,
	UART: []ports.UARTPort{
		{
			// USART2 is wired to the ST-LINK virtual COM port.
			TX:         stm32l0.MustPin(ports.BankA, 2),
			RX:         stm32l0.MustPin(ports.BankA, 3),
			AltFunc:    stm32l0.AF4_USART2,
			Peripheral: stm32l0.USART2,
			IRQ:        stm32l0.USART2_IRQn,
		},
	},

	I2CCount: nucleoL073RZI2CCount,
	I2C: []ports.I2CPort{
		{
			Peripheral: stm32l0.I2C1,
			SCL:        stm32l0.MustPin(ports.BankB, 8),
			SDA:        stm32l0.MustPin(ports.BankB, 9),
			AltFunc:    stm32l0.AF4_I2C1,
		},
	},

	DebugPins: []ports.Pin{
		stm32l0.MustPin(ports.BankC, 8), // CN10 pin 2
		stm32l0.MustPin(ports.BankC, 6), // CN10 pin 4
		stm32l0.MustPin(ports.BankC, 5), // CN10 pin 6
	},
}

func init() { Register(ports.Static(nucleoL073RZ)) }
