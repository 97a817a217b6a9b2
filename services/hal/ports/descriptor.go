package ports

// SignalPin pairs a pin with the signal it carries in one descriptor.
type SignalPin struct {
	Signal Signal
	Pin    Pin
}

// SPIPort binds one SPI instance to its pins and controller.
type SPIPort struct {
	Peripheral Peripheral
	MISO       Pin
	MOSI       Pin
	SCK        Pin
	AltFunc    AltFunc
}

// Signals lists the descriptor's pins in declaration order.
func (d SPIPort) Signals() []SignalPin {
	return []SignalPin{
		{SignalMISO, d.MISO},
		{SignalMOSI, d.MOSI},
		{SignalSCK, d.SCK},
	}
}

// UARTPort binds one UART instance to its pins, controller and interrupt.
type UARTPort struct {
	TX         Pin
	RX         Pin
	AltFunc    AltFunc
	Peripheral Peripheral
	IRQ        IRQ
}

func (d UARTPort) Signals() []SignalPin {
	return []SignalPin{
		{SignalTX, d.TX},
		{SignalRX, d.RX},
	}
}

// I2CPort binds one I2C instance to its pins and controller.
type I2CPort struct {
	Peripheral Peripheral
	SCL        Pin
	SDA        Pin
	AltFunc    AltFunc
}

func (d I2CPort) Signals() []SignalPin {
	return []SignalPin{
		{SignalSCL, d.SCL},
		{SignalSDA, d.SDA},
	}
}
