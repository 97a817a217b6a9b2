package types

// ------------------------
// Board registry export (read-only snapshot)
// ------------------------

type BoardSnapshot struct {
	Name      string         `json:"name" yaml:"name"`
	Family    string         `json:"family" yaml:"family"`
	SPI       []SPISnapshot  `json:"spi" yaml:"spi"`
	UART      []UARTSnapshot `json:"uart" yaml:"uart"`
	I2C       []I2CSnapshot  `json:"i2c" yaml:"i2c"`
	DebugPins []string       `json:"debug_pins" yaml:"debug_pins"` // index = debug role
	Shared    []SharedPin    `json:"shared_pins,omitempty" yaml:"shared_pins,omitempty"`
}

type PeripheralRef struct {
	Name string `json:"name" yaml:"name"` // e.g. "SPI1"
	Base string `json:"base" yaml:"base"` // hex register base, e.g. "0x40013000"
}

type SPISnapshot struct {
	Index      int           `json:"index" yaml:"index"`
	Peripheral PeripheralRef `json:"peripheral" yaml:"peripheral"`
	MISO       string        `json:"miso" yaml:"miso"`
	MOSI       string        `json:"mosi" yaml:"mosi"`
	SCK        string        `json:"sck" yaml:"sck"`
	AltFunc    int           `json:"alternate" yaml:"alternate"`
}

type UARTSnapshot struct {
	Index      int           `json:"index" yaml:"index"`
	TX         string        `json:"tx" yaml:"tx"`
	RX         string        `json:"rx" yaml:"rx"`
	AltFunc    int           `json:"alternate" yaml:"alternate"`
	Peripheral PeripheralRef `json:"peripheral" yaml:"peripheral"`
	IRQ        string        `json:"irq" yaml:"irq"`
	IRQNumber  int           `json:"irq_number" yaml:"irq_number"`
}

type I2CSnapshot struct {
	Index      int           `json:"index" yaml:"index"`
	Peripheral PeripheralRef `json:"peripheral" yaml:"peripheral"`
	SCL        string        `json:"scl" yaml:"scl"`
	SDA        string        `json:"sda" yaml:"sda"`
	AltFunc    int           `json:"alternate" yaml:"alternate"`
}

// SharedPin reports a pin named by more than one descriptor.
type SharedPin struct {
	Pin   string   `json:"pin" yaml:"pin"`
	Users []string `json:"users" yaml:"users"` // e.g. "spi[0].sck", "debug[1]"
}
