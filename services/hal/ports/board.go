package ports

// DebugPinCount is the number of debug pins every board supplies.
// Index 0 is the primary trace pin.
const DebugPinCount = 3

// Board is the literal table a board module writes: declared counts plus the
// ordered descriptor sequences. Index within a sequence is the logical
// instance number drivers use.
type Board struct {
	Name   string
	Family *Family

	SPICount  int
	UARTCount int
	I2CCount  int

	SPI       []SPIPort
	UART      []UARTPort
	I2C       []I2CPort
	DebugPins []Pin
}

// Provider supplies the port tables of one board. Driver code depends on
// this interface (through Registry), never on a particular board module.
type Provider interface {
	Name() string
	Describe() Board
}

// Static wraps a compiled-in Board as a Provider.
func Static(b Board) Provider { return staticProvider{b: b} }

type staticProvider struct{ b Board }

func (s staticProvider) Name() string    { return s.b.Name }
func (s staticProvider) Describe() Board { return s.b }
