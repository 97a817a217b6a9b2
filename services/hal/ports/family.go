package ports

import (
	"strconv"

	"portmap-go/errcode"
)

// AltFunc selects which multiplexed function a pin is routed to.
type AltFunc uint8

func (a AltFunc) String() string { return "AF" + strconv.Itoa(int(a)) }

// Signal names the peripheral signal a pin carries.
type Signal uint8

const (
	SignalNone Signal = iota
	SignalMISO
	SignalMOSI
	SignalSCK
	SignalTX
	SignalRX
	SignalSCL
	SignalSDA
	SignalDebug
)

func (s Signal) String() string {
	switch s {
	case SignalMISO:
		return "miso"
	case SignalMOSI:
		return "mosi"
	case SignalSCK:
		return "sck"
	case SignalTX:
		return "tx"
	case SignalRX:
		return "rx"
	case SignalSCL:
		return "scl"
	case SignalSDA:
		return "sda"
	case SignalDebug:
		return "debug"
	default:
		return "none"
	}
}

// AltFuncTable is a family's pin-muxing constraint table.
type AltFuncTable interface {
	// Lookup returns the alternate functions that route pin to sig of periph.
	// known is false when the table has no entries for periph at all, in
	// which case validation is left to the consuming driver.
	Lookup(pin Pin, periph Peripheral, sig Signal) (afs []AltFunc, known bool)
}

// Family describes what a microcontroller family accepts: which pins exist
// in each bank, the alternate-function code range, the interrupt vector
// count and, optionally, the muxing table.
type Family struct {
	Name       string
	Banks      map[Bank]uint32 // bit n set => pin n exists
	MaxAltFunc AltFunc
	IRQCount   int
	AltFuncs   AltFuncTable // nil => no table for this family
}

// HasPin reports whether p exists on the family.
func (f *Family) HasPin(p Pin) bool {
	if f == nil || !p.IsValid() {
		return false
	}
	mask, ok := f.Banks[p.Bank()]
	return ok && mask&(1<<uint(p.Number())) != 0
}

// Pin is the family-aware pin constructor.
func (f *Family) Pin(bank Bank, n int) (Pin, error) {
	p, err := NewPin(bank, n)
	if err != nil {
		return Pin{}, err
	}
	if !f.HasPin(p) {
		return Pin{}, &errcode.E{C: errcode.InvalidPin, Op: "new_pin", Msg: p.String() + " does not exist on " + f.name()}
	}
	return p, nil
}

// MustPin panics where Pin would fail.
func (f *Family) MustPin(bank Bank, n int) Pin {
	p, err := f.Pin(bank, n)
	if err != nil {
		panic(err)
	}
	return p
}

// CheckAltFunc validates af for routing pin to sig of periph.
func (f *Family) CheckAltFunc(pin Pin, periph Peripheral, sig Signal, af AltFunc) error {
	if af > f.MaxAltFunc {
		return &errcode.E{C: errcode.InvalidAltFunc, Msg: af.String() + " exceeds " + f.MaxAltFunc.String()}
	}
	if f.AltFuncs == nil {
		return nil
	}
	afs, known := f.AltFuncs.Lookup(pin, periph, sig)
	if !known {
		return nil
	}
	for _, v := range afs {
		if v == af {
			return nil
		}
	}
	msg := af.String() + " does not route " + pin.String() + " to " + periph.Name + " " + sig.String()
	if len(afs) > 0 {
		msg += " (want " + afs[0].String() + ")"
	}
	return &errcode.E{C: errcode.InvalidAltFunc, Msg: msg}
}

func (f *Family) name() string {
	if f == nil {
		return "<nil family>"
	}
	return f.Name
}

// AltFuncFunc adapts a rule function to AltFuncTable.
type AltFuncFunc func(pin Pin, periph Peripheral, sig Signal) ([]AltFunc, bool)

func (fn AltFuncFunc) Lookup(pin Pin, periph Peripheral, sig Signal) ([]AltFunc, bool) {
	return fn(pin, periph, sig)
}
