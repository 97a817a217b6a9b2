package ports

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"portmap-go/errcode"
	"portmap-go/types"
)

// Registry is the validated, immutable port table of one board. It is built
// once at start-up and passed by reference to driver initialisation. All
// methods are safe for concurrent use because nothing is written after New.
type Registry struct {
	name   string
	family *Family
	spi    []SPIPort
	uart   []UARTPort
	i2c    []I2CPort
	debug  [DebugPinCount]Pin
}

// New validates the provider's board and returns its registry. Any defect
// fails the whole board; no partial registry is returned.
func New(p Provider) (*Registry, error) {
	if p == nil {
		return nil, &errcode.E{C: errcode.InvalidBoard, Op: "new_registry", Msg: "nil provider"}
	}
	b := p.Describe()
	if err := validate(b); err != nil {
		return nil, errors.Wrapf(err, "board %q", b.Name)
	}
	r := &Registry{
		name:   b.Name,
		family: b.Family,
		spi:    slices.Clone(b.SPI),
		uart:   slices.Clone(b.UART),
		i2c:    slices.Clone(b.I2C),
	}
	copy(r.debug[:], b.DebugPins)
	return r, nil
}

// MustNew is New for boards known good at link time.
func MustNew(p Provider) *Registry {
	r, err := New(p)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Name() string    { return r.name }
func (r *Registry) Family() *Family { return r.family }

func (r *Registry) SPICount() int      { return len(r.spi) }
func (r *Registry) UARTCount() int     { return len(r.uart) }
func (r *Registry) I2CCount() int      { return len(r.i2c) }
func (r *Registry) DebugPinCount() int { return DebugPinCount }

// SPIPort returns SPI instance i.
func (r *Registry) SPIPort(i int) (SPIPort, error) {
	if err := checkIndex("spi_port", i, len(r.spi)); err != nil {
		return SPIPort{}, err
	}
	return r.spi[i], nil
}

// UARTPort returns UART instance i.
func (r *Registry) UARTPort(i int) (UARTPort, error) {
	if err := checkIndex("uart_port", i, len(r.uart)); err != nil {
		return UARTPort{}, err
	}
	return r.uart[i], nil
}

// I2CPort returns I2C instance i.
func (r *Registry) I2CPort(i int) (I2CPort, error) {
	if err := checkIndex("i2c_port", i, len(r.i2c)); err != nil {
		return I2CPort{}, err
	}
	return r.i2c[i], nil
}

// DebugPin returns the pin for debug role i.
func (r *Registry) DebugPin(i int) (Pin, error) {
	if err := checkIndex("debug_pin", i, DebugPinCount); err != nil {
		return Pin{}, err
	}
	return r.debug[i], nil
}

func checkIndex(op string, i, n int) error {
	if i >= 0 && i < n {
		return nil
	}
	return &errcode.E{
		C:   errcode.IndexOutOfRange,
		Op:  op,
		Msg: "index " + strconv.Itoa(i) + " not in [0," + strconv.Itoa(n) + ")",
	}
}

// Use is one place a pin is named in the registry.
type Use struct {
	Class  Class // ClassNone for debug pins
	Index  int
	Signal Signal
}

func (u Use) String() string {
	if u.Signal == SignalDebug {
		return "debug[" + strconv.Itoa(u.Index) + "]"
	}
	return u.Class.String() + "[" + strconv.Itoa(u.Index) + "]." + u.Signal.String()
}

// SharedPin is a pin named by more than one descriptor (or by a descriptor
// and the debug set).
type SharedPin struct {
	Pin  Pin
	Uses []Use
}

// SharedPins reports every pin used in more than one place, ordered by pin.
// Sharing across descriptors is accepted by New; callers decide whether a
// given board's sharing is intended.
func (r *Registry) SharedPins() []SharedPin {
	uses := make(map[Pin][]Use)
	add := func(c Class, i int, sigs []SignalPin) {
		for _, sp := range sigs {
			uses[sp.Pin] = append(uses[sp.Pin], Use{Class: c, Index: i, Signal: sp.Signal})
		}
	}
	for i, d := range r.spi {
		add(ClassSPI, i, d.Signals())
	}
	for i, d := range r.uart {
		add(ClassUART, i, d.Signals())
	}
	for i, d := range r.i2c {
		add(ClassI2C, i, d.Signals())
	}
	for i, p := range r.debug {
		add(ClassNone, i, []SignalPin{{SignalDebug, p}})
	}

	var out []SharedPin
	for p, u := range uses {
		if len(u) > 1 {
			out = append(out, SharedPin{Pin: p, Uses: u})
		}
	}
	slices.SortFunc(out, func(a, b SharedPin) int {
		if c := cmp.Compare(a.Pin.Bank(), b.Pin.Bank()); c != 0 {
			return c
		}
		return cmp.Compare(a.Pin.Number(), b.Pin.Number())
	})
	return out
}

// Snapshot renders the registry in its export shape.
func (r *Registry) Snapshot() types.BoardSnapshot {
	s := types.BoardSnapshot{
		Name:   r.name,
		Family: r.family.Name,
		SPI: lo.Map(r.spi, func(d SPIPort, i int) types.SPISnapshot {
			return types.SPISnapshot{
				Index: i, Peripheral: peripheralRef(d.Peripheral),
				MISO: d.MISO.String(), MOSI: d.MOSI.String(), SCK: d.SCK.String(),
				AltFunc: int(d.AltFunc),
			}
		}),
		UART: lo.Map(r.uart, func(d UARTPort, i int) types.UARTSnapshot {
			return types.UARTSnapshot{
				Index: i, TX: d.TX.String(), RX: d.RX.String(), AltFunc: int(d.AltFunc),
				Peripheral: peripheralRef(d.Peripheral), IRQ: d.IRQ.Name, IRQNumber: d.IRQ.Number,
			}
		}),
		I2C: lo.Map(r.i2c, func(d I2CPort, i int) types.I2CSnapshot {
			return types.I2CSnapshot{
				Index: i, Peripheral: peripheralRef(d.Peripheral),
				SCL: d.SCL.String(), SDA: d.SDA.String(), AltFunc: int(d.AltFunc),
			}
		}),
		DebugPins: lo.Map(r.debug[:], func(p Pin, _ int) string { return p.String() }),
	}
	for _, sp := range r.SharedPins() {
		s.Shared = append(s.Shared, types.SharedPin{
			Pin:   sp.Pin.String(),
			Users: lo.Map(sp.Uses, func(u Use, _ int) string { return u.String() }),
		})
	}
	return s
}

func peripheralRef(p Peripheral) types.PeripheralRef {
	return types.PeripheralRef{Name: p.Name, Base: "0x" + strconv.FormatUint(uint64(p.Base), 16)}
}
