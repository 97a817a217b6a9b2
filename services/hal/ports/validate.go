package ports

import (
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"portmap-go/errcode"
)

// validate checks a board table. Every defect is reported, not just the first.
func validate(b Board) error {
	var errs error
	if b.Name == "" {
		errs = multierr.Append(errs, &errcode.E{C: errcode.InvalidBoard, Msg: "board has no name"})
	}
	if b.Family == nil {
		// Nothing below can be checked without a family.
		return multierr.Append(errs, &errcode.E{C: errcode.InvalidBoard, Msg: "board " + strconv.Quote(b.Name) + " has no family"})
	}
	f := b.Family

	errs = multierr.Combine(errs,
		checkCount("spi", b.SPICount, len(b.SPI)),
		checkCount("uart", b.UARTCount, len(b.UART)),
		checkCount("i2c", b.I2CCount, len(b.I2C)),
		checkCount("debug", DebugPinCount, len(b.DebugPins)),
	)

	for i, d := range b.SPI {
		err := checkDescriptor(f, ClassSPI, d.Peripheral, d.AltFunc, d.Signals())
		errs = multierr.Append(errs, errors.Wrapf(err, "spi[%d]", i))
	}
	for i, d := range b.UART {
		err := multierr.Append(
			checkDescriptor(f, ClassUART, d.Peripheral, d.AltFunc, d.Signals()),
			checkIRQ(f, d.IRQ),
		)
		errs = multierr.Append(errs, errors.Wrapf(err, "uart[%d]", i))
	}
	for i, d := range b.I2C {
		err := checkDescriptor(f, ClassI2C, d.Peripheral, d.AltFunc, d.Signals())
		errs = multierr.Append(errs, errors.Wrapf(err, "i2c[%d]", i))
	}

	seen := make(map[Pin]int, len(b.DebugPins))
	for i, p := range b.DebugPins {
		if !f.HasPin(p) {
			errs = multierr.Append(errs, errors.Wrapf(invalidPin(f, p), "debug[%d]", i))
			continue
		}
		if j, dup := seen[p]; dup {
			errs = multierr.Append(errs, errors.Wrapf(&errcode.E{
				C:   errcode.PinAliased,
				Msg: p.String() + " already used by debug[" + strconv.Itoa(j) + "]",
			}, "debug[%d]", i))
			continue
		}
		seen[p] = i
	}
	return errs
}

func checkCount(class string, declared, actual int) error {
	if declared == actual {
		return nil
	}
	return &errcode.E{
		C:   errcode.CountMismatch,
		Op:  class,
		Msg: "declared " + strconv.Itoa(declared) + ", table has " + strconv.Itoa(actual),
	}
}

func checkDescriptor(f *Family, class Class, periph Peripheral, af AltFunc, sigs []SignalPin) error {
	var errs error
	if periph.Name == "" || periph.Class != class {
		errs = multierr.Append(errs, &errcode.E{
			C:   errcode.InvalidPeripheral,
			Msg: "peripheral " + periph.String() + " is class " + periph.Class.String() + ", want " + class.String(),
		})
	}
	owner := make(map[Pin]Signal, len(sigs))
	for _, sp := range sigs {
		if !f.HasPin(sp.Pin) {
			errs = multierr.Append(errs, errors.Wrap(invalidPin(f, sp.Pin), sp.Signal.String()))
			continue
		}
		if prev, dup := owner[sp.Pin]; dup {
			errs = multierr.Append(errs, errors.Wrap(&errcode.E{
				C:   errcode.PinAliased,
				Msg: sp.Pin.String() + " already carries " + prev.String(),
			}, sp.Signal.String()))
			continue
		}
		owner[sp.Pin] = sp.Signal
		if err := f.CheckAltFunc(sp.Pin, periph, sp.Signal, af); err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, sp.Signal.String()))
		}
	}
	return errs
}

func checkIRQ(f *Family, q IRQ) error {
	if q.Name != "" && q.Number >= 0 && q.Number < f.IRQCount {
		return nil
	}
	return &errcode.E{
		C:   errcode.InvalidIRQ,
		Msg: "irq " + q.String() + " not in [0," + strconv.Itoa(f.IRQCount) + ") on " + f.Name,
	}
}

func invalidPin(f *Family, p Pin) error {
	return &errcode.E{C: errcode.InvalidPin, Msg: p.String() + " does not exist on " + f.Name}
}
