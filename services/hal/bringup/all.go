package bringup

import (
	"context"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"tinygo.org/x/drivers"

	"portmap-go/services/hal/ports"
)

// Config controls InitAll.
type Config struct {
	Params Params
	Logger *zap.Logger // nil => no logging
}

// Buses holds what InitAll bound, indexed like the registry. A slot is nil
// when that instance failed.
type Buses struct {
	SPI   []drivers.SPI
	UART  []Serial
	I2C   []drivers.I2C
	Debug []Output
}

// InitAll brings up every descriptor in the registry, iterating by the
// registry's counts. One failing instance does not stop the others; all
// failures are returned together. Cancelling ctx stops before the next step.
func InitAll(ctx context.Context, reg *ports.Registry, pf Platform, cfg Config) (*Buses, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("board", reg.Name()))

	b := &Buses{
		SPI:   make([]drivers.SPI, reg.SPICount()),
		UART:  make([]Serial, reg.UARTCount()),
		I2C:   make([]drivers.I2C, reg.I2CCount()),
		Debug: make([]Output, reg.DebugPinCount()),
	}
	var errs error
	step := func(class string, i int, fn func() error) bool {
		if err := ctx.Err(); err != nil {
			errs = multierr.Append(errs, err)
			return false
		}
		if err := fn(); err != nil {
			log.Warn("bring-up failed", zap.String("class", class), zap.Int("index", i), zap.Error(err))
			errs = multierr.Append(errs, err)
			return true
		}
		log.Debug("bring-up done", zap.String("class", class), zap.Int("index", i))
		return true
	}

	for i := 0; i < reg.DebugPinCount(); i++ {
		if !step("debug", i, func() (err error) { b.Debug[i], err = InitDebugPin(reg, i, pf); return }) {
			return b, errs
		}
	}
	for i := 0; i < reg.SPICount(); i++ {
		if !step("spi", i, func() (err error) { b.SPI[i], err = InitSPI(reg, i, pf, cfg.Params); return }) {
			return b, errs
		}
	}
	for i := 0; i < reg.I2CCount(); i++ {
		if !step("i2c", i, func() (err error) { b.I2C[i], err = InitI2C(reg, i, pf, cfg.Params); return }) {
			return b, errs
		}
	}
	for i := 0; i < reg.UARTCount(); i++ {
		if !step("uart", i, func() (err error) { b.UART[i], err = InitUART(reg, i, pf, cfg.Params); return }) {
			return b, errs
		}
	}

	log.Info("bring-up complete",
		zap.Int("spi", reg.SPICount()),
		zap.Int("i2c", reg.I2CCount()),
		zap.Int("uart", reg.UARTCount()),
		zap.Int("failed", len(multierr.Errors(errs))),
	)
	return b, errs
}
