//go:build !(stm32 || rp2040 || rp2350)

package bringup

import (
	"context"
	"sync"

	"tinygo.org/x/drivers"

	"portmap-go/errcode"
	"portmap-go/services/hal/ports"
)

// PinMode records what a host pin was last configured as.
type PinMode uint8

const (
	ModeUnset PinMode = iota
	ModeAltFunc
	ModeOutput
)

// PinState is the recorded configuration of one host pin.
type PinState struct {
	Mode    PinMode
	Signal  ports.Signal
	AltFunc ports.AltFunc
	Level   bool
}

// ----------------------------- GPIO (host) -----------------------------------

// HostGPIO records pin routing for host-side tests. Pins the family does
// not have are rejected as the hardware would.
type HostGPIO struct {
	mu     sync.RWMutex
	family *ports.Family
	pins   map[ports.Pin]*PinState
}

func NewHostGPIO(f *ports.Family) *HostGPIO {
	return &HostGPIO{family: f, pins: make(map[ports.Pin]*PinState)}
}

func (g *HostGPIO) check(p ports.Pin) error {
	if !g.family.HasPin(p) {
		return &errcode.E{C: errcode.InvalidPin, Op: "gpio", Msg: p.String() + " not on this part"}
	}
	return nil
}

func (g *HostGPIO) ConfigureAltFunc(p ports.Pin, sig ports.Signal, af ports.AltFunc) error {
	if err := g.check(p); err != nil {
		return err
	}
	g.mu.Lock()
	g.pins[p] = &PinState{Mode: ModeAltFunc, Signal: sig, AltFunc: af}
	g.mu.Unlock()
	return nil
}

func (g *HostGPIO) ConfigureOutput(p ports.Pin, initial bool) (Output, error) {
	if err := g.check(p); err != nil {
		return nil, err
	}
	g.mu.Lock()
	st := &PinState{Mode: ModeOutput, Level: initial}
	g.pins[p] = st
	g.mu.Unlock()
	return &hostOutput{g: g, st: st}, nil
}

// State returns a copy of the pin's recorded configuration.
func (g *HostGPIO) State(p ports.Pin) (PinState, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	st, ok := g.pins[p]
	if !ok {
		return PinState{}, false
	}
	return *st, true
}

type hostOutput struct {
	g  *HostGPIO
	st *PinState
}

func (o *hostOutput) Set(level bool) {
	o.g.mu.Lock()
	o.st.Level = level
	o.g.mu.Unlock()
}

func (o *hostOutput) Get() bool {
	o.g.mu.RLock()
	v := o.st.Level
	o.g.mu.RUnlock()
	return v
}

func (o *hostOutput) Toggle() {
	o.g.mu.Lock()
	o.st.Level = !o.st.Level
	o.g.mu.Unlock()
}

// ----------------------------- SPI (host) ------------------------------------

// HostSPI is a loopback bus: what is written is read back.
type HostSPI struct {
	mu   sync.Mutex
	Name string
	Hz   uint32
}

func (s *HostSPI) Tx(w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(r, w)
	return nil
}

func (s *HostSPI) Transfer(b byte) (byte, error) { return b, nil }

// ----------------------------- I²C (host) ------------------------------------

// HostI2C implements tinygo drivers.I2C for host-side tests.
type HostI2C struct {
	mu     sync.Mutex
	Name   string
	Hz     uint32
	LastTx struct {
		Addr uint16
		W    []byte
		Rn   int
	}
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastTx.Addr = addr
	h.LastTx.W = append([]byte(nil), w...)
	h.LastTx.Rn = len(r)
	return nil
}

// ----------------------------- UART (host) -----------------------------------

// HostUART loops written bytes back to the receive side.
type HostUART struct {
	mu    sync.Mutex
	Name  string
	Baud  uint32
	buf   []byte
	ready chan struct{}
}

func newHostUART(name string, baud uint32) *HostUART {
	return &HostUART{Name: name, Baud: baud, ready: make(chan struct{}, 1)}
}

func (u *HostUART) Write(p []byte) (int, error) {
	u.mu.Lock()
	u.buf = append(u.buf, p...)
	u.mu.Unlock()
	select {
	case u.ready <- struct{}{}:
	default:
	}
	return len(p), nil
}

// RecvSomeContext blocks until at least one byte is available or ctx ends.
func (u *HostUART) RecvSomeContext(ctx context.Context, p []byte) (int, error) {
	for {
		u.mu.Lock()
		if len(u.buf) > 0 {
			n := copy(p, u.buf)
			u.buf = u.buf[n:]
			u.mu.Unlock()
			return n, nil
		}
		u.mu.Unlock()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-u.ready:
		}
	}
}

// ----------------------------- IRQ (host) ------------------------------------

// HostIRQ records which vectors were enabled.
type HostIRQ struct {
	mu      sync.Mutex
	max     int
	enabled map[int]string
}

func (h *HostIRQ) EnableIRQ(q ports.IRQ) error {
	if q.Number < 0 || q.Number >= h.max {
		return &errcode.E{C: errcode.InvalidIRQ, Op: "enable_irq", Msg: q.String()}
	}
	h.mu.Lock()
	h.enabled[q.Number] = q.Name
	h.mu.Unlock()
	return nil
}

func (h *HostIRQ) Enabled(n int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.enabled[n]
	return ok
}

// ----------------------------- Platform (host) -------------------------------

// HostPlatform wires the host fakes together and keeps every bus it opened
// so tests can inspect them.
type HostPlatform struct {
	GPIO *HostGPIO
	IRQ  *HostIRQ

	mu   sync.Mutex
	spi  map[string]*HostSPI
	i2c  map[string]*HostI2C
	uart map[string]*HostUART
}

func NewHostPlatform(f *ports.Family) *HostPlatform {
	return &HostPlatform{
		GPIO: NewHostGPIO(f),
		IRQ:  &HostIRQ{max: f.IRQCount, enabled: make(map[int]string)},
		spi:  make(map[string]*HostSPI),
		i2c:  make(map[string]*HostI2C),
		uart: make(map[string]*HostUART),
	}
}

func (h *HostPlatform) OpenSPI(d ports.SPIPort, hz uint32) (drivers.SPI, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b := &HostSPI{Name: d.Peripheral.Name, Hz: hz}
	h.spi[d.Peripheral.Name] = b
	return b, nil
}

func (h *HostPlatform) OpenI2C(d ports.I2CPort, hz uint32) (drivers.I2C, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b := &HostI2C{Name: d.Peripheral.Name, Hz: hz}
	h.i2c[d.Peripheral.Name] = b
	return b, nil
}

func (h *HostPlatform) OpenUART(d ports.UARTPort, baud uint32) (Serial, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	u := newHostUART(d.Peripheral.Name, baud)
	h.uart[d.Peripheral.Name] = u
	return u, nil
}

// SPIBus, I2CBus and UARTPort return the fake opened for a peripheral name.
func (h *HostPlatform) SPIBus(name string) *HostSPI {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.spi[name]
}

func (h *HostPlatform) I2CBus(name string) *HostI2C {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.i2c[name]
}

func (h *HostPlatform) UARTPort(name string) *HostUART {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.uart[name]
}

// Platform returns the collaborator bundle backed by h.
func (h *HostPlatform) Platform() Platform {
	return Platform{GPIO: h.GPIO, SPI: h, I2C: h, UART: h, IRQ: h.IRQ}
}

// DefaultPlatform returns inert host fakes for the given family.
func DefaultPlatform(f *ports.Family) Platform {
	return NewHostPlatform(f).Platform()
}
