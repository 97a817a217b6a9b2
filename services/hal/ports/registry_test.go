package ports

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"portmap-go/errcode"
)

var (
	tSPI1   = Peripheral{Class: ClassSPI, Name: "SPI1", Base: 0x40013000}
	tUSART2 = Peripheral{Class: ClassUART, Name: "USART2", Base: 0x40004400}
	tI2C1   = Peripheral{Class: ClassI2C, Name: "I2C1", Base: 0x40005400}
)

// testFamily has banks A and B, and a muxing table that only knows SPI1.
func testFamily() *Family {
	return &Family{
		Name:       "testfam",
		Banks:      map[Bank]uint32{BankA: 0xffff, BankB: 0xffff},
		MaxAltFunc: 7,
		IRQCount:   32,
		AltFuncs: AltFuncFunc(func(p Pin, periph Peripheral, sig Signal) ([]AltFunc, bool) {
			if periph.Name != "SPI1" {
				return nil, false
			}
			want := map[Pin]Signal{
				MustPin(BankA, 5): SignalSCK,
				MustPin(BankA, 6): SignalMISO,
				MustPin(BankA, 7): SignalMOSI,
			}
			if want[p] == sig {
				return []AltFunc{0}, true
			}
			return nil, true
		}),
	}
}

func testBoard() Board {
	return Board{
		Name:     "testboard",
		Family:   testFamily(),
		SPICount: 1,
		SPI: []SPIPort{{
			Peripheral: tSPI1,
			MISO:       MustPin(BankA, 6),
			MOSI:       MustPin(BankA, 7),
			SCK:        MustPin(BankA, 5),
			AltFunc:    0,
		}},
		UARTCount: 1,
		UART: []UARTPort{{
			TX:         MustPin(BankA, 2),
			RX:         MustPin(BankA, 3),
			AltFunc:    4,
			Peripheral: tUSART2,
			IRQ:        IRQ{Name: "USART2_IRQn", Number: 28},
		}},
		I2CCount: 1,
		I2C: []I2CPort{{
			Peripheral: tI2C1,
			SCL:        MustPin(BankB, 8),
			SDA:        MustPin(BankB, 9),
			AltFunc:    4,
		}},
		DebugPins: []Pin{MustPin(BankB, 0), MustPin(BankB, 1), MustPin(BankB, 2)},
	}
}

func TestNewAndLookups(t *testing.T) {
	b := testBoard()
	r, err := New(Static(b))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Name() != "testboard" || r.Family().Name != "testfam" {
		t.Fatalf("identity: %q %q", r.Name(), r.Family().Name)
	}
	if r.SPICount() != len(b.SPI) || r.UARTCount() != len(b.UART) || r.I2CCount() != len(b.I2C) {
		t.Fatalf("counts: spi=%d uart=%d i2c=%d", r.SPICount(), r.UARTCount(), r.I2CCount())
	}
	if r.DebugPinCount() != DebugPinCount {
		t.Fatalf("debug count = %d", r.DebugPinCount())
	}

	spi, err := r.SPIPort(0)
	if err != nil {
		t.Fatalf("SPIPort(0): %v", err)
	}
	if diff := cmp.Diff(b.SPI[0], spi, cmp.AllowUnexported(Pin{})); diff != "" {
		t.Fatalf("SPIPort(0) mismatch (-want +got):\n%s", diff)
	}
	uart, err := r.UARTPort(0)
	if err != nil || uart != b.UART[0] {
		t.Fatalf("UARTPort(0) = %+v, %v", uart, err)
	}
	i2c, err := r.I2CPort(0)
	if err != nil || i2c != b.I2C[0] {
		t.Fatalf("I2CPort(0) = %+v, %v", i2c, err)
	}
	for i, want := range b.DebugPins {
		got, err := r.DebugPin(i)
		if err != nil || got != want {
			t.Fatalf("DebugPin(%d) = %v, %v; want %v", i, got, err, want)
		}
	}
}

func TestLookupsAreIdempotent(t *testing.T) {
	r := MustNew(Static(testBoard()))
	first, _ := r.SPIPort(0)
	for i := 0; i < 10; i++ {
		again, err := r.SPIPort(0)
		if err != nil || again != first {
			t.Fatalf("call %d: %+v, %v", i, again, err)
		}
	}
}

func TestLookupOutOfRange(t *testing.T) {
	r := MustNew(Static(testBoard()))
	checks := map[string]func() error{
		"spi -1":    func() error { _, err := r.SPIPort(-1); return err },
		"spi count": func() error { _, err := r.SPIPort(r.SPICount()); return err },
		"uart 1":    func() error { _, err := r.UARTPort(1); return err },
		"i2c 5":     func() error { _, err := r.I2CPort(5); return err },
		"debug -1":  func() error { _, err := r.DebugPin(-1); return err },
		"debug max": func() error { _, err := r.DebugPin(DebugPinCount); return err },
	}
	for name, fn := range checks {
		err := fn()
		if !errors.Is(err, errcode.IndexOutOfRange) {
			t.Fatalf("%s: err = %v, want index_out_of_range", name, err)
		}
	}
	_, err := r.SPIPort(1)
	if got, want := err.Error(), "spi_port: index_out_of_range: index 1 not in [0,1)"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

func TestValidationDefects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(b *Board)
		want   errcode.Code
	}{
		{"missing name", func(b *Board) { b.Name = "" }, errcode.InvalidBoard},
		{"missing family", func(b *Board) { b.Family = nil }, errcode.InvalidBoard},
		{"spi count", func(b *Board) { b.SPICount = 2 }, errcode.CountMismatch},
		{"uart count", func(b *Board) { b.UARTCount = 0 }, errcode.CountMismatch},
		{"i2c count", func(b *Board) { b.I2C = append(b.I2C, b.I2C[0]) }, errcode.CountMismatch},
		{"debug count", func(b *Board) { b.DebugPins = b.DebugPins[:2] }, errcode.CountMismatch},
		{"pin not on family", func(b *Board) { b.I2C[0].SDA = MustPin(BankC, 9) }, errcode.InvalidPin},
		{"zero pin", func(b *Board) { b.UART[0].RX = Pin{} }, errcode.InvalidPin},
		{"debug pin not on family", func(b *Board) { b.DebugPins[2] = MustPin(BankGP, 3) }, errcode.InvalidPin},
		{"spi alias", func(b *Board) { b.SPI[0].MOSI = b.SPI[0].MISO }, errcode.PinAliased},
		{"uart alias", func(b *Board) { b.UART[0].RX = b.UART[0].TX }, errcode.PinAliased},
		{"i2c alias", func(b *Board) { b.I2C[0].SDA = b.I2C[0].SCL }, errcode.PinAliased},
		{"debug alias", func(b *Board) { b.DebugPins[1] = b.DebugPins[0] }, errcode.PinAliased},
		{"wrong class", func(b *Board) { b.SPI[0].Peripheral = tUSART2 }, errcode.InvalidPeripheral},
		{"no peripheral", func(b *Board) { b.I2C[0].Peripheral = Peripheral{} }, errcode.InvalidPeripheral},
		{"irq range", func(b *Board) { b.UART[0].IRQ.Number = 40 }, errcode.InvalidIRQ},
		{"irq unnamed", func(b *Board) { b.UART[0].IRQ = IRQ{} }, errcode.InvalidIRQ},
		{"af above family max", func(b *Board) { b.I2C[0].AltFunc = 9 }, errcode.InvalidAltFunc},
		{"af not in table", func(b *Board) { b.SPI[0].AltFunc = 1 }, errcode.InvalidAltFunc},
		{"signal on wrong pin", func(b *Board) { b.SPI[0].SCK, b.SPI[0].MISO = b.SPI[0].MISO, b.SPI[0].SCK }, errcode.InvalidAltFunc},
	}
	for _, tc := range cases {
		b := testBoard()
		tc.mutate(&b)
		r, err := New(Static(b))
		if err == nil {
			t.Fatalf("%s: expected error, got registry %v", tc.name, r.Name())
		}
		if r != nil {
			t.Fatalf("%s: partial registry returned", tc.name)
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, want %s", tc.name, err, tc.want)
		}
	}
}

func TestAltFuncDeferredWithoutTable(t *testing.T) {
	b := testBoard()
	// USART2 is not in the test table: any in-range code passes.
	b.UART[0].AltFunc = 7
	if _, err := New(Static(b)); err != nil {
		t.Fatalf("unknown peripheral should defer: %v", err)
	}
	b = testBoard()
	b.Family.AltFuncs = nil
	b.SPI[0].AltFunc = 3
	if _, err := New(Static(b)); err != nil {
		t.Fatalf("nil table should defer: %v", err)
	}
}

func TestValidationReportsEveryDefect(t *testing.T) {
	b := testBoard()
	b.SPICount = 3
	b.UART[0].IRQ.Number = 99
	b.I2C[0].SDA = b.I2C[0].SCL
	_, err := New(Static(b))
	for _, want := range []errcode.Code{errcode.CountMismatch, errcode.InvalidIRQ, errcode.PinAliased} {
		if !errors.Is(err, want) {
			t.Fatalf("err %v does not contain %s", err, want)
		}
	}
}

func TestNilProvider(t *testing.T) {
	if _, err := New(nil); errcode.Of(err) != errcode.InvalidBoard {
		t.Fatalf("New(nil) err = %v", err)
	}
}

func TestMustNewPanics(t *testing.T) {
	b := testBoard()
	b.SPICount = 0
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustNew(Static(b))
}

func TestRegistryDoesNotAliasProviderTables(t *testing.T) {
	b := testBoard()
	r := MustNew(Static(b))
	b.SPI[0].SCK = MustPin(BankB, 15)
	b.DebugPins[0] = MustPin(BankB, 15)

	spi, _ := r.SPIPort(0)
	if spi.SCK != MustPin(BankA, 5) {
		t.Fatalf("registry changed with provider table: %v", spi.SCK)
	}
	if p, _ := r.DebugPin(0); p != MustPin(BankB, 0) {
		t.Fatalf("debug pin changed: %v", p)
	}
}

func TestSharedPinsAcrossClasses(t *testing.T) {
	b := testBoard()
	b.DebugPins[1] = b.SPI[0].SCK
	r, err := New(Static(b))
	if err != nil {
		t.Fatalf("cross-class sharing must be accepted: %v", err)
	}
	shared := r.SharedPins()
	if len(shared) != 1 {
		t.Fatalf("shared = %+v", shared)
	}
	if shared[0].Pin != MustPin(BankA, 5) {
		t.Fatalf("shared pin = %v", shared[0].Pin)
	}
	got := []string{shared[0].Uses[0].String(), shared[0].Uses[1].String()}
	want := []string{"spi[0].sck", "debug[1]"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("uses (-want +got):\n%s", diff)
	}
	if len(MustNew(Static(testBoard())).SharedPins()) != 0 {
		t.Fatal("clean board reports shared pins")
	}
}

func TestSnapshot(t *testing.T) {
	s := MustNew(Static(testBoard())).Snapshot()
	if s.Name != "testboard" || s.Family != "testfam" {
		t.Fatalf("identity: %+v", s)
	}
	if len(s.SPI) != 1 || s.SPI[0].MISO != "PA6" || s.SPI[0].Peripheral.Base != "0x40013000" {
		t.Fatalf("spi: %+v", s.SPI)
	}
	if s.UART[0].IRQ != "USART2_IRQn" || s.UART[0].IRQNumber != 28 {
		t.Fatalf("uart: %+v", s.UART)
	}
	if diff := cmp.Diff([]string{"PB0", "PB1", "PB2"}, s.DebugPins); diff != "" {
		t.Fatalf("debug pins (-want +got):\n%s", diff)
	}
	if len(s.Shared) != 0 {
		t.Fatalf("shared: %+v", s.Shared)
	}
}

func TestConcurrentReads(t *testing.T) {
	r := MustNew(Static(testBoard()))
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if _, err := r.SPIPort(0); err != nil {
					t.Error(err)
					return
				}
				if _, err := r.DebugPin(i % DebugPinCount); err != nil {
					t.Error(err)
					return
				}
				_ = r.SharedPins()
			}
		}()
	}
	wg.Wait()
}
