package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	fcolor "github.com/fatih/color"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"portmap-go/errcode"
	"portmap-go/services/hal/boards"
	"portmap-go/services/hal/ports"
	"portmap-go/services/hal/ports/families/stm32l0"
	"portmap-go/types"
)

const sharedBoard = "test_shared_sck"

func init() {
	fcolor.NoColor = true

	pin := stm32l0.MustPin
	boards.Register(ports.Static(ports.Board{
		Name:      sharedBoard,
		Family:    stm32l0.Family,
		SPICount:  1,
		UARTCount: 0,
		I2CCount:  0,
		SPI: []ports.SPIPort{{
			Peripheral: stm32l0.SPI1,
			MISO:       pin(ports.BankA, 6),
			MOSI:       pin(ports.BankA, 7),
			SCK:        pin(ports.BankA, 5),
			AltFunc:    stm32l0.AF0_SPI1,
		}},
		DebugPins: []ports.Pin{pin(ports.BankA, 5), pin(ports.BankC, 6), pin(ports.BankC, 5)},
	}))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp(&out, &errOut, func(bool) *zap.Logger { return zap.NewNop() })
	err := app.Run(append([]string{"portsinfo"}, args...))
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, name := range []string{boards.NucleoL073RZ, boards.NucleoL053R8, boards.Pico} {
		if !strings.Contains(out, name) {
			t.Fatalf("missing %s in %q", name, out)
		}
	}
	if !strings.Contains(out, "* "+boards.Selected()) {
		t.Fatalf("selected board not marked: %q", out)
	}
}

func TestShowJSON(t *testing.T) {
	out, err := run(t, "--board", boards.NucleoL073RZ, "show", "--format", "json")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var s types.BoardSnapshot
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if s.Name != boards.NucleoL073RZ || len(s.SPI) != 1 || s.SPI[0].SCK != "PA5" {
		t.Fatalf("snapshot = %+v", s)
	}
	if s.UART[0].IRQNumber != 28 || s.I2C[0].Peripheral.Base != "0x40005400" {
		t.Fatalf("uart/i2c = %+v %+v", s.UART[0], s.I2C[0])
	}
}

func TestShowYAML(t *testing.T) {
	out, err := run(t, "--board", boards.Pico, "show", "-f", "yaml")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var s types.BoardSnapshot
	if err := yaml.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Family != "rp2040" || len(s.UART) != 2 || s.UART[1].TX != "GP4" {
		t.Fatalf("snapshot = %+v", s)
	}
}

func TestShowTable(t *testing.T) {
	out, err := run(t, "--board", boards.NucleoL073RZ, "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"SPI1", "USART2_IRQn(28)", "debug[2]", "PC5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
}

func TestShowBadFormat(t *testing.T) {
	if _, err := run(t, "show", "--format", "xml"); err == nil {
		t.Fatal("expected error for xml")
	}
}

func TestCheck(t *testing.T) {
	out, err := run(t, "--board", boards.NucleoL073RZ, "check", "--strict")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 spi, 1 uart, 1 i2c, 3 debug") {
		t.Fatalf("out = %q", out)
	}
}

func TestCheckSharedPins(t *testing.T) {
	out, err := run(t, "--board", sharedBoard, "check")
	if err != nil {
		t.Fatalf("non-strict check: %v", err)
	}
	if !strings.Contains(out, "PA5 shared by [spi[0].sck debug[0]]") {
		t.Fatalf("out = %q", out)
	}
	if _, err := run(t, "--board", sharedBoard, "check", "--strict"); errcode.Of(err) != errcode.PinAliased {
		t.Fatalf("strict err = %v", err)
	}
}

func TestCheckUnknownBoard(t *testing.T) {
	out, err := run(t, "--board", "nope", "check")
	if errcode.Of(err) != errcode.UnknownBoard {
		t.Fatalf("err = %v, want unknown_board", err)
	}
	if strings.Contains(err.Error(), "failed validation") || out != "" {
		t.Fatalf("unknown board reported as invalid: %v, %q", err, out)
	}
}

func TestBoardFromEnv(t *testing.T) {
	t.Setenv(envBoard, boards.Pico)
	out, err := run(t, "lookup", "uart", "1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !strings.Contains(out, "uart[1] UART1@0x40038000 AF2 irq UART1_IRQ(21)\n") || !strings.Contains(out, "GP5") {
		t.Fatalf("out = %q", out)
	}
}

func TestLookup(t *testing.T) {
	out, err := run(t, "--board", boards.NucleoL073RZ, "lookup", "spi", "0")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !strings.Contains(out, "spi[0] SPI1@0x40013000 AF0\n") {
		t.Fatalf("title line missing in\n%s", out)
	}
	for _, want := range []string{"miso", "PA6", "mosi", "PA7", "sck", "PA5", "AF0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}

	if _, err := run(t, "--board", boards.NucleoL073RZ, "lookup", "spi", "1"); errcode.Of(err) != errcode.IndexOutOfRange {
		t.Fatalf("spi 1 err = %v", err)
	}
	if _, err := run(t, "lookup", "can", "0"); errcode.Of(err) != errcode.InvalidPeripheral {
		t.Fatalf("can err = %v", err)
	}
	if _, err := run(t, "lookup", "spi"); err == nil {
		t.Fatal("expected usage error")
	}
	if _, err := run(t, "lookup", "spi", "x"); err == nil {
		t.Fatal("expected index parse error")
	}
}

func TestBringupHost(t *testing.T) {
	out, err := run(t, "--board", boards.NucleoL053R8, "--baud", "9600", "bringup")
	if err != nil {
		t.Fatalf("bringup: %v", err)
	}
	if !strings.Contains(out, "2 spi, 2 uart, 2 i2c, 3 debug up") {
		t.Fatalf("out = %q", out)
	}
	if _, err := run(t, "--spi-hz", "0", "bringup"); err == nil {
		t.Fatal("expected range error for zero clock")
	}
}
