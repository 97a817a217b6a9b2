package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"portmap-go/errcode"
	"portmap-go/services/hal/ports"
	"portmap-go/types"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func render(w io.Writer, format string, s types.BoardSnapshot) error {
	switch strings.ToLower(format) {
	case formatTable:
		renderTable(w, s)
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.Errorf("unknown format %q (want table, json or yaml)", format)
}

func renderTable(w io.Writer, s types.BoardSnapshot) {
	fmt.Fprintf(w, "%s (%s)\n", s.Name, s.Family)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Port", "Peripheral", "Base", "Signals", "AF", "IRQ"})
	for _, p := range s.SPI {
		t.AppendRow(table.Row{
			fmt.Sprintf("spi[%d]", p.Index), p.Peripheral.Name, p.Peripheral.Base,
			fmt.Sprintf("miso=%s mosi=%s sck=%s", p.MISO, p.MOSI, p.SCK), p.AltFunc, "",
		})
	}
	for _, p := range s.UART {
		t.AppendRow(table.Row{
			fmt.Sprintf("uart[%d]", p.Index), p.Peripheral.Name, p.Peripheral.Base,
			fmt.Sprintf("tx=%s rx=%s", p.TX, p.RX), p.AltFunc, fmt.Sprintf("%s(%d)", p.IRQ, p.IRQNumber),
		})
	}
	for _, p := range s.I2C {
		t.AppendRow(table.Row{
			fmt.Sprintf("i2c[%d]", p.Index), p.Peripheral.Name, p.Peripheral.Base,
			fmt.Sprintf("scl=%s sda=%s", p.SCL, p.SDA), p.AltFunc, "",
		})
	}
	for i, p := range s.DebugPins {
		t.AppendRow(table.Row{fmt.Sprintf("debug[%d]", i), "", "", p, "", ""})
	}
	t.Render()

	for _, sp := range s.Shared {
		fmt.Fprintf(w, "shared %s: %s\n", sp.Pin, strings.Join(sp.Users, ", "))
	}
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "index %q", s)
	}
	return i, nil
}

func renderDescriptor(w io.Writer, r *ports.Registry, class string, i int) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Signal", "Pin"})

	var title string
	switch strings.ToLower(class) {
	case "spi":
		d, err := r.SPIPort(i)
		if err != nil {
			return err
		}
		title = fmt.Sprintf("spi[%d] %s %s", i, d.Peripheral, d.AltFunc)
		appendSignals(t, d.Signals())
	case "uart":
		d, err := r.UARTPort(i)
		if err != nil {
			return err
		}
		title = fmt.Sprintf("uart[%d] %s %s irq %s", i, d.Peripheral, d.AltFunc, d.IRQ)
		appendSignals(t, d.Signals())
	case "i2c":
		d, err := r.I2CPort(i)
		if err != nil {
			return err
		}
		title = fmt.Sprintf("i2c[%d] %s %s", i, d.Peripheral, d.AltFunc)
		appendSignals(t, d.Signals())
	case "debug":
		p, err := r.DebugPin(i)
		if err != nil {
			return err
		}
		title = fmt.Sprintf("debug[%d]", i)
		t.AppendRow(table.Row{ports.SignalDebug, p})
	default:
		return &errcode.E{C: errcode.InvalidPeripheral, Op: "lookup", Msg: "unknown class " + strconv.Quote(class)}
	}
	fmt.Fprintln(w, title)
	t.Render()
	return nil
}

func appendSignals(t table.Writer, sigs []ports.SignalPin) {
	for _, sp := range sigs {
		t.AppendRow(table.Row{sp.Signal, sp.Pin})
	}
}
