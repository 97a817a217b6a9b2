package main

import (
	"context"
	"io"
	"math"

	fcolor "github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"portmap-go/errcode"
	"portmap-go/services/hal/boards"
	"portmap-go/services/hal/bringup"
	"portmap-go/services/hal/ports"
)

const (
	flagBoard  = "board"
	flagDebug  = "debug"
	flagSPIHz  = "spi-hz"
	flagI2CHz  = "i2c-hz"
	flagBaud   = "baud"
	flagFormat = "format"
	flagStrict = "strict"

	envBoard = "PORTMAP_BOARD"
)

func newApp(stdout, stderr io.Writer, newLogger func(debug bool) *zap.Logger) *cli.App {
	logger := zap.NewNop()
	def := bringup.DefaultParams()

	return &cli.App{
		Name:      "portsinfo",
		Usage:     "inspect board port descriptor tables",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagBoard,
				Aliases: []string{"b"},
				EnvVars: []string{envBoard},
				Value:   boards.Selected(),
				Usage:   "board `NAME` to inspect",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
			&cli.UintFlag{Name: flagSPIHz, Value: uint(def.SPIHz), Usage: "SPI clock for bring-up"},
			&cli.UintFlag{Name: flagI2CHz, Value: uint(def.I2CHz), Usage: "I2C clock for bring-up"},
			&cli.UintFlag{Name: flagBaud, Value: uint(def.UARTBaud), Usage: "UART baud rate for bring-up"},
		},
		Before: func(c *cli.Context) error {
			logger = newLogger(c.Bool(flagDebug))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list registered boards",
				Action: listAction,
			},
			{
				Name:  "show",
				Usage: "print every descriptor of the board",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    flagFormat,
						Aliases: []string{"f"},
						Value:   formatTable,
						Usage:   "output `FORMAT`: table, json or yaml",
					},
				},
				Action: showAction,
			},
			{
				Name:  "check",
				Usage: "validate the board tables and report pins shared between descriptors",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: flagStrict, Usage: "treat shared pins as errors"},
				},
				Action: checkAction,
			},
			{
				Name:      "lookup",
				Usage:     "print one descriptor",
				ArgsUsage: "<spi|uart|i2c|debug> <index>",
				Action:    lookupAction,
			},
			{
				Name:  "bringup",
				Usage: "run the bring-up sequence on this build's platform backend",
				Action: func(c *cli.Context) error {
					return bringupAction(c, logger)
				},
			},
		},
	}
}

func openBoard(c *cli.Context) (*ports.Registry, error) {
	return boards.Open(c.String(flagBoard))
}

func listAction(c *cli.Context) error {
	sel := c.String(flagBoard)
	for _, name := range boards.Names() {
		p, _ := boards.Lookup(name)
		mark := " "
		if name == sel {
			mark = "*"
		}
		d := p.Describe()
		family := "-"
		if d.Family != nil {
			family = d.Family.Name
		}
		if _, err := c.App.Writer.Write([]byte(mark + " " + name + " (" + family + ")\n")); err != nil {
			return err
		}
	}
	return nil
}

func showAction(c *cli.Context) error {
	r, err := openBoard(c)
	if err != nil {
		return err
	}
	return render(c.App.Writer, c.String(flagFormat), r.Snapshot())
}

func checkAction(c *cli.Context) error {
	name := c.String(flagBoard)
	r, err := boards.Open(name)
	if errcode.Of(err) == errcode.UnknownBoard {
		return err
	}
	if err != nil {
		for _, e := range multierr.Errors(errors.Cause(err)) {
			printError(c.App.Writer, "%s: %v", errcode.Of(e), e)
		}
		return errors.Errorf("board %q failed validation", name)
	}
	shared := r.SharedPins()
	warn := fcolor.New(fcolor.FgYellow)
	for _, s := range shared {
		uses := lo.Map(s.Uses, func(u ports.Use, _ int) string { return u.String() })
		warn.Fprintf(c.App.Writer, "! %s shared by %v\n", s.Pin, uses)
	}
	if c.Bool(flagStrict) && len(shared) > 0 {
		return &errcode.E{C: errcode.PinAliased, Op: "check", Msg: "board " + name + " shares pins between descriptors"}
	}
	fcolor.New(fcolor.FgGreen).Fprintf(c.App.Writer, "✓ %s: %d spi, %d uart, %d i2c, %d debug\n",
		name, r.SPICount(), r.UARTCount(), r.I2CCount(), r.DebugPinCount())
	return nil
}

func lookupAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("usage: lookup <spi|uart|i2c|debug> <index>")
	}
	r, err := openBoard(c)
	if err != nil {
		return err
	}
	i, err := parseIndex(c.Args().Get(1))
	if err != nil {
		return err
	}
	return renderDescriptor(c.App.Writer, r, c.Args().Get(0), i)
}

func bringupAction(c *cli.Context, logger *zap.Logger) error {
	r, err := openBoard(c)
	if err != nil {
		return err
	}
	prm, err := paramsFrom(c)
	if err != nil {
		return err
	}
	pf := bringup.DefaultPlatform(r.Family())
	b, err := bringup.InitAll(context.Background(), r, pf, bringup.Config{Params: prm, Logger: logger})
	if err != nil {
		return errors.Wrap(err, "bring-up")
	}
	fcolor.New(fcolor.FgGreen).Fprintf(c.App.Writer, "✓ %s: %d spi, %d uart, %d i2c, %d debug up\n",
		r.Name(), len(b.SPI), len(b.UART), len(b.I2C), len(b.Debug))
	return nil
}

func paramsFrom(c *cli.Context) (bringup.Params, error) {
	var prm bringup.Params
	for _, f := range []struct {
		name string
		dst  *uint32
	}{
		{flagSPIHz, &prm.SPIHz},
		{flagI2CHz, &prm.I2CHz},
		{flagBaud, &prm.UARTBaud},
	} {
		v := c.Uint(f.name)
		if v == 0 || v > math.MaxUint32 {
			return prm, errors.Errorf("--%s out of range: %d", f.name, v)
		}
		*f.dst = uint32(v)
	}
	return prm, nil
}
