// Command portsinfo inspects the compiled-in board port tables: it lists the
// registered boards, prints a board's descriptors, validates them and runs
// the bring-up sequence against the platform backend of the build.
package main

import (
	"io"
	"os"

	fcolor "github.com/fatih/color"
	"go.uber.org/zap"

	"portmap-go/x/logx"
)

const errorSymbol = "✗ "

func main() {
	app := newApp(os.Stdout, os.Stderr, func(debug bool) *zap.Logger {
		return logx.New("portsinfo", debug)
	})
	if err := app.Run(os.Args); err != nil {
		printError(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

func printError(w io.Writer, format string, a ...interface{}) {
	fcolor.New(fcolor.FgRed).Fprintf(w, errorSymbol+format+"\n", a...)
}
