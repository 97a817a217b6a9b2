package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"portmap-go/services/hal/boards"
	"portmap-go/services/hal/bringup"
	"portmap-go/x/logx"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	log := logx.NewWriter(os.Stdout, "boot", false)

	reg, err := boards.OpenSelected()
	if err != nil {
		log.Fatal("board tables invalid", zap.String("board", boards.Selected()), zap.Error(err))
	}
	log.Info("board", zap.String("name", reg.Name()), zap.String("family", reg.Family().Name))

	pf := bringup.DefaultPlatform(reg.Family())
	buses, err := bringup.InitAll(context.Background(), reg, pf, bringup.Config{
		Params: bringup.DefaultParams(),
		Logger: log,
	})
	if err != nil {
		log.Fatal("bring-up failed", zap.Error(err))
	}

	// Heartbeat on the primary debug pin.
	trace := buses.Debug[0]
	tick := time.NewTicker(1 * time.Second)
	defer tick.Stop()
	for range tick.C {
		trace.Toggle()
		log.Debug("heartbeat", zap.Bool("level", trace.Get()))
	}
}
