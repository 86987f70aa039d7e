package main

import (
	"flag"
	"runtime"

	"forgelight/internal/app"
	"forgelight/internal/logging"
	"forgelight/internal/scenes/pickagram"

	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "forgelight.toml", "path to the TOML config file")
	flag.Parse()

	defer closer.Close()
	closer.Bind(func() {
		logging.Info("pickagram stopped")
	})

	if err := app.Launch(*configPath, pickagram.New()); err != nil {
		logging.Fatal("pickagram failed", "err", err)
	}
}
