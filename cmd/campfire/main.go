package main

import (
	"flag"
	"runtime"

	"forgelight/internal/app"
	"forgelight/internal/logging"
	"forgelight/internal/scenes/campfire"

	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "forgelight.toml", "path to the TOML config file")
	seed := flag.Uint64("seed", 1, "seed for stone placement and fire particles")
	flag.Parse()

	defer closer.Close()
	closer.Bind(func() {
		logging.Info("campfire stopped")
	})

	if err := app.Launch(*configPath, campfire.New(*seed)); err != nil {
		logging.Fatal("campfire failed", "err", err)
	}
}
