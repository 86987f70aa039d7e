package app

import (
	"forgelight/internal/config"
	"forgelight/internal/input"
	"forgelight/internal/logging"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// Launch loads the configuration, opens the window and runs v until the
// window closes. It must be called from the main OS thread.
func Launch(configPath string, v Variant) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		logging.Warn("unknown log level, keeping info", "level", cfg.Log.Level)
	}

	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "init glfw")
	}
	defer glfw.Terminate()

	if cfg.Window.Title == config.Default().Window.Title {
		cfg.Window.Title = cfg.Window.Title + " - " + v.Name()
	}
	window, err := SetupWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	a, err := New(window, input.NewInputManager(), cfg, v)
	if err != nil {
		return err
	}
	defer a.Dispose()

	a.Run()
	return nil
}
