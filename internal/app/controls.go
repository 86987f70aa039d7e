package app

import (
	"forgelight/internal/input"
)

// Command reports what the controls changed this frame
type Command struct {
	ViewChanged       bool
	ProjectionChanged bool
	Reload            bool
	Quit              bool
}

// HandleControls applies the shared camera controls to the active camera.
// Right drag orbits, the wheel zooms, C switches camera and P toggles the
// projection.
func HandleControls(ctx *Context, im *input.InputManager) Command {
	var cmd Command
	cfg := ctx.Config.Camera

	if im.JustPressed(input.ActionSwitchCamera) && ctx.Cameras.Len() > 0 {
		ctx.Cameras.Next()
		cmd.ViewChanged = true
		cmd.ProjectionChanged = true
	}

	cam := ctx.Camera()
	if cam != nil {
		if im.IsActive(input.ActionOrbit) {
			dx, dy := im.CursorDelta()
			if dx != 0 || dy != 0 {
				s := cfg.RotateSensitivity
				cam.Rotate(-float32(dx)*s, -float32(dy)*s)
				cmd.ViewChanged = true
			}
		}

		if _, dy := im.ScrollDelta(); dy != 0 {
			cam.Zoom(-float32(dy) * cfg.ZoomStep)
			cmd.ViewChanged = true
		}

		if im.JustPressed(input.ActionToggleProjection) {
			cam.ToggleProjection()
			cmd.ProjectionChanged = true
		}
	}

	cmd.Reload = im.JustPressed(input.ActionReloadShaders)
	cmd.Quit = im.JustPressed(input.ActionQuit)
	return cmd
}
