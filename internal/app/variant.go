package app

import (
	renderer "forgelight/internal/graphics/renderer"
	"forgelight/internal/input"
)

// Variant is one demo built on the shared loop. Setup runs once with a
// current GL context and returns the render passes in draw order.
type Variant interface {
	Name() string
	Setup(ctx *Context) ([]renderer.Renderable, error)
	Update(ctx *Context, im *input.InputManager, dt float64)
	Dispose()
}
