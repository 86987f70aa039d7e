package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical viewer action, not a physical key
type Action int

const (
	ActionOrbit Action = iota
	ActionSwitchCamera
	ActionToggleProjection
	ActionAnimateForward
	ActionAnimateBackward
	ActionAnimateStop
	ActionPiece1
	ActionPiece2
	ActionPiece3
	ActionPiece4
	ActionPiece5
	ActionPiece6
	ActionPiece7
	ActionReloadShaders
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

// PieceActions lists the per-piece toggles in piece order
var PieceActions = [...]Action{
	ActionPiece1, ActionPiece2, ActionPiece3, ActionPiece4,
	ActionPiece5, ActionPiece6, ActionPiece7,
}

// InputManager maps physical keys and buttons to logical actions and
// accumulates pointer motion between frames
type InputManager struct {
	mu sync.RWMutex

	// Key to action mapping (one key can map to multiple actions)
	keyToActions map[glfw.Key][]Action

	// Mouse button to action mapping
	mouseButtonToActions map[glfw.MouseButton][]Action

	// Current frame state (indexed by Action)
	currentState [ActionCount]bool

	// Just pressed/released flags (reset each frame)
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	// Pointer state
	cursorX, cursorY float64
	haveCursor       bool
	deltaX, deltaY   float64
	scrollX, scrollY float64
}

// NewInputManager creates a new InputManager with default bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	im.BindKey(glfw.KeyC, ActionSwitchCamera)
	im.BindKey(glfw.KeyP, ActionToggleProjection)
	im.BindKey(glfw.KeyRight, ActionAnimateForward)
	im.BindKey(glfw.KeyLeft, ActionAnimateBackward)
	im.BindKey(glfw.KeyDown, ActionAnimateStop)
	im.BindKey(glfw.KeyR, ActionReloadShaders)
	im.BindKey(glfw.KeyEscape, ActionQuit)
	for i, a := range PieceActions {
		im.BindKey(glfw.Key1+glfw.Key(i), a)
	}

	im.BindMouseButton(glfw.MouseButtonRight, ActionOrbit)

	return im
}

// BindKey binds a physical key to a logical action
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// BindMouseButton binds a mouse button to a logical action
func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

// HandleKeyEvent processes a key event and updates internal state
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, exists := im.keyToActions[key]
	if !exists {
		return
	}
	im.apply(actions, action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButtonEvent processes a mouse button event and updates internal state
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, exists := im.mouseButtonToActions[button]
	if !exists {
		return
	}
	im.apply(actions, action == glfw.Press)
}

func (im *InputManager) apply(actions []Action, isPressed bool) {
	for _, act := range actions {
		// Detect edges immediately when event arrives
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !isPressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// HandleCursorPos records a cursor position. Motion is accumulated into the
// frame delta; the first sample only establishes the reference point.
func (im *InputManager) HandleCursorPos(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.haveCursor {
		im.deltaX += x - im.cursorX
		im.deltaY += y - im.cursorY
	}
	im.cursorX, im.cursorY = x, y
	im.haveCursor = true
}

// HandleScroll accumulates wheel offsets for the frame
func (im *InputManager) HandleScroll(xoff, yoff float64) {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.scrollX += xoff
	im.scrollY += yoff
}

// SetCallbacks installs the GLFW key, button, cursor and scroll callbacks
func (im *InputManager) SetCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		im.HandleCursorPos(x, y)
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		im.HandleScroll(xoff, yoff)
	})
}

// PostUpdate must be called at the end of each frame. It clears edge flags
// and the accumulated pointer deltas.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	for i := range ActionCount {
		im.justPressed[i] = false
		im.justReleased[i] = false
	}
	im.deltaX, im.deltaY = 0, 0
	im.scrollX, im.scrollY = 0, 0
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justReleased[action]
}

// CursorDelta returns the cursor motion accumulated this frame
func (im *InputManager) CursorDelta() (dx, dy float64) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.deltaX, im.deltaY
}

// ScrollDelta returns the wheel offsets accumulated this frame
func (im *InputManager) ScrollDelta() (dx, dy float64) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.scrollX, im.scrollY
}
