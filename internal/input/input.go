package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical viewer action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionSprint
	ActionCycleMode
	ActionCycleTechnique
	ActionToggleFallback
	ActionToggleRegionOutline
	ActionScreenshot
	ActionPause
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	ActionMoveForward:         "forward",
	ActionMoveBackward:        "backward",
	ActionMoveLeft:            "left",
	ActionMoveRight:           "right",
	ActionJump:                "jump",
	ActionSprint:              "sprint",
	ActionCycleMode:           "cycle-mode",
	ActionCycleTechnique:      "cycle-technique",
	ActionToggleFallback:      "toggle-fallback",
	ActionToggleRegionOutline: "toggle-region",
	ActionScreenshot:          "screenshot",
	ActionPause:               "pause",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// DefaultBindings maps keys to actions. One key may drive several actions and
// several keys may drive one.
var DefaultBindings = map[glfw.Key][]Action{
	glfw.KeyW:           {ActionMoveForward},
	glfw.KeyUp:          {ActionMoveForward},
	glfw.KeyS:           {ActionMoveBackward},
	glfw.KeyDown:        {ActionMoveBackward},
	glfw.KeyA:           {ActionMoveLeft},
	glfw.KeyLeft:        {ActionMoveLeft},
	glfw.KeyD:           {ActionMoveRight},
	glfw.KeyRight:       {ActionMoveRight},
	glfw.KeySpace:       {ActionJump},
	glfw.KeyLeftControl: {ActionSprint},
	glfw.KeyM:           {ActionCycleMode},
	glfw.KeyT:           {ActionCycleTechnique},
	glfw.KeyH:           {ActionToggleFallback},
	glfw.KeyR:           {ActionToggleRegionOutline},
	glfw.KeyF2:          {ActionScreenshot},
	glfw.KeyEscape:      {ActionPause},
}

// InputManager maps physical keys to logical actions and tracks per-frame edges
type InputManager struct {
	mu sync.RWMutex

	keyToActions map[glfw.Key][]Action

	currentState [ActionCount]bool

	// Just pressed/released flags (reset each frame)
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewInputManager creates a new InputManager with the default bindings
func NewInputManager() *InputManager {
	im := &InputManager{keyToActions: make(map[glfw.Key][]Action)}
	for key, actions := range DefaultBindings {
		for _, a := range actions {
			im.BindKey(key, a)
		}
	}
	return im
}

// BindKey binds a physical key to a logical action
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()
	delete(im.keyToActions, key)
}

// HandleKeyEvent processes a key event and updates internal state.
// Key repeats count as held, not as new presses.
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, exists := im.keyToActions[key]
	if !exists {
		return
	}
	isPressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range actions {
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !isPressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// SetKeyCallback routes the window's key events into the manager
func (im *InputManager) SetKeyCallback(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
}

// PostUpdate must be called at the end of each frame to clear edge flags
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.justPressed = [ActionCount]bool{}
	im.justReleased = [ActionCount]bool{}
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

// Axis returns +1, -1 or 0 from a pair of opposing actions
func (im *InputManager) Axis(positive, negative Action) float32 {
	var v float32
	if im.IsActive(positive) {
		v++
	}
	if im.IsActive(negative) {
		v--
	}
	return v
}
