package editor

// Key identifies a keyboard key known to the editor.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyTab
	KeyDelete
	KeyG
	KeyR
	KeyS
	KeyX
	KeyY
	KeyZ
	KeyK
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt

	keyCount
)

// Mouse button constants
const (
	MouseLeft   = 0
	MouseRight  = 1
	MouseMiddle = 2
)

// InputManager tracks mouse and keyboard state for the editor. The host
// reports events as they arrive and calls Update once per frame; queries
// then answer for that frame.
type InputManager struct {
	// Mouse state
	MouseX, MouseY           float32
	MouseDeltaX, MouseDeltaY float32
	lastMouseX, lastMouseY   float32
	ScrollDelta              float32

	// Button states
	mouseButtons     [8]bool
	mouseButtonsPrev [8]bool
	mouseButtonsNext [8]bool

	// Key states
	keys     [keyCount]bool
	keysPrev [keyCount]bool
	keysNext [keyCount]bool

	// Modifiers
	ShiftDown bool
	CtrlDown  bool
	AltDown   bool

	cursorX, cursorY float32
	scroll           float32
	firstFrame       bool
}

// NewInputManager creates an input manager with nothing pressed
func NewInputManager() *InputManager {
	return &InputManager{firstFrame: true}
}

// --- Events ---

func (im *InputManager) MoveCursor(x, y float32) {
	im.cursorX, im.cursorY = x, y
}

func (im *InputManager) SetMouseButton(button int, down bool) {
	if button < 0 || button >= len(im.mouseButtonsNext) {
		return
	}
	im.mouseButtonsNext[button] = down
}

func (im *InputManager) SetKey(key Key, down bool) {
	if key <= KeyUnknown || key >= keyCount {
		return
	}
	im.keysNext[key] = down
}

func (im *InputManager) Scroll(yoff float32) {
	im.scroll += yoff
}

// Update should be called once per frame to compute deltas and edges
func (im *InputManager) Update() {
	x, y := im.cursorX, im.cursorY
	if im.firstFrame {
		im.lastMouseX = x
		im.lastMouseY = y
		im.firstFrame = false
	}
	im.MouseDeltaX = x - im.lastMouseX
	im.MouseDeltaY = y - im.lastMouseY
	im.lastMouseX = x
	im.lastMouseY = y
	im.MouseX = x
	im.MouseY = y

	im.ScrollDelta = im.scroll
	im.scroll = 0

	// Save previous states
	im.mouseButtonsPrev = im.mouseButtons
	im.keysPrev = im.keys
	im.mouseButtons = im.mouseButtonsNext
	im.keys = im.keysNext

	im.ShiftDown = im.keys[KeyLeftShift] || im.keys[KeyRightShift]
	im.CtrlDown = im.keys[KeyLeftControl] || im.keys[KeyRightControl]
	im.AltDown = im.keys[KeyLeftAlt] || im.keys[KeyRightAlt]
}

// --- Mouse Queries ---

func (im *InputManager) IsMouseDown(button int) bool {
	if button < 0 || button >= len(im.mouseButtons) {
		return false
	}
	return im.mouseButtons[button]
}

func (im *InputManager) IsMousePressed(button int) bool {
	if button < 0 || button >= len(im.mouseButtons) {
		return false
	}
	return im.mouseButtons[button] && !im.mouseButtonsPrev[button]
}

func (im *InputManager) IsMouseReleased(button int) bool {
	if button < 0 || button >= len(im.mouseButtons) {
		return false
	}
	return !im.mouseButtons[button] && im.mouseButtonsPrev[button]
}

// --- Key Queries ---

func (im *InputManager) IsKeyDown(key Key) bool {
	if key <= KeyUnknown || key >= keyCount {
		return false
	}
	return im.keys[key]
}

func (im *InputManager) IsKeyPressed(key Key) bool {
	if key <= KeyUnknown || key >= keyCount {
		return false
	}
	return im.keys[key] && !im.keysPrev[key]
}

// IsShortcut checks for a Ctrl+key press
func (im *InputManager) IsShortcut(key Key) bool {
	return im.CtrlDown && im.IsKeyPressed(key)
}

// IsShiftShortcut checks for Ctrl+Shift+key press
func (im *InputManager) IsShiftShortcut(key Key) bool {
	return im.CtrlDown && im.ShiftDown && im.IsKeyPressed(key)
}
