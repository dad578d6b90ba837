package editor

import (
	"fmt"

	"map-editor/config"
	"map-editor/core"
	"map-editor/math"
	"map-editor/scene"
)

// EditorMode selects what a click picks.
type EditorMode int

const (
	ModeObject EditorMode = iota
	ModeEdit
)

func (m EditorMode) String() string {
	if m == ModeEdit {
		return "Edit"
	}
	return "Object"
}

// TransformTool is the gesture a gizmo drag starts.
type TransformTool int

const (
	ToolSelect TransformTool = iota
	ToolTranslate
	ToolRotate
	ToolScale
)

func (t TransformTool) String() string {
	switch t {
	case ToolTranslate:
		return "Move"
	case ToolRotate:
		return "Rotate"
	case ToolScale:
		return "Scale"
	}
	return "Select"
}

// markerPickScale is the marker size passed to map raycasts.
const markerPickScale = 1

// transformTarget is the part of a Selection the editor drives without
// knowing its item type.
type transformTarget interface {
	State() TransformState
	IsEmpty() bool
	Center() math.Vec3
	Message() string
	SetConstraint(c AxisConstraint)
	Constraint() AxisConstraint

	TestGizmo(ray PickRay, view Viewport)
	PickGizmo(ray PickRay, view Viewport) Hit

	StartTranslation(reference *math.Vec3, immediate bool)
	UpdateTranslation(view Viewport, displacement math.Vec3, rawDx, rawDy float32, candidates []math.Vec3)
	StartRotation(axis math.Axis, clickPoint math.Vec3)
	UpdateRotation(view Viewport, point math.Vec3)
	StartScale(clickPoint *math.Vec3, uniform bool)
	UpdateScale(view Viewport, displacement math.Vec3)
	EndTransform()

	NudgeAlong(direction math.Vec3)
	SnapToGrid()
	Clear()
}

var (
	_ transformTarget = (*Selection[*scene.MapObject])(nil)
	_ transformTarget = (*Selection[*scene.Vertex])(nil)
)

// Editor routes host input to the object and vertex selections. The host
// feeds events into Input and calls Update once per frame with the view
// under the cursor.
type Editor struct {
	Mode       EditorMode
	ActiveTool TransformTool

	Objects  *Selection[*scene.MapObject]
	Vertices *Selection[*scene.Vertex]

	History *History
	Input   *InputManager
	Frames  *core.FrameCounter
	Context *Context
	Map     *scene.Map

	// Status info
	StatusText string

	// Set while a gizmo drag is in progress.
	dragging  bool
	dragAxis  math.Axis
	dragPlane math.Vec3

	// A keyboard axis lock overrides the grabbed handle for one gesture.
	lock   AxisConstraint
	locked bool
}

// NewEditor initializes a new editor instance
func NewEditor(m *scene.Map, prefs config.Preferences) *Editor {
	history := NewHistory(100)
	frames := core.NewFrameCounter()
	ctx := NewContext(m.Arena, history, frames)
	ctx.Prefs = &prefs

	e := &Editor{
		Mode:       ModeObject,
		ActiveTool: ToolTranslate,
		Objects:    NewSelection[*scene.MapObject](ctx),
		Vertices:   NewSelection[*scene.Vertex](ctx),
		History:    history,
		Input:      NewInputManager(),
		Frames:     frames,
		Context:    ctx,
		Map:        m,
		StatusText: "Ready",
	}
	ctx.OnStatus = func(status string) { e.StatusText = status }
	return e
}

// Active is the selection the current mode edits.
func (e *Editor) Active() transformTarget {
	if e.Mode == ModeEdit {
		return e.Vertices
	}
	return e.Objects
}

// SetPreferences swaps the live preferences, for example after the
// preferences file changed on disk.
func (e *Editor) SetPreferences(prefs config.Preferences) {
	*e.Context.Prefs = prefs
	core.SetLogLevel(prefs.LogLevel)
}

// Update processes one frame of editor logic
func (e *Editor) Update(view ScreenView) {
	e.Input.Update()
	e.Frames.Advance()

	e.handleShortcuts()
	if view != nil {
		e.handleMouse(view)
	}
	if e.Mode == ModeEdit && e.Vertices.State() == StateIdle {
		e.refreshObjectBounds()
	}
}

// refreshObjectBounds keeps the bounds of edited objects in step with
// their vertices.
func (e *Editor) refreshObjectBounds() {
	for _, o := range e.Objects.Items() {
		o.RecalculateAABB()
	}
}

func (e *Editor) handleShortcuts() {
	sel := e.Active()

	// Undo: Ctrl+Z
	if e.Input.IsShortcut(KeyZ) && !e.Input.ShiftDown {
		if sel.State() == StateIdle && e.History.Undo() {
			e.StatusText = "Undo"
		}
		return
	}

	// Redo: Ctrl+Shift+Z
	if e.Input.IsShiftShortcut(KeyZ) {
		if sel.State() == StateIdle && e.History.Redo() {
			e.StatusText = "Redo"
		}
		return
	}

	if e.Input.IsKeyPressed(KeyEscape) {
		sel.EndTransform()
		e.dragging = false
		e.locked = false
	}

	if e.Input.IsKeyPressed(KeyDelete) && e.Mode == ModeObject {
		e.deleteSelected()
	}

	// Transform tool shortcuts
	if e.Input.IsKeyPressed(KeyG) {
		e.setTool(ToolTranslate)
	}
	if e.Input.IsKeyPressed(KeyR) && !e.Input.CtrlDown {
		e.setTool(ToolRotate)
	}
	if e.Input.IsKeyPressed(KeyS) && !e.Input.CtrlDown {
		e.setTool(ToolScale)
	}

	// Toggle edit mode: Tab
	if e.Input.IsKeyPressed(KeyTab) && sel.State() == StateIdle {
		e.toggleMode()
	}

	// Axis locks
	if !e.Input.CtrlDown {
		switch {
		case e.Input.IsKeyPressed(KeyX):
			e.lockAxis(math.AxisX)
		case e.Input.IsKeyPressed(KeyY):
			e.lockAxis(math.AxisY)
		case e.Input.IsKeyPressed(KeyZ):
			e.lockAxis(math.AxisZ)
		}
	}

	if e.Input.IsKeyPressed(KeyK) {
		sel.SnapToGrid()
	}

	e.handleNudge(sel)
}

func (e *Editor) setTool(tool TransformTool) {
	e.ActiveTool = tool
	e.StatusText = "Tool: " + tool.String()
}

func (e *Editor) lockAxis(axis math.Axis) {
	sel := e.Active()
	if sel.State() != StateIdle {
		return
	}
	e.lock = NewAxisConstraint(axis == math.AxisX, axis == math.AxisY, axis == math.AxisZ)
	e.locked = true
	e.StatusText = "Constraint: " + e.lock.String()
}

func (e *Editor) toggleMode() {
	if e.Mode == ModeObject {
		if e.Objects.IsEmpty() {
			e.StatusText = "Select an object to edit"
			return
		}
		e.Mode = ModeEdit
		e.StatusText = "Edit Mode (Vertex)"
		return
	}
	e.Vertices.Clear()
	e.Mode = ModeObject
	e.StatusText = "Object Mode"
}

var nudgeKeys = []struct {
	key Key
	dir math.Vec3
}{
	{KeyLeft, math.NewVec3(-1, 0, 0)},
	{KeyRight, math.NewVec3(1, 0, 0)},
	{KeyUp, math.NewVec3(0, 0, -1)},
	{KeyDown, math.NewVec3(0, 0, 1)},
	{KeyPageUp, math.NewVec3(0, 1, 0)},
	{KeyPageDown, math.NewVec3(0, -1, 0)},
}

func (e *Editor) handleNudge(sel transformTarget) {
	if sel.IsEmpty() || sel.State() != StateIdle {
		return
	}
	for _, n := range nudgeKeys {
		if e.Input.IsKeyPressed(n.key) {
			sel.NudgeAlong(n.dir)
		}
	}
}

func (e *Editor) handleMouse(view ScreenView) {
	sel := e.Active()
	ray := view.ScreenRay(e.Input.MouseX, e.Input.MouseY)

	switch {
	case e.Input.IsMousePressed(MouseLeft):
		e.press(sel, view, ray)
	case e.dragging && e.Input.IsMouseDown(MouseLeft):
		e.drag(sel, view, ray)
	case e.dragging && e.Input.IsMouseReleased(MouseLeft):
		sel.EndTransform()
		e.dragging = false
	default:
		sel.TestGizmo(ray, view)
	}
}

// press starts a gesture when the gizmo is grabbed and picks from the map
// otherwise.
func (e *Editor) press(sel transformTarget, view ScreenView, ray PickRay) {
	if e.ActiveTool != ToolSelect && !sel.IsEmpty() {
		if h := sel.PickGizmo(ray, view); !h.Missed() {
			if e.locked {
				sel.SetConstraint(e.lock)
				e.locked = false
			}
			e.startGesture(sel, view, h)
			return
		}
	}
	e.pick(ray)
}

func (e *Editor) startGesture(sel transformTarget, view ScreenView, h Hit) {
	c := sel.Constraint()
	switch e.ActiveTool {
	case ToolTranslate:
		ref := e.snapReference(h.Point)
		sel.StartTranslation(&ref, false)
	case ToolRotate:
		axis := rotationAxis(c, view)
		e.dragAxis = axis
		e.dragPlane = sel.Center()
		sel.StartRotation(axis, h.Point)
	case ToolScale:
		click := h.Point
		sel.StartScale(&click, c.Count() == 3)
	default:
		return
	}
	e.dragging = sel.State() != StateIdle
}

// snapReference is the position vertex snapping measures from: the most
// recently selected vertex in edit mode, the grabbed point otherwise.
func (e *Editor) snapReference(grab math.Vec3) math.Vec3 {
	if e.Mode == ModeEdit {
		if v, ok := e.Vertices.MostRecent(); ok {
			return v.Position()
		}
	}
	return grab
}

// rotationAxis is the single allowed axis of c, else the axis the view
// looks along, else Y.
func rotationAxis(c AxisConstraint, view Viewport) math.Axis {
	if c.Count() == 1 {
		for _, axis := range math.Axes {
			if c.Allows(axis) {
				return axis
			}
		}
	}
	if view != nil {
		if axis, ok := view.Type().FixedAxis(); ok {
			return axis
		}
	}
	return math.AxisY
}

func (e *Editor) drag(sel transformTarget, view ScreenView, ray PickRay) {
	dx, dy := e.Input.MouseDeltaX, e.Input.MouseDeltaY
	switch sel.State() {
	case StateTranslate:
		var candidates []math.Vec3
		if e.Context.prefs().SnapVertices {
			candidates = e.Map.VertexPositions()
		}
		sel.UpdateTranslation(view, view.ScreenToWorld(dx, dy), dx, dy, candidates)
	case StateRotate:
		if p, ok := planePoint(ray, e.dragAxis, e.dragPlane); ok {
			sel.UpdateRotation(view, p)
		}
	case StateScale:
		sel.UpdateScale(view, view.ScreenToWorld(dx, dy))
	default:
		e.dragging = false
	}
}

// planePoint intersects the ray with the plane through pivot normal to
// axis.
func planePoint(ray PickRay, axis math.Axis, pivot math.Vec3) (math.Vec3, bool) {
	denom := ray.Direction.Get(axis)
	if math.Abs(denom) < 1e-6 {
		return math.Vec3{}, false
	}
	t := (pivot.Get(axis) - ray.Origin.Get(axis)) / denom
	return ray.Origin.Add(ray.Direction.Mul(t)), true
}

// pick selects what the ray hits in the current mode. Shift toggles the
// hit item; a plain click on nothing clears the selection.
func (e *Editor) pick(ray PickRay) {
	toggle := e.Input.ShiftDown
	if e.Mode == ModeEdit {
		e.pickVertex(ray, toggle)
		return
	}

	h := RaycastMap(ray, e.Map, markerPickScale)
	obj, ok := h.Obj.(*scene.MapObject)
	if !ok {
		if !toggle {
			e.Objects.Clear()
			e.StatusText = "Selection cleared"
		}
		return
	}
	e.StatusText = fmt.Sprintf("Selected: %s", obj.Name)
	switch {
	case toggle && obj.IsSelected():
		e.Objects.RemoveAndDeselect(obj)
	case toggle:
		e.Objects.AddAndSelect(obj)
	default:
		e.Objects.Clear()
		e.Objects.AddAndSelect(obj)
	}
}

// pickVertex picks among the vertices of the selected objects.
func (e *Editor) pickVertex(ray PickRay, toggle bool) {
	closest := MissHit()
	var picked *scene.Vertex
	for _, obj := range e.Objects.Items() {
		for _, v := range obj.Vertices {
			if h := IntersectPoint(ray, v.Position(), markerPickScale); !h.Missed() && h.Dist < closest.Dist {
				closest, picked = h, v
			}
		}
	}

	if picked == nil {
		if !toggle {
			e.Vertices.Clear()
		}
		return
	}
	switch {
	case toggle && picked.IsSelected():
		e.Vertices.RemoveAndDeselect(picked)
	case toggle:
		e.Vertices.AddAndSelect(picked)
	default:
		e.Vertices.Clear()
		e.Vertices.AddAndSelect(picked)
	}
}

func (e *Editor) deleteSelected() {
	if e.Objects.IsEmpty() || e.Objects.State() != StateIdle {
		return
	}
	objs := append([]*scene.MapObject(nil), e.Objects.Items()...)
	e.Objects.Clear()
	e.History.Do(NewDeleteObjectsCommand(e.Map, objs))
	e.StatusText = "Deleted"
}

// GetStats returns map statistics for the status bar
func (e *Editor) GetStats() (objectCount, vertexCount, faceCount int) {
	for _, o := range e.Map.Objects {
		objectCount++
		vertexCount += len(o.Vertices)
		faceCount += len(o.Triangles)
	}
	return
}
