package editor

import (
	"map-editor/math"
	"map-editor/scene"
)

// Handle geometry in pixels at scale factor 1.
const (
	gizmoHalfWidth    = 2
	gizmoArmLength    = 40
	gizmoPlaneLength  = 12
	gizmoMinHalfWidth = 0.5

	// gizmoFadeMax bounds the hover counter; a handle shows as highlighted
	// once the counter passes gizmoFadeVisible.
	gizmoFadeMax     = 6
	gizmoFadeVisible = 3
)

// gizmoOwner is the selection a gizmo belongs to.
type gizmoOwner interface {
	State() TransformState
	RotationAxis() math.Axis
}

type handleBox struct {
	lo, hi     math.Vec3
	constraint AxisConstraint
}

func (b handleBox) intersect(ray PickRay) Hit {
	return IntersectBox(ray, b.lo, b.hi)
}

// TransformGizmo is the manipulator drawn at the selection center: three
// axis arms and three plane squares. Its boxes are rebuilt from the view
// scale factor on every query so it keeps a constant size on screen.
type TransformGizmo struct {
	arena    *scene.Arena
	owner    gizmoOwner
	selected bool

	Origin scene.PointID

	coarse     handleBox
	axisBoxes  [3]handleBox
	planeBoxes [3]handleBox

	frameCount  int
	highlight   AxisConstraint
	lastPick    AxisConstraint
	hasLastPick bool
}

func NewTransformGizmo(arena *scene.Arena, owner gizmoOwner, pos math.Vec3) *TransformGizmo {
	return &TransformGizmo{
		arena:  arena,
		owner:  owner,
		Origin: arena.NewPoint(pos),
	}
}

// Position is the visible origin, including any drag displacement.
func (g *TransformGizmo) Position() math.Vec3 { return g.arena.Pos(g.Origin) }

func (g *TransformGizmo) SetOrigin(pos math.Vec3) {
	g.arena.Point(g.Origin).Set(pos)
}

// SetTransformDisplacement moves the origin with a translate drag.
func (g *TransformGizmo) SetTransformDisplacement(d math.Vec3) {
	g.arena.Point(g.Origin).SetTempTranslation(d)
}

// Release frees the origin slot. The gizmo must not be used afterwards.
func (g *TransformGizmo) Release() {
	_ = g.arena.ReleasePoint(g.Origin)
}

func (g *TransformGizmo) FrameCount() int { return g.frameCount }

// Highlight names the handle under the cursor or in use.
func (g *TransformGizmo) Highlight() AxisConstraint { return g.highlight }

// Highlighted reports whether the highlight should be drawn.
func (g *TransformGizmo) Highlighted() bool {
	return g.frameCount > gizmoFadeVisible || g.IsTransforming()
}

// LastPick is the constraint of the most recent successful Pick.
func (g *TransformGizmo) LastPick() (AxisConstraint, bool) {
	return g.lastPick, g.hasLastPick
}

func (g *TransformGizmo) rebuildCoarse(scale float32) {
	o := g.Position()
	arm := gizmoArmLength * scale
	hw := max(gizmoHalfWidth*scale, gizmoMinHalfWidth)
	g.coarse = handleBox{
		lo:         math.NewVec3(o.X-hw, o.Y-hw, o.Z-hw),
		hi:         math.NewVec3(o.X+arm, o.Y+arm, o.Z+arm),
		constraint: Unconstrained,
	}
}

func (g *TransformGizmo) rebuildHandles(scale float32) {
	o := g.Position()
	arm := gizmoArmLength * scale
	plane := gizmoPlaneLength * scale
	hw := max(gizmoHalfWidth*scale, gizmoMinHalfWidth)

	g.axisBoxes = [3]handleBox{
		{
			lo:         math.NewVec3(o.X+hw, o.Y-hw, o.Z-hw),
			hi:         math.NewVec3(o.X+arm, o.Y+hw, o.Z+hw),
			constraint: NewAxisConstraint(true, false, false),
		},
		{
			lo:         math.NewVec3(o.X-hw, o.Y+hw, o.Z-hw),
			hi:         math.NewVec3(o.X+hw, o.Y+arm, o.Z+hw),
			constraint: NewAxisConstraint(false, true, false),
		},
		{
			lo:         math.NewVec3(o.X-hw, o.Y-hw, o.Z+hw),
			hi:         math.NewVec3(o.X+hw, o.Y+hw, o.Z+arm),
			constraint: NewAxisConstraint(false, false, true),
		},
	}
	g.planeBoxes = [3]handleBox{
		{
			lo:         math.NewVec3(o.X+hw, o.Y+hw, o.Z-hw),
			hi:         math.NewVec3(o.X+plane, o.Y+plane, o.Z+hw),
			constraint: NewAxisConstraint(true, true, false),
		},
		{
			lo:         math.NewVec3(o.X-hw, o.Y+hw, o.Z+hw),
			hi:         math.NewVec3(o.X+hw, o.Y+plane, o.Z+plane),
			constraint: NewAxisConstraint(false, true, true),
		},
		{
			lo:         math.NewVec3(o.X+hw, o.Y-hw, o.Z+hw),
			hi:         math.NewVec3(o.X+plane, o.Y+hw, o.Z+plane),
			constraint: NewAxisConstraint(true, false, true),
		},
	}
}

// closestHandle returns the nearest hit among boxes whose constraint does
// not involve the axis an orthographic view looks along.
func closestHandle(ray PickRay, view Viewport, boxes []handleBox) (Hit, AxisConstraint) {
	fixed, hasFixed := math.Axis(0), false
	if view != nil {
		fixed, hasFixed = view.Type().FixedAxis()
	}

	best := MissHit()
	var bestConstraint AxisConstraint
	for _, b := range boxes {
		if hasFixed && b.constraint.Allows(fixed) {
			continue
		}
		h := b.intersect(ray)
		if !h.Missed() && h.Dist < best.Dist {
			best, bestConstraint = h, b.constraint
		}
	}
	return best, bestConstraint
}

// handleHit tests axis arms first and plane squares only when every arm
// misses.
func (g *TransformGizmo) handleHit(ray PickRay, view Viewport) (Hit, AxisConstraint) {
	if h, c := closestHandle(ray, view, g.axisBoxes[:]); !h.Missed() {
		return h, c
	}
	return closestHandle(ray, view, g.planeBoxes[:])
}

// Pick returns a hit whose Obj is the AxisConstraint of the grabbed handle.
func (g *TransformGizmo) Pick(ray PickRay, view Viewport, scale float32) Hit {
	g.rebuildCoarse(scale)
	if g.coarse.intersect(ray).Missed() {
		return MissHit()
	}
	g.rebuildHandles(scale)

	g.highlight = AxisConstraint{}
	h, c := g.handleHit(ray, view)
	if h.Missed() {
		return h
	}
	g.highlight = c
	g.lastPick, g.hasLastPick = c, true
	h.Obj = c
	return h
}

// Test updates hover state only. While the owner is transforming it shows
// the handle in use instead of testing the ray.
func (g *TransformGizmo) Test(ray PickRay, view Viewport, scale float32) {
	if g.owner != nil && g.owner.State() != StateIdle {
		g.showActive()
		return
	}

	g.frameCount = math.Clamp(g.frameCount, 0, gizmoFadeMax)
	g.highlight = AxisConstraint{}

	g.rebuildCoarse(scale)
	if g.coarse.intersect(ray).Missed() {
		g.frameCount--
		return
	}
	g.rebuildHandles(scale)

	h, c := g.handleHit(ray, view)
	if h.Missed() {
		g.frameCount--
		return
	}
	g.highlight = c
	g.frameCount++
}

func (g *TransformGizmo) showActive() {
	switch state := g.owner.State(); {
	case state == StateRotate:
		axis := g.owner.RotationAxis()
		g.highlight = NewAxisConstraint(axis == math.AxisX, axis == math.AxisY, axis == math.AxisZ)
		g.frameCount = gizmoFadeMax
	case (state == StateTranslate || state == StateScale) && g.hasLastPick:
		g.highlight = g.lastPick
		g.frameCount = gizmoFadeMax
	default:
		g.highlight = AxisConstraint{}
		g.frameCount = 0
	}
}

// forgetPick drops the remembered constraint once a gesture no longer
// uses it.
func (g *TransformGizmo) forgetPick() {
	g.hasLastPick = false
}

func (g *TransformGizmo) AddTo(*scene.BoundingBox) {}
func (g *TransformGizmo) RecalculateAABB()         {}
func (g *TransformGizmo) Transforms() bool         { return true }

func (g *TransformGizmo) IsTransforming() bool {
	return g.arena.Point(g.Origin).IsTransforming()
}

func (g *TransformGizmo) StartTransformation() { g.arena.Point(g.Origin).StartTransform() }
func (g *TransformGizmo) EndTransformation()   { g.arena.Point(g.Origin).EndTransform() }

func (g *TransformGizmo) AllowRotation(math.Axis) bool  { return false }
func (g *TransformGizmo) AddPoints(set *scene.PointSet) { set.Add(g.Origin) }
func (g *TransformGizmo) AddAngles(*scene.AngleSet)     {}
func (g *TransformGizmo) IsSelected() bool              { return g.selected }
func (g *TransformGizmo) SetSelected(selected bool)     { g.selected = selected }

func (g *TransformGizmo) CreateTransformer(math.Mat4) scene.Transformer { return nil }
