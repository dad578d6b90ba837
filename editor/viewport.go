package editor

import (
	stdmath "math"

	"map-editor/math"
)

// ViewType is the kind of editor viewport.
type ViewType int

const (
	ViewPerspective ViewType = iota
	ViewFront                // XY plane, looking down -Z
	ViewTop                  // XZ plane, looking down -Y
	ViewSide                 // YZ plane, looking down -X
)

func (v ViewType) String() string {
	switch v {
	case ViewFront:
		return "Front"
	case ViewTop:
		return "Top"
	case ViewSide:
		return "Side"
	}
	return "Perspective"
}

func (v ViewType) IsOrthographic() bool {
	return v != ViewPerspective
}

// FixedAxis is the axis perpendicular to an orthographic view.
// ok is false for perspective views.
func (v ViewType) FixedAxis() (axis math.Axis, ok bool) {
	switch v {
	case ViewFront:
		return math.AxisZ, true
	case ViewTop:
		return math.AxisY, true
	case ViewSide:
		return math.AxisX, true
	}
	return 0, false
}

// ProjectionVector masks out the fixed axis of an orthographic view.
func (v ViewType) ProjectionVector() math.Vec3 {
	p := math.Vec3One
	if axis, ok := v.FixedAxis(); ok {
		p.Set(axis, 0)
	}
	return p
}

// Viewport is the view context used by picking and snapping.
type Viewport interface {
	Type() ViewType
	// ScaleFactor converts a pixel size to world units at a position.
	ScaleFactor(x, y, z float32) float32
	// ViewWorldSizeX is the world width visible across the viewport.
	ViewWorldSizeX() float32
}

// OrthographicViewport is one of the three 2D views. Zoom is world units
// per pixel.
type OrthographicViewport struct {
	View          ViewType
	Center        math.Vec3
	Zoom          float32
	Width, Height float32
}

func NewOrthographicViewport(view ViewType, width, height float32) *OrthographicViewport {
	return &OrthographicViewport{View: view, Zoom: 1, Width: width, Height: height}
}

func (o *OrthographicViewport) Type() ViewType { return o.View }

func (o *OrthographicViewport) ScaleFactor(x, y, z float32) float32 {
	return max(2*o.Zoom, 0.275)
}

func (o *OrthographicViewport) ViewWorldSizeX() float32 {
	return o.Zoom * o.Width
}

// basis returns the screen right and up directions and the view direction.
func (o *OrthographicViewport) basis() (right, up, forward math.Vec3) {
	switch o.View {
	case ViewTop:
		return math.Vec3Right, math.NewVec3(0, 0, -1), math.NewVec3(0, -1, 0)
	case ViewSide:
		return math.NewVec3(0, 0, -1), math.Vec3Up, math.NewVec3(-1, 0, 0)
	default:
		return math.Vec3Right, math.Vec3Up, math.NewVec3(0, 0, -1)
	}
}

// orthoRayDepth is how far in front of the view center ortho rays start.
const orthoRayDepth = 1 << 16

// ScreenRay builds a pick ray through pixel (px, py), with (0, 0) at the
// top-left corner.
func (o *OrthographicViewport) ScreenRay(px, py float32) PickRay {
	right, up, forward := o.basis()
	dx := (px - o.Width/2) * o.Zoom
	dy := (o.Height/2 - py) * o.Zoom
	origin := o.Center.Add(right.Mul(dx)).Add(up.Mul(dy)).Sub(forward.Mul(orthoRayDepth))
	return NewPickRay(ChannelSelection, origin, forward, o)
}

// ScreenToWorld converts a pixel drag delta to a world delta in the view
// plane.
func (o *OrthographicViewport) ScreenToWorld(dx, dy float32) math.Vec3 {
	right, up, _ := o.basis()
	return right.Mul(dx * o.Zoom).Add(up.Mul(-dy * o.Zoom))
}

// PerspectiveViewport is the 3D view.
type PerspectiveViewport struct {
	Eye, Target   math.Vec3
	FOV           float32 // radians
	Width, Height float32
	Near, Far     float32
}

func NewPerspectiveViewport(eye, target math.Vec3, width, height float32) *PerspectiveViewport {
	return &PerspectiveViewport{
		Eye:    eye,
		Target: target,
		FOV:    float32(stdmath.Pi / 3),
		Width:  width,
		Height: height,
		Near:   0.1,
		Far:    1e5,
	}
}

func (p *PerspectiveViewport) Type() ViewType { return ViewPerspective }

func (p *PerspectiveViewport) ScaleFactor(x, y, z float32) float32 {
	dist := p.Eye.Distance(math.NewVec3(x, y, z))
	return 0.06 + float32(stdmath.Pow(float64(dist)/120, 0.8))
}

func (p *PerspectiveViewport) ViewWorldSizeX() float32 {
	dist := p.Eye.Distance(p.Target)
	return 2 * dist * float32(stdmath.Tan(float64(p.FOV)/2)) * p.aspect()
}

func (p *PerspectiveViewport) aspect() float32 {
	if p.Height <= 0 {
		return 1
	}
	return p.Width / p.Height
}

// maxOrbitPitch keeps the eye off the poles, where the up vector of the
// view matrix degenerates.
const maxOrbitPitch = 85

// Orbit swings the eye around the target: yaw about world Y, pitch up or
// down about the camera's right axis. Degrees.
func (p *PerspectiveViewport) Orbit(yaw, pitch float32) {
	offset := p.Eye.Sub(p.Target)
	dist := offset.Length()
	if dist == 0 {
		return
	}
	elevation := float32(stdmath.Asin(float64(offset.Y/dist)) * 180 / stdmath.Pi)
	pitch = math.Clamp(elevation+pitch, -maxOrbitPitch, maxOrbitPitch) - elevation

	right := offset.Negate().Cross(math.Vec3Up)
	if right.LengthSqr() < 1e-12 {
		right = math.Vec3Right
	}
	qYaw := math.QuaternionFromAxisAngle(math.Vec3Up, yaw*stdmath.Pi/180)
	qPitch := math.QuaternionFromAxisAngle(right, -pitch*stdmath.Pi/180)
	p.Eye = p.Target.Add(qYaw.Mul(qPitch).RotateVector(offset))
}

func (p *PerspectiveViewport) ViewMatrix() math.Mat4 {
	return math.Mat4LookAt(p.Eye, p.Target, math.Vec3Up)
}

func (p *PerspectiveViewport) ProjectionMatrix() math.Mat4 {
	return math.Mat4Perspective(p.FOV, p.aspect(), p.Near, p.Far)
}

// ScreenRay unprojects pixel (px, py) through the inverse view-projection.
func (p *PerspectiveViewport) ScreenRay(px, py float32) PickRay {
	ndcX := (2.0*px)/p.Width - 1.0
	ndcY := 1.0 - (2.0*py)/p.Height

	invViewProj := p.ViewMatrix().Mul(p.ProjectionMatrix()).Inverse()
	near := invViewProj.MulVec3(math.NewVec3(ndcX, ndcY, -1))
	far := invViewProj.MulVec3(math.NewVec3(ndcX, ndcY, 1))

	return NewPickRay(ChannelSelection, p.Eye, far.Sub(near).Normalize(), p)
}

// ScreenToWorld converts a pixel drag delta to a world delta in the plane
// through the target facing the camera.
func (p *PerspectiveViewport) ScreenToWorld(dx, dy float32) math.Vec3 {
	forward := p.Target.Sub(p.Eye).Normalize()
	right := forward.Cross(math.Vec3Up).Normalize()
	up := right.Cross(forward)
	k := p.ViewWorldSizeX() / max(p.Width, 1)
	return right.Mul(dx * k).Add(up.Mul(-dy * k))
}

// ScreenView is a viewport the editor can drive with cursor input.
type ScreenView interface {
	Viewport
	ScreenRay(px, py float32) PickRay
	ScreenToWorld(dx, dy float32) math.Vec3
}

var (
	_ ScreenView = (*OrthographicViewport)(nil)
	_ ScreenView = (*PerspectiveViewport)(nil)
)
