package scene

import "map-editor/math"

// MutablePoint is a world position with a committed value and a scratch
// value. While a transform scope is open every read returns the scratch
// value; closing the scope drops it again. Only commands write the
// committed value.
type MutablePoint struct {
	pos          math.Vec3
	temp         math.Vec3
	transforming bool
	lastModified int64
}

func newMutablePoint(pos math.Vec3) *MutablePoint {
	return &MutablePoint{pos: pos, temp: pos, lastModified: -1}
}

// Get returns the visible position.
func (p *MutablePoint) Get() math.Vec3 {
	if p.transforming {
		return p.temp
	}
	return p.pos
}

// Committed ignores any scratch value.
func (p *MutablePoint) Committed() math.Vec3 {
	return p.pos
}

func (p *MutablePoint) Temp() math.Vec3 {
	return p.temp
}

// Set writes the committed value. An open scope sees the write too.
func (p *MutablePoint) Set(v math.Vec3) {
	p.pos = v
	if p.transforming {
		p.temp = v
	}
}

// StartTransform opens a scope. Points shared by several entities are
// started once per entity, so a second start inside an open scope only
// reloads the scratch value.
func (p *MutablePoint) StartTransform() {
	p.temp = p.pos
	p.transforming = true
}

func (p *MutablePoint) EndTransform() {
	p.transforming = false
}

func (p *MutablePoint) IsTransforming() bool {
	return p.transforming
}

func (p *MutablePoint) SetTemp(v math.Vec3) {
	p.temp = v
}

func (p *MutablePoint) SetTempTranslation(d math.Vec3) {
	p.temp = p.pos.Add(d)
}

// SetTempScale scales the committed value around origin.
func (p *MutablePoint) SetTempScale(origin, s math.Vec3) {
	p.temp = origin.Add(p.pos.Sub(origin).MulVec(s))
}

func (p *MutablePoint) SetTempRotation(axis math.Axis, degrees float64, origin math.Vec3) {
	p.temp = math.RotateAbout(p.pos, axis, degrees, origin)
}

func (p *MutablePoint) SetTempMatrix(m math.Mat4) {
	p.temp = m.MulVec3(p.pos)
}

// RoundTemp snaps the scratch value to the nearest multiple of spacing.
func (p *MutablePoint) RoundTemp(spacing float32) {
	p.temp = math.Vec3{
		X: math.SnapTo(p.temp.X, spacing),
		Y: math.SnapTo(p.temp.Y, spacing),
		Z: math.SnapTo(p.temp.Z, spacing),
	}
}

// Touch reports whether the point may still be modified at frame and, if
// so, stamps it. A point is modified at most once per frame.
func (p *MutablePoint) Touch(frame uint64) bool {
	if p.lastModified >= int64(frame) {
		return false
	}
	p.lastModified = int64(frame)
	return true
}

// LastModified is -1 for a point never touched.
func (p *MutablePoint) LastModified() int64 {
	return p.lastModified
}
