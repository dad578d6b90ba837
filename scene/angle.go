package scene

import (
	stdmath "math"

	"map-editor/math"
)

// MutableAngle is an orientation in degrees about one world axis, with the
// same committed/scratch split as MutablePoint. Clockwise angles grow when
// the world rotates clockwise about their axis.
type MutableAngle struct {
	axis         math.Axis
	clockwise    bool
	deg          float64
	temp         float64
	transforming bool
	lastModified int64
}

func newMutableAngle(axis math.Axis, clockwise bool, degrees float64) *MutableAngle {
	return &MutableAngle{axis: axis, clockwise: clockwise, deg: degrees, temp: degrees, lastModified: -1}
}

func (a *MutableAngle) Axis() math.Axis { return a.axis }
func (a *MutableAngle) Clockwise() bool { return a.clockwise }

func (a *MutableAngle) Get() float64 {
	if a.transforming {
		return a.temp
	}
	return a.deg
}

func (a *MutableAngle) Committed() float64 {
	return a.deg
}

func (a *MutableAngle) Set(degrees float64) {
	a.deg = degrees
	if a.transforming {
		a.temp = degrees
	}
}

func (a *MutableAngle) StartTransform() {
	a.temp = a.deg
	a.transforming = true
}

func (a *MutableAngle) EndTransform() {
	a.transforming = false
}

func (a *MutableAngle) IsTransforming() bool {
	return a.transforming
}

// SetTempRotation applies a counter-clockwise rotation of delta degrees
// about axis. Angles about other axes are left alone.
func (a *MutableAngle) SetTempRotation(axis math.Axis, delta float64) {
	if axis != a.axis {
		return
	}
	if a.clockwise {
		a.temp = a.deg - delta
	} else {
		a.temp = a.deg + delta
	}
}

// SetTempMatrix pushes the angle's direction through m and reads the angle
// back from the projection onto the plane around the angle's axis.
func (a *MutableAngle) SetTempMatrix(m math.Mat4) {
	base := a.deg
	if a.clockwise {
		base = -base
	}
	dir := m.MulDirection(math.PlaneDirection(a.axis, base))
	dir.Set(a.axis, 0)
	if dir.LengthSqr() < 1e-12 {
		a.temp = a.deg
		return
	}
	next := math.PlaneAngle(dir, a.axis)
	if a.clockwise {
		next = -next
	}
	// keep the result in the same turn as the committed value
	next += 360 * stdmath.Round((a.deg-next)/360)
	a.temp = next
}

func (a *MutableAngle) Touch(frame uint64) bool {
	if a.lastModified >= int64(frame) {
		return false
	}
	a.lastModified = int64(frame)
	return true
}

func (a *MutableAngle) LastModified() int64 {
	return a.lastModified
}

func (a *MutableAngle) Temp() float64 {
	return a.temp
}
