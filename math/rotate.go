package math

import "math"

// RotateAbout rotates v about the world axis through pivot. X and Z turn
// counter-clockwise (right-handed); Y turns -Z toward +X, so a quarter turn
// takes (0, 0, -1) to (1, 0, 0). The 2x2 rotation runs in float64.
func RotateAbout(v Vec3, axis Axis, degrees float64, pivot Vec3) Vec3 {
	s, c := math.Sincos(degrees * math.Pi / 180)
	if math.Abs(s) < 1e-15 {
		s = 0
	}
	if math.Abs(c) < 1e-15 {
		c = 0
	}

	x := float64(v.X - pivot.X)
	y := float64(v.Y - pivot.Y)
	z := float64(v.Z - pivot.Z)

	switch axis {
	case AxisX:
		y, z = y*c-z*s, y*s+z*c
	case AxisY:
		x, z = x*c-z*s, x*s+z*c
	case AxisZ:
		x, y = x*c-y*s, x*s+y*c
	}
	return Vec3{X: float32(x) + pivot.X, Y: float32(y) + pivot.Y, Z: float32(z) + pivot.Z}
}

// PlaneAngle is the signed angle in degrees of v about axis, measured in
// the direction RotateAbout turns: X uses atan2(y, -z), Y uses
// atan2(z, x) and Z uses atan2(y, x).
func PlaneAngle(v Vec3, axis Axis) float64 {
	switch axis {
	case AxisX:
		return math.Atan2(float64(v.Y), float64(-v.Z)) * 180 / math.Pi
	case AxisY:
		return math.Atan2(float64(v.Z), float64(v.X)) * 180 / math.Pi
	default:
		return math.Atan2(float64(v.Y), float64(v.X)) * 180 / math.Pi
	}
}

// PlaneDirection is the unit vector whose PlaneAngle about axis is degrees.
func PlaneDirection(axis Axis, degrees float64) Vec3 {
	s, c := math.Sincos(degrees * math.Pi / 180)
	switch axis {
	case AxisX:
		return Vec3{Y: float32(s), Z: float32(-c)}
	case AxisY:
		return Vec3{X: float32(c), Z: float32(s)}
	default:
		return Vec3{X: float32(c), Y: float32(s)}
	}
}

// WrapDegrees maps an angle into (-180, 180].
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg+180, 360)
	if deg <= 0 {
		deg += 360
	}
	return deg - 180
}
