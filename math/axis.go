package math

import "map-editor/core"

// Axis names one of the three world axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

var Axes = [3]Axis{AxisX, AxisY, AxisZ}

// AxisFromIndex converts 0, 1, 2 to an Axis and panics on anything else.
func AxisFromIndex(i int) Axis {
	core.Assert(i >= 0 && i <= 2, core.ErrInvalidAxis, "index %d", i)
	return Axis(i)
}

func (a Axis) Index() int {
	return int(a)
}

// Unit returns the unit vector along the axis.
func (a Axis) Unit() Vec3 {
	var v Vec3
	v.Set(a, 1)
	return v
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "?"
}
