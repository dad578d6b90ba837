package editor

import (
	"strings"

	"map-editor/math"
)

// AxisConstraint records which world axes a grabbed gizmo handle allows
// motion along.
type AxisConstraint struct {
	AllowX, AllowY, AllowZ bool
}

// Unconstrained allows every axis.
var Unconstrained = AxisConstraint{AllowX: true, AllowY: true, AllowZ: true}

func NewAxisConstraint(x, y, z bool) AxisConstraint {
	return AxisConstraint{AllowX: x, AllowY: y, AllowZ: z}
}

func (c AxisConstraint) Allows(axis math.Axis) bool {
	switch axis {
	case math.AxisX:
		return c.AllowX
	case math.AxisY:
		return c.AllowY
	case math.AxisZ:
		return c.AllowZ
	}
	return false
}

// Apply zeroes the forbidden components of v.
func (c AxisConstraint) Apply(v math.Vec3) math.Vec3 {
	if !c.AllowX {
		v.X = 0
	}
	if !c.AllowY {
		v.Y = 0
	}
	if !c.AllowZ {
		v.Z = 0
	}
	return v
}

// Collapse replaces the forbidden components of v with the pivot's.
func (c AxisConstraint) Collapse(v, pivot math.Vec3) math.Vec3 {
	if !c.AllowX {
		v.X = pivot.X
	}
	if !c.AllowY {
		v.Y = pivot.Y
	}
	if !c.AllowZ {
		v.Z = pivot.Z
	}
	return v
}

// Count is the number of allowed axes.
func (c AxisConstraint) Count() int {
	n := 0
	for _, ok := range [3]bool{c.AllowX, c.AllowY, c.AllowZ} {
		if ok {
			n++
		}
	}
	return n
}

// String lists the allowed axes, e.g. "XZ".
func (c AxisConstraint) String() string {
	var sb strings.Builder
	for _, axis := range math.Axes {
		if c.Allows(axis) {
			sb.WriteString(axis.String())
		}
	}
	if sb.Len() == 0 {
		return "none"
	}
	return sb.String()
}
