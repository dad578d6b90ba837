package scene

import (
	"fmt"

	"map-editor/core"
	"map-editor/math"
)

// PointID and AngleID are stable handles into an Arena.
type PointID uint32
type AngleID uint32

// Arena owns every mutable position and angle of a map. Entities hold
// handles, so positions shared between entities (a vertex used by several
// triangles) are deduplicated by handle. Released slots are reused.
type Arena struct {
	points     []*MutablePoint
	angles     []*MutableAngle
	freePoints []PointID
	freeAngles []AngleID
}

func NewArena() *Arena {
	return &Arena{}
}

// NewPoint acquires a slot for a position.
func (a *Arena) NewPoint(pos math.Vec3) PointID {
	if n := len(a.freePoints); n > 0 {
		id := a.freePoints[n-1]
		a.freePoints = a.freePoints[:n-1]
		a.points[id] = newMutablePoint(pos)
		return id
	}
	a.points = append(a.points, newMutablePoint(pos))
	return PointID(len(a.points) - 1)
}

// Point panics on a released or unknown handle.
func (a *Arena) Point(id PointID) *MutablePoint {
	core.Assert(int(id) < len(a.points) && a.points[id] != nil, core.ErrInvalidHandle, "point %d", id)
	return a.points[id]
}

func (a *Arena) ReleasePoint(id PointID) error {
	if int(id) >= len(a.points) || a.points[id] == nil {
		return fmt.Errorf("release point %d: %w", id, core.ErrInvalidHandle)
	}
	a.points[id] = nil
	a.freePoints = append(a.freePoints, id)
	return nil
}

func (a *Arena) NewAngle(axis math.Axis, clockwise bool, degrees float64) AngleID {
	if n := len(a.freeAngles); n > 0 {
		id := a.freeAngles[n-1]
		a.freeAngles = a.freeAngles[:n-1]
		a.angles[id] = newMutableAngle(axis, clockwise, degrees)
		return id
	}
	a.angles = append(a.angles, newMutableAngle(axis, clockwise, degrees))
	return AngleID(len(a.angles) - 1)
}

func (a *Arena) Angle(id AngleID) *MutableAngle {
	core.Assert(int(id) < len(a.angles) && a.angles[id] != nil, core.ErrInvalidHandle, "angle %d", id)
	return a.angles[id]
}

func (a *Arena) ReleaseAngle(id AngleID) error {
	if int(id) >= len(a.angles) || a.angles[id] == nil {
		return fmt.Errorf("release angle %d: %w", id, core.ErrInvalidHandle)
	}
	a.angles[id] = nil
	a.freeAngles = append(a.freeAngles, id)
	return nil
}

// PointCount is the number of live positions.
func (a *Arena) PointCount() int {
	return len(a.points) - len(a.freePoints)
}

// Pos is a shorthand for Point(id).Get().
func (a *Arena) Pos(id PointID) math.Vec3 {
	return a.Point(id).Get()
}
