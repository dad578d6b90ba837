package scene

import "map-editor/math"

// Transformer is a reversible change of entity state that goes beyond
// positions and angles, such as an object's accumulated matrix.
type Transformer interface {
	Apply()
	Revert()
}

type PointBackup struct {
	ID       PointID
	Old, New math.Vec3
}

type AngleBackup struct {
	ID       AngleID
	Old, New float64
}

// Snapshot records before/after values of positions and angles.
type Snapshot struct {
	arena  *Arena
	Points []PointBackup
	Angles []AngleBackup
}

func NewSnapshot(arena *Arena) *Snapshot {
	return &Snapshot{arena: arena}
}

// CaptureScratch records committed values as old and scratch values as
// new, which is what an interactive gesture leaves behind.
func (s *Snapshot) CaptureScratch(points *PointSet, angles *AngleSet) {
	for _, id := range points.Items() {
		p := s.arena.Point(id)
		s.Points = append(s.Points, PointBackup{ID: id, Old: p.Committed(), New: p.Temp()})
	}
	for _, id := range angles.Items() {
		a := s.arena.Angle(id)
		s.Angles = append(s.Angles, AngleBackup{ID: id, Old: a.Committed(), New: a.Temp()})
	}
}

// RecordOld stores the current committed values of points as old values.
func (s *Snapshot) RecordOld(points []PointID) {
	for _, id := range points {
		s.Points = append(s.Points, PointBackup{ID: id, Old: s.arena.Point(id).Committed()})
	}
}

// RecordNew fills in the new values of previously recorded points.
func (s *Snapshot) RecordNew() {
	for i := range s.Points {
		s.Points[i].New = s.arena.Point(s.Points[i].ID).Committed()
	}
}

// Changed reports whether any recorded value differs.
func (s *Snapshot) Changed() bool {
	for _, b := range s.Points {
		if b.Old != b.New {
			return true
		}
	}
	for _, b := range s.Angles {
		if b.Old != b.New {
			return true
		}
	}
	return false
}

func (s *Snapshot) Apply() {
	for _, b := range s.Points {
		s.arena.Point(b.ID).Set(b.New)
	}
	for _, b := range s.Angles {
		s.arena.Angle(b.ID).Set(b.New)
	}
}

func (s *Snapshot) Revert() {
	for _, b := range s.Points {
		s.arena.Point(b.ID).Set(b.Old)
	}
	for _, b := range s.Angles {
		s.arena.Angle(b.ID).Set(b.Old)
	}
}
