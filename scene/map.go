package scene

import "map-editor/math"

// Map owns the arena and every entity placed in it.
type Map struct {
	Arena   *Arena
	Objects []*MapObject
	Markers []*Marker
}

func NewMap() *Map {
	return &Map{Arena: NewArena()}
}

func (m *Map) AddObject(o *MapObject) {
	m.Objects = append(m.Objects, o)
}

// DetachObject drops o but keeps its arena slots, so it can be added back.
func (m *Map) DetachObject(o *MapObject) bool {
	for i, obj := range m.Objects {
		if obj == o {
			m.Objects = append(m.Objects[:i], m.Objects[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveObject drops o and releases its arena slots.
func (m *Map) RemoveObject(o *MapObject) {
	if m.DetachObject(o) {
		o.Release()
	}
}

func (m *Map) AddMarker(name string, pos math.Vec3) *Marker {
	mk := NewMarker(m.Arena, name, pos)
	m.Markers = append(m.Markers, mk)
	return mk
}

// Find returns the first object with the given name.
func (m *Map) Find(name string) *MapObject {
	for _, o := range m.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// VertexPositions lists the visible position of every object vertex,
// the candidate set for vertex snapping.
func (m *Map) VertexPositions() []math.Vec3 {
	var out []math.Vec3
	for _, o := range m.Objects {
		for _, v := range o.Vertices {
			out = append(out, v.Position())
		}
	}
	return out
}
