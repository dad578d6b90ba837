package io

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"map-editor/math"
	"map-editor/scene"
)

// MapFileVersion is written into every saved map.
const MapFileVersion = "1.0"

// MapFile is the top-level structure of a saved map
type MapFile struct {
	Version string       `json:"version"`
	Name    string       `json:"name"`
	Objects []ObjectData `json:"objects"`
	Markers []MarkerData `json:"markers"`
}

// ObjectData stores one map object with its world-space geometry
type ObjectData struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Origin    [3]float32   `json:"origin"`
	Positions [][3]float32 `json:"positions"`
	Indices   []uint32     `json:"indices"`
	Matrix    math.Mat4    `json:"matrix"`
	Angle     *AngleData   `json:"angle,omitempty"`
}

// MarkerData stores a point entity
type MarkerData struct {
	Name     string     `json:"name"`
	Position [3]float32 `json:"position"`
	Angle    *AngleData `json:"angle,omitempty"`
}

// AngleData stores a facing angle
type AngleData struct {
	Axis      string  `json:"axis"` // "X", "Y" or "Z"
	Clockwise bool    `json:"clockwise"`
	Degrees   float64 `json:"degrees"`
}

// SaveMap serializes the committed state of m to a JSON file
func SaveMap(path, name string, m *scene.Map) error {
	data, err := json.MarshalIndent(FromMap(name, m), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal map: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadMap deserializes a JSON map file into a fresh map
func LoadMap(path string) (*scene.Map, *MapFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read map file: %w", err)
	}

	file := &MapFile{}
	if err := json.Unmarshal(data, file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse map file: %w", err)
	}
	m, err := file.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, file, nil
}

// FromMap snapshots every object and marker of m.
func FromMap(name string, m *scene.Map) *MapFile {
	file := &MapFile{Version: MapFileVersion, Name: name}
	for _, o := range m.Objects {
		positions, indices := meshData(o)
		od := ObjectData{
			ID:        o.ID.String(),
			Name:      o.Name,
			Origin:    Vec3ToArray(o.Position()),
			Positions: make([][3]float32, len(positions)),
			Indices:   indices,
			Matrix:    o.Matrix,
			Angle:     angleData(m.Arena, o.Angle),
		}
		for i, p := range positions {
			od.Positions[i] = Vec3ToArray(p)
		}
		file.Objects = append(file.Objects, od)
	}
	for _, mk := range m.Markers {
		file.Markers = append(file.Markers, MarkerData{
			Name:     mk.Name,
			Position: Vec3ToArray(mk.Position()),
			Angle:    angleData(m.Arena, mk.Angle),
		})
	}
	return file
}

// Build creates a new map holding the file's content.
func (f *MapFile) Build() (*scene.Map, error) {
	m := scene.NewMap()
	for _, od := range f.Objects {
		positions := make([]math.Vec3, len(od.Positions))
		for i, p := range od.Positions {
			positions[i] = ArrayToVec3(p)
		}
		o := scene.CreateObjectFromData(m.Arena, od.Name, positions, od.Indices)
		m.Arena.Point(o.Origin).Set(ArrayToVec3(od.Origin))
		if od.ID != "" {
			id, err := uuid.Parse(od.ID)
			if err != nil {
				return nil, fmt.Errorf("object %q: %w", od.Name, err)
			}
			o.ID = id
		}
		if od.Matrix != (math.Mat4{}) {
			o.Matrix = od.Matrix
		}
		if od.Angle != nil {
			axis, err := parseAxis(od.Angle.Axis)
			if err != nil {
				return nil, fmt.Errorf("object %q: %w", od.Name, err)
			}
			o.AttachAngle(axis, od.Angle.Clockwise, od.Angle.Degrees)
		}
		m.AddObject(o)
	}
	for _, md := range f.Markers {
		mk := m.AddMarker(md.Name, ArrayToVec3(md.Position))
		if md.Angle != nil {
			axis, err := parseAxis(md.Angle.Axis)
			if err != nil {
				return nil, fmt.Errorf("marker %q: %w", md.Name, err)
			}
			mk.AttachAngle(axis, md.Angle.Clockwise, md.Angle.Degrees)
		}
	}
	return m, nil
}

func angleData(arena *scene.Arena, get func() (scene.AngleID, bool)) *AngleData {
	id, ok := get()
	if !ok {
		return nil
	}
	a := arena.Angle(id)
	return &AngleData{Axis: a.Axis().String(), Clockwise: a.Clockwise(), Degrees: a.Committed()}
}

func parseAxis(s string) (math.Axis, error) {
	for _, a := range math.Axes {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// --- Helper conversions ---

// Vec3ToArray converts a Vec3 to a [3]float32
func Vec3ToArray(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// ArrayToVec3 converts a [3]float32 to Vec3
func ArrayToVec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
