package io

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"map-editor/core"
	"map-editor/math"
	"map-editor/scene"
)

// OBJData holds parsed OBJ geometry before it is placed in a map
type OBJData struct {
	Name   string
	Meshes []OBJMesh
}

// OBJMesh is a single object or group from an OBJ file
type OBJMesh struct {
	Name      string
	Positions []math.Vec3
	Indices   []uint32
}

// LoadOBJ parses a Wavefront .obj file. Normals, UVs and materials are
// skipped; picking only needs positions.
func LoadOBJ(path string) (*OBJData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer f.Close()

	data := &OBJData{Name: filepath.Base(path)}

	var positions []math.Vec3

	// Current mesh state
	currentMesh := OBJMesh{Name: "default"}
	vertexMap := make(map[int]uint32) // file position index -> mesh vertex index

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		switch parts[0] {
		case "v":
			if len(parts) < 4 {
				return nil, fmt.Errorf("%s:%d: vertex needs 3 coordinates", path, lineNo)
			}
			v, err := parseVec3(parts[1:4])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
			positions = append(positions, v)

		case "f":
			// Triangulate faces (fan triangulation for n-gons)
			faceVerts := make([]uint32, 0, len(parts)-1)
			for _, faceStr := range parts[1:] {
				pos, err := faceIndex(faceStr, len(positions))
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
				}
				if idx, ok := vertexMap[pos]; ok {
					faceVerts = append(faceVerts, idx)
					continue
				}
				newIdx := uint32(len(currentMesh.Positions))
				currentMesh.Positions = append(currentMesh.Positions, positions[pos])
				vertexMap[pos] = newIdx
				faceVerts = append(faceVerts, newIdx)
			}

			for i := 2; i < len(faceVerts); i++ {
				currentMesh.Indices = append(currentMesh.Indices,
					faceVerts[0], faceVerts[i-1], faceVerts[i])
			}

		case "o", "g":
			// New object/group, flush current mesh
			if len(currentMesh.Positions) > 0 {
				data.Meshes = append(data.Meshes, currentMesh)
			}
			name := "unnamed"
			if len(parts) > 1 {
				name = parts[1]
			}
			currentMesh = OBJMesh{Name: name}
			vertexMap = make(map[int]uint32)

		case "vn", "vt", "usemtl", "mtllib", "s":
		default:
			core.LogDebug("obj %s:%d: skipping %q", path, lineNo, parts[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Flush last mesh
	if len(currentMesh.Positions) > 0 {
		data.Meshes = append(data.Meshes, currentMesh)
	}

	if len(data.Meshes) == 0 {
		return nil, fmt.Errorf("no mesh data found in OBJ file")
	}
	return data, nil
}

// AddTo creates one map object per mesh.
func (d *OBJData) AddTo(m *scene.Map) []*scene.MapObject {
	objects := make([]*scene.MapObject, 0, len(d.Meshes))
	for _, mesh := range d.Meshes {
		o := scene.CreateObjectFromData(m.Arena, mesh.Name, mesh.Positions, mesh.Indices)
		m.AddObject(o)
		objects = append(objects, o)
	}
	return objects
}

// ExportOBJ writes the committed geometry of objects to a .obj file
func ExportOBJ(path string, objects []*scene.MapObject) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create OBJ file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	fmt.Fprintln(w, "# Exported by map-editor")
	fmt.Fprintln(w)

	vertexOffset := 0
	for _, o := range objects {
		positions, indices := meshData(o)
		fmt.Fprintf(w, "o %s\n", o.Name)
		for _, p := range positions {
			fmt.Fprintf(w, "v %g %g %g\n", p.X, p.Y, p.Z)
		}
		// Write faces (1-indexed in OBJ)
		for i := 0; i+2 < len(indices); i += 3 {
			fmt.Fprintf(w, "f %d %d %d\n",
				int(indices[i])+1+vertexOffset,
				int(indices[i+1])+1+vertexOffset,
				int(indices[i+2])+1+vertexOffset)
		}
		vertexOffset += len(positions)
		fmt.Fprintln(w)
	}

	return w.Flush()
}

// meshData flattens an object back into a position list and a triangle
// index list. Triangles that reference points outside the object's
// vertices are dropped.
func meshData(o *scene.MapObject) ([]math.Vec3, []uint32) {
	positions := make([]math.Vec3, len(o.Vertices))
	index := make(map[scene.PointID]uint32, len(o.Vertices))
	for i, v := range o.Vertices {
		positions[i] = v.Position()
		index[v.Pos] = uint32(i)
	}
	indices := make([]uint32, 0, 3*len(o.Triangles))
	for _, t := range o.Triangles {
		a, okA := index[t.V[0]]
		b, okB := index[t.V[1]]
		c, okC := index[t.V[2]]
		if okA && okB && okC {
			indices = append(indices, a, b, c)
		}
	}
	return positions, indices
}

func parseVec3(fields []string) (math.Vec3, error) {
	var xyz [3]float32
	for i, s := range fields {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("bad coordinate %q", s)
		}
		xyz[i] = float32(f)
	}
	return math.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}

// faceIndex resolves the position part of a face vertex spec like
// "v/vt/vn" to a zero-based index. Negative indices count back from the
// last position read.
func faceIndex(spec string, count int) (int, error) {
	head, _, _ := strings.Cut(spec, "/")
	idx, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("bad face vertex %q", spec)
	}
	if idx < 0 {
		idx = count + idx + 1
	}
	if idx <= 0 || idx > count {
		return 0, fmt.Errorf("face vertex %q out of range", spec)
	}
	return idx - 1, nil
}
