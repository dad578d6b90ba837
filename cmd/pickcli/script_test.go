package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"map-editor/config"
	"map-editor/core"
	"map-editor/math"
	"map-editor/scene"
)

func TestMapExtent(t *testing.T) {
	_, _, ok := mapExtent(scene.NewMap())
	assert.False(t, ok)

	m := scene.NewMap()
	buildDemoScene(m)
	lo, hi, ok := mapExtent(m)
	assert.True(t, ok)
	assert.Equal(t, math.NewVec3(-100, -10, -100), lo)
	assert.Equal(t, math.NewVec3(100, 10, 100), hi)
}

func TestLogGridAcrossDemoScene(t *testing.T) {
	var buf bytes.Buffer
	core.SetLogOutput(&buf)
	defer core.SetLogOutput(os.Stderr)

	m := scene.NewMap()
	buildDemoScene(m)
	logGrid(m, config.Default().Grid())

	assert.Contains(t, buf.String(), "grid: 21 lines across x [-100.0, 100.0], first -100.0 last 100.0")
}

func TestOrbitMapHitsFloor(t *testing.T) {
	var buf bytes.Buffer
	core.SetLogOutput(&buf)
	defer core.SetLogOutput(os.Stderr)

	m := scene.NewMap()
	buildDemoScene(m)
	orbitMap(m)

	out := buf.String()
	for _, quarter := range []string{"orbit 0°", "orbit 90°", "orbit 180°", "orbit 270°"} {
		assert.Contains(t, out, quarter)
	}
	assert.NotContains(t, out, "miss")
}
