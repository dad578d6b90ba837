package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"map-editor/math"
	"map-editor/scene"
)

type recordingCommand struct {
	desc     string
	executed int
	undone   int
	log      *[]string
}

func (c *recordingCommand) Execute() {
	c.executed++
	if c.log != nil {
		*c.log = append(*c.log, "do "+c.desc)
	}
}

func (c *recordingCommand) Undo() {
	c.undone++
	if c.log != nil {
		*c.log = append(*c.log, "undo "+c.desc)
	}
}

func (c *recordingCommand) Description() string { return c.desc }

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory(10)
	a := &recordingCommand{desc: "a"}
	b := &recordingCommand{desc: "b"}

	h.Do(a)
	h.Do(b)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, b, h.Peek())

	require.True(t, h.Undo())
	assert.Equal(t, 1, b.undone)
	assert.True(t, h.CanRedo())

	require.True(t, h.Redo())
	assert.Equal(t, 2, b.executed)
	assert.False(t, h.CanRedo())

	// a new command drops the redo stack
	h.Undo()
	h.Do(&recordingCommand{desc: "c"})
	assert.False(t, h.CanRedo())
	assert.False(t, h.Redo())
}

func TestHistoryMaxDepth(t *testing.T) {
	h := NewHistory(2)
	first := &recordingCommand{desc: "first"}
	h.Do(first)
	h.Do(&recordingCommand{desc: "second"})
	h.Do(&recordingCommand{desc: "third"})
	assert.Equal(t, 2, h.Len())

	h.Undo()
	h.Undo()
	assert.False(t, h.Undo())
	assert.Equal(t, 0, first.undone)

	h.Clear()
	assert.False(t, h.CanUndo())
	assert.Nil(t, h.Peek())
}

func TestBatchRunsPendingCommandsOnce(t *testing.T) {
	var log []string
	a := &recordingCommand{desc: "a", log: &log}
	b := &recordingCommand{desc: "b", log: &log}

	batch := NewBatch("both")
	batch.AddAndExecute(a)
	batch.Add(b)
	batch.Execute()
	batch.Undo()
	batch.Execute()

	assert.Equal(t, []string{"do a", "do b", "undo b", "undo a", "do a", "do b"}, log)
	assert.Equal(t, "both", batch.Description())
	assert.Equal(t, 2, batch.Len())
}

func TestBatchUndoWithNothingApplied(t *testing.T) {
	a := &recordingCommand{desc: "a"}
	batch := NewBatch("")
	batch.Add(a)
	batch.Undo()

	assert.Equal(t, 0, a.undone)
	assert.Equal(t, "a", batch.Description())
}

func TestTransformCommand(t *testing.T) {
	m := scene.NewMap()
	mk := m.AddMarker("spawn", math.NewVec3(1, 0, 0))
	p := m.Arena.Point(mk.Pos)

	points := scene.NewPointSet()
	points.Add(mk.Pos)
	p.StartTransform()
	p.SetTemp(math.NewVec3(4, 0, 0))
	snapshot := scene.NewSnapshot(m.Arena)
	snapshot.CaptureScratch(points, scene.NewAngleSet())
	p.EndTransform()

	refreshed := 0
	cmd := NewTransformCommand("Move Spawn", snapshot, nil, func() { refreshed++ })

	cmd.Execute()
	assert.Equal(t, math.NewVec3(4, 0, 0), mk.Position())
	cmd.Undo()
	assert.Equal(t, math.NewVec3(1, 0, 0), mk.Position())
	assert.Equal(t, 2, refreshed)
	assert.Equal(t, "Move Spawn", cmd.Description())
	assert.Same(t, snapshot, cmd.Snapshot())
}

func TestDeleteObjectsKeepsArenaSlots(t *testing.T) {
	m := scene.NewMap()
	box := scene.CreateBox(m.Arena, "crate", math.Vec3Zero, math.NewVec3(1, 1, 1))
	m.AddObject(box)
	points := m.Arena.PointCount()

	h := NewHistory(10)
	h.Do(NewDeleteObjectsCommand(m, []*scene.MapObject{box}))
	assert.Empty(t, m.Objects)
	assert.Equal(t, points, m.Arena.PointCount())
	assert.Equal(t, "Delete crate", h.Peek().Description())

	h.Undo()
	require.Len(t, m.Objects, 1)
	assert.Equal(t, math.NewVec3(1, 1, 1), box.Bounds().Max())
}
