package editor

import (
	"fmt"

	"map-editor/core"
	"map-editor/scene"
)

// Command represents an undoable editor action
type Command interface {
	Execute()
	Undo()
	Description() string
}

// CommandExecutor runs commands on the host's mutation path. History is
// the in-module implementation.
type CommandExecutor interface {
	Execute(cmd Command)
}

// History manages undo/redo stacks
type History struct {
	undoStack []Command
	redoStack []Command
	maxDepth  int
}

// NewHistory creates a new history with the given max undo depth
func NewHistory(maxDepth int) *History {
	return &History{
		undoStack: make([]Command, 0, maxDepth),
		redoStack: make([]Command, 0, maxDepth),
		maxDepth:  maxDepth,
	}
}

// Do executes a command and pushes it to the undo stack
func (h *History) Do(cmd Command) {
	cmd.Execute()
	h.undoStack = append(h.undoStack, cmd)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[1:]
	}
	// Clear redo stack on new action
	h.redoStack = h.redoStack[:0]
	core.LogDebug("do: %s", cmd.Description())
}

// Execute is Do under the CommandExecutor name.
func (h *History) Execute(cmd Command) { h.Do(cmd) }

// Undo reverts the last action
func (h *History) Undo() bool {
	if len(h.undoStack) == 0 {
		return false
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	cmd.Undo()
	h.redoStack = append(h.redoStack, cmd)
	return true
}

// Redo reapplies the last undone action
func (h *History) Redo() bool {
	if len(h.redoStack) == 0 {
		return false
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	cmd.Execute()
	h.undoStack = append(h.undoStack, cmd)
	return true
}

// CanUndo returns whether there are actions to undo
func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo returns whether there are actions to redo
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// Len is the depth of the undo stack.
func (h *History) Len() int { return len(h.undoStack) }

// Peek returns the next command Undo would revert, or nil.
func (h *History) Peek() Command {
	if len(h.undoStack) == 0 {
		return nil
	}
	return h.undoStack[len(h.undoStack)-1]
}

// Clear wipes all undo/redo history
func (h *History) Clear() {
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
}

// --- Batch ---

// Batch groups the commands of one gesture. Commands added with
// AddAndExecute run immediately; the rest run when the batch is
// executed. Undo reverts everything that has run, newest first.
type Batch struct {
	desc     string
	commands []Command
	applied  int
}

func NewBatch(desc string) *Batch {
	return &Batch{desc: desc}
}

func (b *Batch) Add(cmd Command) {
	b.commands = append(b.commands, cmd)
}

// AddAndExecute requires every earlier command to have run already.
func (b *Batch) AddAndExecute(cmd Command) {
	b.Add(cmd)
	b.Execute()
}

func (b *Batch) Len() int { return len(b.commands) }

// Commands must not be modified by the caller.
func (b *Batch) Commands() []Command { return b.commands }

func (b *Batch) Execute() {
	for _, cmd := range b.commands[b.applied:] {
		cmd.Execute()
	}
	b.applied = len(b.commands)
}

func (b *Batch) Undo() {
	for i := b.applied - 1; i >= 0; i-- {
		b.commands[i].Undo()
	}
	b.applied = 0
}

func (b *Batch) Description() string {
	if b.desc == "" && len(b.commands) == 1 {
		return b.commands[0].Description()
	}
	return b.desc
}

// --- Concrete Commands ---

// TransformCommand commits the scratch state left by a gesture: recorded
// positions and angles plus per-item transformers. after runs on both
// execute and undo so derived state (bounds, gizmo) follows.
type TransformCommand struct {
	desc         string
	snapshot     *scene.Snapshot
	transformers []scene.Transformer
	after        func()
}

func NewTransformCommand(desc string, snapshot *scene.Snapshot, transformers []scene.Transformer, after func()) *TransformCommand {
	return &TransformCommand{desc: desc, snapshot: snapshot, transformers: transformers, after: after}
}

func (c *TransformCommand) Execute() {
	c.snapshot.Apply()
	for _, t := range c.transformers {
		t.Apply()
	}
	if c.after != nil {
		c.after()
	}
}

func (c *TransformCommand) Undo() {
	c.snapshot.Revert()
	for i := len(c.transformers) - 1; i >= 0; i-- {
		c.transformers[i].Revert()
	}
	if c.after != nil {
		c.after()
	}
}

func (c *TransformCommand) Description() string { return c.desc }

// Snapshot exposes the recorded before/after values.
func (c *TransformCommand) Snapshot() *scene.Snapshot { return c.snapshot }

// DeleteObjectsCommand removes objects from the map. The objects keep
// their arena slots so undo can put them back unchanged.
type DeleteObjectsCommand struct {
	m       *scene.Map
	objects []*scene.MapObject
}

func NewDeleteObjectsCommand(m *scene.Map, objects []*scene.MapObject) *DeleteObjectsCommand {
	return &DeleteObjectsCommand{m: m, objects: objects}
}

func (c *DeleteObjectsCommand) Execute() {
	for _, o := range c.objects {
		c.m.DetachObject(o)
	}
}

func (c *DeleteObjectsCommand) Undo() {
	for _, o := range c.objects {
		c.m.AddObject(o)
	}
}

func (c *DeleteObjectsCommand) Description() string {
	if len(c.objects) == 1 {
		return "Delete " + c.objects[0].Name
	}
	return fmt.Sprintf("Delete %d Objects", len(c.objects))
}
