// Package history keeps undo and redo stacks of raster snapshots.
package history

import (
	"fmt"

	"github.com/inkrank/doodle/canvas"
	"github.com/inkrank/doodle/log"
)

// Raster is the part of canvas.Raster the history needs.
type Raster interface {
	Snapshot() (canvas.Snapshot, error)
	Restore(canvas.Snapshot) error
}

// Manager owns the snapshot stacks. It is not safe for concurrent use; the
// session serializes calls.
type Manager struct {
	raster   Raster
	undo     []canvas.Snapshot
	redo     []canvas.Snapshot
	maxDepth int
}

// New creates a manager. maxDepth <= 0 keeps every snapshot.
func New(raster Raster, maxDepth int) *Manager {
	return &Manager{raster: raster, maxDepth: maxDepth}
}

// SaveState records the current raster before a new stroke and invalidates
// the redo history.
func (m *Manager) SaveState() error {
	s, err := m.raster.Snapshot()
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	m.undo = append(m.undo, s)
	if m.maxDepth > 0 && len(m.undo) > m.maxDepth {
		m.undo = m.undo[len(m.undo)-m.maxDepth:]
	}
	m.redo = nil
	return nil
}

// Undo restores the most recent snapshot. It returns false when there was
// nothing to undo.
func (m *Manager) Undo() (bool, error) {
	return m.step(&m.undo, &m.redo, "undo")
}

// Redo re-applies the most recently undone snapshot.
func (m *Manager) Redo() (bool, error) {
	return m.step(&m.redo, &m.undo, "redo")
}

func (m *Manager) step(from, to *[]canvas.Snapshot, name string) (bool, error) {
	if len(*from) == 0 {
		log.Trace.Printf("%s: stack empty", name)
		return false, nil
	}

	current, err := m.raster.Snapshot()
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}

	last := len(*from) - 1
	target := (*from)[last]
	if err := m.raster.Restore(target); err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}

	*from = (*from)[:last]
	*to = append(*to, current)
	log.Trace.Printf("%s: undo=%d redo=%d", name, len(m.undo), len(m.redo))
	return true, nil
}

// Clear drops both stacks.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
}

// Depth returns the sizes of the undo and redo stacks.
func (m *Manager) Depth() (undo, redo int) {
	return len(m.undo), len(m.redo)
}
