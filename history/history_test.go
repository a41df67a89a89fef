package history

import (
	"testing"

	"github.com/inkrank/doodle/canvas"
	"github.com/inkrank/doodle/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(t *testing.T, c *canvas.Canvas) canvas.Snapshot {
	t.Helper()
	s, err := c.Snapshot()
	require.NoError(t, err)
	return s
}

func stroke(t *testing.T, c *canvas.Canvas, m *Manager, a, b geom.Point) {
	t.Helper()
	require.NoError(t, m.SaveState())
	c.DrawSegment(a, b)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	c := canvas.New(64, 64)
	m := New(c, 0)

	stroke(t, c, m, geom.Point{X: 5, Y: 5}, geom.Point{X: 40, Y: 5})
	stroke(t, c, m, geom.Point{X: 5, Y: 30}, geom.Point{X: 40, Y: 30})
	stroke(t, c, m, geom.Point{X: 5, Y: 50}, geom.Point{X: 40, Y: 50})

	for i := 0; i < 3; i++ {
		before := snapshot(t, c)

		ok, err := m.Undo()
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = m.Redo()
		require.NoError(t, err)
		require.True(t, ok)

		assert.Equal(t, before, snapshot(t, c))

		// walk one step further back for the next round
		_, err = m.Undo()
		require.NoError(t, err)
	}

	assert.True(t, c.IsBlank())
	undo, redo := m.Depth()
	assert.Equal(t, 0, undo)
	assert.Equal(t, 3, redo)
}

func TestUndoEmptyIsNoop(t *testing.T) {
	c := canvas.New(32, 32)
	m := New(c, 0)

	require.NoError(t, m.SaveState())
	ok, err := m.Undo()
	require.NoError(t, err)
	require.True(t, ok)

	c.DrawSegment(geom.Point{X: 2, Y: 2}, geom.Point{X: 20, Y: 20})
	before := snapshot(t, c)
	_, redoBefore := m.Depth()

	ok, err = m.Undo()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, snapshot(t, c))
	_, redoAfter := m.Depth()
	assert.Equal(t, redoBefore, redoAfter)
}

func TestRedoEmptyIsNoop(t *testing.T) {
	c := canvas.New(32, 32)
	m := New(c, 0)

	ok, err := m.Redo()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveStateClearsRedo(t *testing.T) {
	c := canvas.New(32, 32)
	m := New(c, 0)

	stroke(t, c, m, geom.Point{X: 1, Y: 1}, geom.Point{X: 10, Y: 10})
	_, err := m.Undo()
	require.NoError(t, err)
	_, redo := m.Depth()
	require.Equal(t, 1, redo)

	require.NoError(t, m.SaveState())
	undo, redo := m.Depth()
	assert.Equal(t, 1, undo)
	assert.Equal(t, 0, redo)
}

func TestUndoRedoKeepRedoHistory(t *testing.T) {
	c := canvas.New(32, 32)
	m := New(c, 0)

	stroke(t, c, m, geom.Point{X: 1, Y: 1}, geom.Point{X: 10, Y: 10})
	stroke(t, c, m, geom.Point{X: 1, Y: 20}, geom.Point{X: 10, Y: 20})

	_, err := m.Undo()
	require.NoError(t, err)
	_, err = m.Undo()
	require.NoError(t, err)
	_, err = m.Redo()
	require.NoError(t, err)

	undo, redo := m.Depth()
	assert.Equal(t, 1, undo)
	assert.Equal(t, 1, redo)
}

func TestClear(t *testing.T) {
	c := canvas.New(32, 32)
	m := New(c, 0)
	stroke(t, c, m, geom.Point{X: 1, Y: 1}, geom.Point{X: 10, Y: 10})
	_, err := m.Undo()
	require.NoError(t, err)
	stroke(t, c, m, geom.Point{X: 1, Y: 1}, geom.Point{X: 10, Y: 10})

	m.Clear()
	undo, redo := m.Depth()
	assert.Zero(t, undo)
	assert.Zero(t, redo)
}

func TestMaxDepth(t *testing.T) {
	c := canvas.New(32, 32)
	m := New(c, 2)

	for i := 0; i < 5; i++ {
		stroke(t, c, m, geom.Point{X: float64(i), Y: 1}, geom.Point{X: float64(i), Y: 30})
	}
	undo, _ := m.Depth()
	assert.Equal(t, 2, undo)
}
