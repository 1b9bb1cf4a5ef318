package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHitMapAt(t *testing.T) {
	t.Parallel()

	m := NewHitMap()
	m.Set("zone-a", Rect{X: 0, Y: 0, W: 100, H: 50})
	m.Set("zone-b", Rect{X: 120, Y: 0, W: 100, H: 50})

	id, ok := m.At(Point{X: 10, Y: 10})
	assert.True(t, ok)
	assert.Equal(t, "zone-a", id)

	id, ok = m.At(Point{X: 150, Y: 25})
	assert.True(t, ok)
	assert.Equal(t, "zone-b", id)

	_, ok = m.At(Point{X: 110, Y: 10})
	assert.False(t, ok, "gap between zones hits nothing")

	m.Remove("zone-b")
	_, ok = m.At(Point{X: 150, Y: 25})
	assert.False(t, ok)
}

func TestHitMapOverlapUsesRegistrationOrder(t *testing.T) {
	t.Parallel()

	m := NewHitMap()
	m.Set("under", Rect{X: 0, Y: 0, W: 100, H: 100})
	m.Set("over", Rect{X: 50, Y: 50, W: 100, H: 100})

	id, ok := m.At(Point{X: 60, Y: 60})
	assert.True(t, ok)
	assert.Equal(t, "under", id)
}

func TestHitMapSideOf(t *testing.T) {
	t.Parallel()

	m := NewHitMap()
	m.Set("word", Rect{X: 100, Y: 0, W: 60, H: 20})

	assert.Equal(t, Before, m.SideOf("word", Point{X: 110, Y: 10}))
	assert.Equal(t, After, m.SideOf("word", Point{X: 150, Y: 10}))
	assert.Equal(t, After, m.SideOf("word", Point{X: 130, Y: 10}), "midpoint itself falls after")
	assert.Equal(t, Before, m.SideOf("missing", Point{X: 0, Y: 0}))
}

func TestRectContainsEdges(t *testing.T) {
	t.Parallel()

	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.True(t, r.Contains(Point{X: 0, Y: 0}))
	assert.False(t, r.Contains(Point{X: 10, Y: 10}), "right and bottom edges are exclusive")
}
