package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorley/bizenglish/internal/domain"
)

func TestMatching_PlaceEvictsOccupant(t *testing.T) {
	t.Parallel()

	m := NewMatching(matchingFixture(), 1, &fakeSaver{})

	require.True(t, m.Place("CEO", "slot-1"))
	require.True(t, m.Place("CFO", "slot-1"))

	assert.Equal(t, "CFO", m.ItemIn("slot-1"))
	assert.Contains(t, m.Bank(), "CEO", "evicted item returns to bank")
}

func TestMatching_ItemMovesBetweenSlots(t *testing.T) {
	t.Parallel()

	m := NewMatching(matchingFixture(), 1, &fakeSaver{})
	m.Place("CEO", "slot-1")
	m.Place("CEO", "slot-2")

	assert.Empty(t, m.ItemIn("slot-1"))
	assert.Equal(t, "CEO", m.ItemIn("slot-2"))
}

// An item can never occupy two slots, and a slot never holds two
// items, whatever sequence of placements happens.
func TestMatching_SlotExclusivity(t *testing.T) {
	t.Parallel()

	m := NewMatching(matchingFixture(), 1, &fakeSaver{})
	ops := []struct{ item, slot string }{
		{"CEO", "slot-1"}, {"CFO", "slot-2"}, {"CEO", "slot-2"},
		{"HR Manager", "slot-1"}, {"CFO", "slot-1"}, {"CEO", "slot-3"},
	}
	for _, op := range ops {
		m.Place(op.item, op.slot)

		seen := map[string]bool{}
		placed := m.Capture().(map[string]string)
		for _, item := range placed {
			assert.False(t, seen[item], "item %q in two slots", item)
			seen[item] = true
		}
		assert.Len(t, m.Bank(), 3-len(placed))
	}
}

func TestMatching_DropAt(t *testing.T) {
	t.Parallel()

	m := NewMatching(matchingFixture(), 1, &fakeSaver{})
	hits := NewHitMap()
	hits.Set("slot-1", Rect{X: 0, Y: 0, W: 50, H: 50})

	m.DropAt("CEO", Point{X: 25, Y: 25}, hits)
	assert.Equal(t, "CEO", m.ItemIn("slot-1"))

	m.DropAt("CEO", Point{X: 500, Y: 500}, hits)
	assert.Empty(t, m.ItemIn("slot-1"), "drop outside slots returns item to bank")
	assert.Contains(t, m.Bank(), "CEO")
}

func TestMatching_Check(t *testing.T) {
	t.Parallel()

	m := NewMatching(matchingFixture(), 1, &fakeSaver{})
	assert.Equal(t, Score{Total: 3}, m.Check())

	m.Place("CEO", "slot-1")
	m.Place("HR Manager", "slot-2") // wrong
	assert.Equal(t, Score{Correct: 1, Answered: 2, Total: 3}, m.Check())
}

func TestMatching_ApplyTolerant(t *testing.T) {
	t.Parallel()

	m := NewMatching(matchingFixture(), 1, &fakeSaver{})
	state := domain.LessonState{Matching: map[string]string{
		"slot-1":    "CEO",
		"slot-2":    "CEO", // duplicate claim, first slot wins
		"slot-9":    "CFO", // unknown slot
		"slot-3":    "President", // unknown item
	}}

	m.Apply(state)
	assert.Equal(t, "CEO", m.ItemIn("slot-1"))
	assert.Empty(t, m.ItemIn("slot-2"))
	assert.Empty(t, m.ItemIn("slot-3"))

	before := m.Capture()
	m.Apply(state)
	assert.Equal(t, before, m.Capture())
}

func TestMatching_CaptureApplyRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewMatching(matchingFixture(), 1, &fakeSaver{})
	m.Place("CFO", "slot-2")
	m.Place("CEO", "slot-1")

	captured := m.Capture().(map[string]string)
	m.Apply(domain.LessonState{Matching: captured})
	assert.Equal(t, captured, m.Capture())
}

func TestMatching_Reset(t *testing.T) {
	t.Parallel()

	saver := &fakeSaver{}
	m := NewMatching(matchingFixture(), 1, saver)
	m.Place("CEO", "slot-1")

	m.Reset()
	assert.Empty(t, m.Capture().(map[string]string))
	assert.Len(t, m.Bank(), 3)

	call, ok := saver.last()
	require.True(t, ok)
	assert.Empty(t, call.value.(map[string]string))
}
