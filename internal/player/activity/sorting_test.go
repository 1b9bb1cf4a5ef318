package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorley/bizenglish/internal/domain"
)

func TestSorting_SelectThenPlace(t *testing.T) {
	t.Parallel()

	saver := &fakeSaver{}
	s := NewSorting(sortingFixture(), 1, saver)

	assert.False(t, s.PlaceSelected("zone-formal"), "no selection yet")

	s.Select("How do you do?")
	assert.Equal(t, "How do you do?", s.Selected())
	require.True(t, s.PlaceSelected("zone-formal"))
	assert.Empty(t, s.Selected(), "placement clears selection")

	layout := s.Capture().(map[string][]string)
	assert.Equal(t, []string{"How do you do?"}, layout["zone-formal"])
	assert.NotContains(t, layout["bank"], "How do you do?")

	call, ok := saver.last()
	require.True(t, ok)
	assert.Equal(t, domain.FieldSorting, call.field)
}

func TestSorting_SelectToggles(t *testing.T) {
	t.Parallel()

	s := NewSorting(sortingFixture(), 1, &fakeSaver{})
	s.Select("Hiya!")
	s.Select("Hiya!")
	assert.Empty(t, s.Selected())
}

func TestSorting_ClickPlacedItemReturnsToBank(t *testing.T) {
	t.Parallel()

	s := NewSorting(sortingFixture(), 1, &fakeSaver{})
	s.Select("Hiya!")
	require.True(t, s.PlaceSelected("zone-formal"))

	s.ReturnToBank("Hiya!")
	layout := s.Capture().(map[string][]string)
	assert.Contains(t, layout["bank"], "Hiya!")
	assert.Empty(t, layout["zone-formal"])
}

func TestSorting_DropAt(t *testing.T) {
	t.Parallel()

	s := NewSorting(sortingFixture(), 1, &fakeSaver{})
	hits := NewHitMap()
	hits.Set("zone-formal", Rect{X: 0, Y: 0, W: 100, H: 100})
	hits.Set("zone-informal", Rect{X: 200, Y: 0, W: 100, H: 100})

	s.DropAt("Hiya!", Point{X: 250, Y: 50}, hits)
	layout := s.Capture().(map[string][]string)
	assert.Equal(t, []string{"Hiya!"}, layout["zone-informal"])

	// drop in dead space returns to bank
	s.DropAt("Hiya!", Point{X: 150, Y: 50}, hits)
	layout = s.Capture().(map[string][]string)
	assert.Contains(t, layout["bank"], "Hiya!")
}

func TestSorting_CheckCountsOnlyPlacedItems(t *testing.T) {
	t.Parallel()

	s := NewSorting(sortingFixture(), 1, &fakeSaver{})

	assert.Equal(t, Score{Total: 3}, s.Check(), "bank items are unanswered")

	s.Select("How do you do?")
	s.PlaceSelected("zone-formal")
	s.Select("Hiya!")
	s.PlaceSelected("zone-formal") // wrong zone

	assert.Equal(t, Score{Correct: 1, Answered: 2, Total: 3}, s.Check())
}

func TestSorting_ApplyIsIdempotentAndTolerant(t *testing.T) {
	t.Parallel()

	s := NewSorting(sortingFixture(), 1, &fakeSaver{})
	state := domain.LessonState{Sorting: map[string][]string{
		"zone-formal":  {"How do you do?", "Ghost item", "How do you do?"},
		"zone-unknown": {"Hiya!"},
	}}

	s.Apply(state)
	first := s.Capture().(map[string][]string)
	assert.Equal(t, []string{"How do you do?"}, first["zone-formal"])
	assert.Contains(t, first["bank"], "Hiya!", "entry under unknown zone stays in bank")
	assert.Contains(t, first["bank"], "Pleased to meet you.")

	s.Apply(state)
	assert.Equal(t, first, s.Capture(), "second apply changes nothing")
}

func TestSorting_CaptureApplyRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewSorting(sortingFixture(), 1, &fakeSaver{})
	s.Select("How do you do?")
	s.PlaceSelected("zone-formal")
	s.Select("Hiya!")
	s.PlaceSelected("zone-informal")

	captured := s.Capture().(map[string][]string)
	s.Apply(domain.LessonState{Sorting: captured})
	assert.Equal(t, captured, s.Capture())
}

func TestSorting_Reset(t *testing.T) {
	t.Parallel()

	saver := &fakeSaver{}
	s := NewSorting(sortingFixture(), 1, saver)
	s.Select("Hiya!")
	s.PlaceSelected("zone-informal")

	s.Reset()
	layout := s.Capture().(map[string][]string)
	assert.Len(t, layout["bank"], 3)
	assert.Empty(t, layout["zone-informal"])

	call, ok := saver.last()
	require.True(t, ok)
	saved := call.value.(map[string][]string)
	assert.Len(t, saved["bank"], 3, "reset schedules a save of the cleared state")
}
