package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorley/bizenglish/internal/domain"
)

func TestSentenceOrdering_Move(t *testing.T) {
	t.Parallel()

	s := NewSentenceOrdering(sentenceFixture(), 2, &fakeSaver{})

	// "calling I am" -> "I am calling"
	require.True(t, s.Move("0", 0, 2))
	assert.Equal(t, []string{"I", "am", "calling"}, s.Words("0"))

	assert.False(t, s.Move("0", 5, 0), "out of range")
	assert.False(t, s.Move("9", 0, 1), "unknown sentence")
}

func TestSentenceOrdering_DropOnMidpoint(t *testing.T) {
	t.Parallel()

	s := NewSentenceOrdering(sentenceFixture(), 2, &fakeSaver{})

	// drop "calling" (index 0) on the right half of "am" (index 2)
	require.True(t, s.DropOn("0", 0, 2, After))
	assert.Equal(t, []string{"I", "am", "calling"}, s.Words("0"))

	// drop "calling" (now index 2) on the left half of "I" (index 0)
	require.True(t, s.DropOn("0", 2, 0, Before))
	assert.Equal(t, []string{"calling", "I", "am"}, s.Words("0"))
}

func TestSentenceOrdering_CheckExactMatch(t *testing.T) {
	t.Parallel()

	s := NewSentenceOrdering(sentenceFixture(), 2, &fakeSaver{})

	assert.Equal(t, Score{Total: 2}, s.Check(), "untouched sentences are unanswered")

	s.Move("0", 0, 2) // correct order
	assert.Equal(t, Score{Correct: 1, Answered: 1, Total: 2}, s.Check())

	s.Move("1", 0, 1) // rearranged but wrong
	assert.Equal(t, Score{Correct: 1, Answered: 2, Total: 2}, s.Check())
}

func TestSentenceOrdering_CaptureIsSparse(t *testing.T) {
	t.Parallel()

	s := NewSentenceOrdering(sentenceFixture(), 2, &fakeSaver{})
	assert.Empty(t, s.Capture().(map[string][]string))

	s.Move("0", 0, 2)
	captured := s.Capture().(map[string][]string)
	assert.Len(t, captured, 1)
	assert.Equal(t, []string{"I", "am", "calling"}, captured["0"])
}

func TestSentenceOrdering_ApplyRejectsForeignWords(t *testing.T) {
	t.Parallel()

	s := NewSentenceOrdering(sentenceFixture(), 2, &fakeSaver{})
	state := domain.LessonState{SentenceOrdering: map[string][]string{
		"0": {"I", "am", "calling"},
		"1": {"completely", "different", "words", "here"},
	}}

	s.Apply(state)
	assert.Equal(t, []string{"I", "am", "calling"}, s.Words("0"))
	assert.Equal(t, []string{"you", "Could", "repeat", "that"}, s.Words("1"),
		"non-permutation falls back to starting order")

	before := s.Capture()
	s.Apply(state)
	assert.Equal(t, before, s.Capture())
}

func TestSentenceOrdering_CaptureApplyRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewSentenceOrdering(sentenceFixture(), 2, &fakeSaver{})
	s.Move("1", 1, 0)

	captured := s.Capture().(map[string][]string)
	s.Apply(domain.LessonState{SentenceOrdering: captured})
	assert.Equal(t, captured, s.Capture())
}

func TestSentenceOrdering_ResetSentence(t *testing.T) {
	t.Parallel()

	saver := &fakeSaver{}
	s := NewSentenceOrdering(sentenceFixture(), 2, saver)
	s.Move("0", 0, 2)
	s.Move("1", 1, 0)

	s.ResetSentence("0")
	assert.Equal(t, []string{"calling", "I", "am"}, s.Words("0"))
	assert.Equal(t, []string{"Could", "you", "repeat", "that"}, s.Words("1"),
		"other sentences untouched")

	s.Reset()
	assert.Equal(t, []string{"you", "Could", "repeat", "that"}, s.Words("1"))
	assert.Empty(t, s.Capture().(map[string][]string))

	_, ok := saver.last()
	require.True(t, ok)
}
