package activity

import (
	"slices"
	"strings"

	"github.com/kmorley/bizenglish/internal/domain"
	"github.com/kmorley/bizenglish/internal/lessons"
)

// SentenceOrdering drives the rearrange-the-words activity. Words are
// addressed by position; a drop on another word inserts before or
// after it depending on which half of the word the pointer released on.
type SentenceOrdering struct {
	cfg    *lessons.SentenceOrderingConfig
	lesson int
	saver  Saver

	orders  map[string][]string // sentence ID -> current word order
	initial map[string][]string // scrambled order from config
}

// NewSentenceOrdering creates the controller with every sentence in
// its scrambled starting order.
func NewSentenceOrdering(cfg *lessons.SentenceOrderingConfig, lesson int, saver Saver) *SentenceOrdering {
	s := &SentenceOrdering{
		cfg:     cfg,
		lesson:  lesson,
		saver:   saver,
		orders:  make(map[string][]string, len(cfg.Sentences)),
		initial: make(map[string][]string, len(cfg.Sentences)),
	}
	for _, sent := range cfg.Sentences {
		s.initial[sent.ID] = slices.Clone(sent.Words)
		s.orders[sent.ID] = slices.Clone(sent.Words)
	}
	return s
}

// Words returns the current order of one sentence.
func (s *SentenceOrdering) Words(sentenceID string) []string {
	return slices.Clone(s.orders[sentenceID])
}

// Move takes the word at position from and inserts it at position to
// (interpreted after removal). Returns false for unknown sentences or
// out-of-range positions.
func (s *SentenceOrdering) Move(sentenceID string, from, to int) bool {
	words, ok := s.orders[sentenceID]
	if !ok || from < 0 || from >= len(words) || to < 0 || to >= len(words) {
		return false
	}
	if from == to {
		return true
	}
	word := words[from]
	words = slices.Delete(words, from, from+1)
	words = slices.Insert(words, to, word)
	s.orders[sentenceID] = words
	s.save()
	return true
}

// DropOn moves the word at position from next to the word at position
// target: before it when the pointer released on the left half, after
// it on the right half.
func (s *SentenceOrdering) DropOn(sentenceID string, from, target int, side Side) bool {
	words, ok := s.orders[sentenceID]
	if !ok || target < 0 || target >= len(words) {
		return false
	}
	to := target
	if side == After {
		to++
	}
	if from < to {
		to--
	}
	return s.Move(sentenceID, from, to)
}

// Check scores the activity. A sentence is correct when its words,
// joined by single spaces, equal the target sentence verbatim; it is
// answered when it was rearranged or already reads correctly.
func (s *SentenceOrdering) Check() Score {
	sc := Score{Total: len(s.cfg.Sentences)}
	for _, sent := range s.cfg.Sentences {
		cur := s.orders[sent.ID]
		if strings.Join(cur, " ") == sent.Correct {
			sc.Correct++
			sc.Answered++
		} else if !slices.Equal(cur, s.initial[sent.ID]) {
			sc.Answered++
		}
	}
	return sc
}

// Field implements Controller.
func (s *SentenceOrdering) Field() string { return domain.FieldSentenceOrdering }

// Capture implements Controller. Only rearranged sentences are stored;
// absent entries mean the starting order.
func (s *SentenceOrdering) Capture() any {
	out := make(map[string][]string)
	for id, words := range s.orders {
		if !slices.Equal(words, s.initial[id]) {
			out[id] = slices.Clone(words)
		}
	}
	return out
}

// Apply implements Controller. A stored order is adopted only when it
// is a permutation of the sentence's words; anything else is ignored
// and the sentence keeps its starting order.
func (s *SentenceOrdering) Apply(state domain.LessonState) {
	if state.SentenceOrdering == nil {
		return
	}

	for _, sent := range s.cfg.Sentences {
		stored, ok := state.SentenceOrdering[sent.ID]
		if ok && samePermutation(stored, sent.Words) {
			s.orders[sent.ID] = slices.Clone(stored)
		} else {
			s.orders[sent.ID] = slices.Clone(s.initial[sent.ID])
		}
	}
}

// ResetSentence restores one sentence to its starting order.
func (s *SentenceOrdering) ResetSentence(sentenceID string) {
	initial, ok := s.initial[sentenceID]
	if !ok {
		return
	}
	s.orders[sentenceID] = slices.Clone(initial)
	s.save()
}

// Reset implements Controller: every sentence back to starting order.
func (s *SentenceOrdering) Reset() {
	for id, initial := range s.initial {
		s.orders[id] = slices.Clone(initial)
	}
	s.save()
}

func (s *SentenceOrdering) save() {
	s.saver.ScheduleFieldSave(s.lesson, s.Field(), s.Capture())
}

// samePermutation reports whether a and b contain the same words the
// same number of times.
func samePermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, w := range a {
		counts[w]++
	}
	for _, w := range b {
		counts[w]--
		if counts[w] < 0 {
			return false
		}
	}
	return true
}
