package activity

import (
	"slices"

	"github.com/kmorley/bizenglish/internal/domain"
	"github.com/kmorley/bizenglish/internal/lessons"
)

// FlipCards tracks which vocabulary cards are face up.
type FlipCards struct {
	cfg    *lessons.FlipCardsConfig
	lesson int
	saver  Saver

	flipped map[int]bool
}

// NewFlipCards creates the controller with every card face down.
func NewFlipCards(cfg *lessons.FlipCardsConfig, lesson int, saver Saver) *FlipCards {
	return &FlipCards{cfg: cfg, lesson: lesson, saver: saver, flipped: make(map[int]bool)}
}

// Toggle flips a card over.
func (f *FlipCards) Toggle(index int) {
	if index < 0 || index >= len(f.cfg.Cards) {
		return
	}
	if f.flipped[index] {
		delete(f.flipped, index)
	} else {
		f.flipped[index] = true
	}
	f.save()
}

// IsFlipped reports whether a card is face up.
func (f *FlipCards) IsFlipped(index int) bool { return f.flipped[index] }

// Field implements Controller.
func (f *FlipCards) Field() string { return domain.FieldFlippedCards }

// Capture implements Controller: flipped indices, ascending.
func (f *FlipCards) Capture() any {
	out := make([]int, 0, len(f.flipped))
	for i := range f.flipped {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Apply implements Controller. Out-of-range indices are skipped.
func (f *FlipCards) Apply(state domain.LessonState) {
	if state.FlippedCards == nil {
		return
	}
	flipped := make(map[int]bool, len(state.FlippedCards))
	for _, i := range state.FlippedCards {
		if i >= 0 && i < len(f.cfg.Cards) {
			flipped[i] = true
		}
	}
	f.flipped = flipped
}

// Reset implements Controller: all cards face down.
func (f *FlipCards) Reset() {
	f.flipped = make(map[int]bool)
	f.save()
}

func (f *FlipCards) save() {
	f.saver.ScheduleFieldSave(f.lesson, f.Field(), f.Capture())
}

// TopicReveal tracks which topic tiles have been uncovered. The set
// only grows during play; revealing is never undone short of a reset.
type TopicReveal struct {
	cfg    *lessons.TopicRevealConfig
	lesson int
	saver  Saver

	revealed map[string]bool
}

// NewTopicReveal creates the controller with every tile covered.
func NewTopicReveal(cfg *lessons.TopicRevealConfig, lesson int, saver Saver) *TopicReveal {
	return &TopicReveal{cfg: cfg, lesson: lesson, saver: saver, revealed: make(map[string]bool)}
}

// Reveal uncovers a topic tile. Unknown labels and repeat reveals are
// no-ops.
func (t *TopicReveal) Reveal(label string) {
	if !slices.Contains(t.cfg.Topics, label) || t.revealed[label] {
		return
	}
	t.revealed[label] = true
	t.save()
}

// IsRevealed reports whether a topic has been uncovered.
func (t *TopicReveal) IsRevealed(label string) bool { return t.revealed[label] }

// Field implements Controller.
func (t *TopicReveal) Field() string { return domain.FieldRevealedTopics }

// Capture implements Controller: revealed labels in tile order.
func (t *TopicReveal) Capture() any {
	out := make([]string, 0, len(t.revealed))
	for _, label := range t.cfg.Topics {
		if t.revealed[label] {
			out = append(out, label)
		}
	}
	return out
}

// Apply implements Controller. Stored labels are unioned in, so a
// reveal that happened locally before the document loaded survives.
func (t *TopicReveal) Apply(state domain.LessonState) {
	for _, label := range state.RevealedTopics {
		if slices.Contains(t.cfg.Topics, label) {
			t.revealed[label] = true
		}
	}
}

// Reset implements Controller: all tiles covered again.
func (t *TopicReveal) Reset() {
	t.revealed = make(map[string]bool)
	t.save()
}

func (t *TopicReveal) save() {
	t.saver.ScheduleFieldSave(t.lesson, t.Field(), t.Capture())
}

// Scenario tracks the single chosen scenario option.
type Scenario struct {
	cfg    *lessons.ScenarioConfig
	lesson int
	saver  Saver

	selected *int
}

// NewScenario creates the controller with nothing chosen.
func NewScenario(cfg *lessons.ScenarioConfig, lesson int, saver Saver) *Scenario {
	return &Scenario{cfg: cfg, lesson: lesson, saver: saver}
}

// SelectOption picks an option, replacing any earlier choice.
func (s *Scenario) SelectOption(index int) {
	if index < 0 || index >= len(s.cfg.Options) {
		return
	}
	s.selected = &index
	s.save()
}

// SelectedOption returns the chosen index, or false when none.
func (s *Scenario) SelectedOption() (int, bool) {
	if s.selected == nil {
		return 0, false
	}
	return *s.selected, true
}

// Field implements Controller.
func (s *Scenario) Field() string { return domain.FieldSelectedScenario }

// Capture implements Controller.
func (s *Scenario) Capture() any {
	if s.selected == nil {
		return nil
	}
	v := *s.selected
	return &v
}

// Apply implements Controller. An out-of-range stored index is
// treated as no selection.
func (s *Scenario) Apply(state domain.LessonState) {
	if state.SelectedScenario == nil {
		return
	}
	idx := *state.SelectedScenario
	if idx < 0 || idx >= len(s.cfg.Options) {
		return
	}
	s.selected = &idx
}

// Reset implements Controller: selection cleared.
func (s *Scenario) Reset() {
	s.selected = nil
	s.save()
}

func (s *Scenario) save() {
	s.saver.ScheduleFieldSave(s.lesson, s.Field(), s.Capture())
}

// RevealBoxes tracks uncovered answer boxes. Unlike topic tiles this
// state is intentionally transient: every visit starts covered, so the
// controller persists nothing.
type RevealBoxes struct {
	cfg *lessons.RevealBoxesConfig

	revealed map[string]bool
}

// NewRevealBoxes creates the controller with every box covered.
func NewRevealBoxes(cfg *lessons.RevealBoxesConfig) *RevealBoxes {
	return &RevealBoxes{cfg: cfg, revealed: make(map[string]bool)}
}

// Reveal uncovers a box.
func (r *RevealBoxes) Reveal(id string) {
	for _, box := range r.cfg.Boxes {
		if box.ID == id {
			r.revealed[id] = true
			return
		}
	}
}

// IsRevealed reports whether a box has been uncovered this visit.
func (r *RevealBoxes) IsRevealed(id string) bool { return r.revealed[id] }

// Field implements Controller: no document field.
func (r *RevealBoxes) Field() string { return "" }

// Capture implements Controller: nothing to store.
func (r *RevealBoxes) Capture() any { return nil }

// Apply implements Controller: nothing to restore.
func (r *RevealBoxes) Apply(domain.LessonState) {}

// Reset implements Controller: all boxes covered again.
func (r *RevealBoxes) Reset() {
	r.revealed = make(map[string]bool)
}
