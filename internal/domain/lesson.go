package domain

import "fmt"

// Names of the independently saved fields inside a lesson document.
// Partial updates address exactly one of these at a time.
const (
	FieldNotes            = "notes"
	FieldSorting          = "sorting"
	FieldRevealedTopics   = "revealedTopics"
	FieldMatching         = "matching"
	FieldFlippedCards     = "flippedCards"
	FieldSelectedScenario = "selectedScenario"
	FieldDropdownStates   = "dropdownStates"
	FieldRightWrong       = "rightWrong"
	FieldSentenceOrdering = "sentenceOrdering"
	FieldCompactMatching  = "compactMatching"
)

var lessonFields = map[string]struct{}{
	FieldNotes:            {},
	FieldSorting:          {},
	FieldRevealedTopics:   {},
	FieldMatching:         {},
	FieldFlippedCards:     {},
	FieldSelectedScenario: {},
	FieldDropdownStates:   {},
	FieldRightWrong:       {},
	FieldSentenceOrdering: {},
	FieldCompactMatching:  {},
}

// IsLessonField reports whether name is a known lesson document field.
// Repositories rely on this before interpolating a field name into a
// jsonb path.
func IsLessonField(name string) bool {
	_, ok := lessonFields[name]
	return ok
}

// Judgment values stored per statement by the right/wrong activity.
const (
	JudgmentTick  = "tick"
	JudgmentCross = "cross"
)

// GapState is the persisted state of one dropdown gap: the chosen value
// plus the check marks shown the last time the activity was scored.
type GapState struct {
	Value       string `json:"value"`
	IsCorrect   bool   `json:"isCorrect,omitempty"`
	IsIncorrect bool   `json:"isIncorrect,omitempty"`
}

// LessonState is the per-user, per-lesson progress document.
//
// Every field is optional: a missing field means the user never touched
// the corresponding widget, and the zero value of the struct is the
// state of a lesson that was never opened. Maps are keyed by the stable
// element identifiers baked into the lesson content.
type LessonState struct {
	// Notes maps note slot index to free text.
	Notes map[string]string `json:"notes,omitempty"`
	// Sorting maps zone ID (including the bank) to the ordered labels
	// currently placed there.
	Sorting map[string][]string `json:"sorting,omitempty"`
	// RevealedTopics lists topic labels uncovered so far. Grows only.
	RevealedTopics []string `json:"revealedTopics,omitempty"`
	// Matching maps target slot ID to the item placed in it.
	Matching map[string]string `json:"matching,omitempty"`
	// FlippedCards lists indices of cards currently face up.
	FlippedCards []int `json:"flippedCards,omitempty"`
	// SelectedScenario is the chosen option index, nil when none.
	SelectedScenario *int `json:"selectedScenario,omitempty"`
	// DropdownStates maps activity ID to per-gap state.
	DropdownStates map[string]map[string]GapState `json:"dropdownStates,omitempty"`
	// RightWrong maps activity ID to statement index to judgment.
	RightWrong map[string]map[string]string `json:"rightWrong,omitempty"`
	// SentenceOrdering maps sentence index to the current word order.
	SentenceOrdering map[string][]string `json:"sentenceOrdering,omitempty"`
	// CompactMatching maps activity ID to slot ID to marker.
	CompactMatching map[string]map[string]string `json:"compactMatching,omitempty"`
}

// DefaultLessonState returns the document used for users who have no
// saved progress for a lesson.
func DefaultLessonState() LessonState {
	return LessonState{}
}

// LessonKey returns the lesson_data map key for a lesson number.
func LessonKey(lesson int) string {
	return fmt.Sprintf("lesson%d", lesson)
}
