// Package lessons holds the static course content: which activities
// each lesson contains and their answer keys. Content is embedded JSON
// loaded at init.
package lessons

// Lesson is the static definition of one course lesson.
type Lesson struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	NoteSlots int    `json:"note_slots,omitempty"`

	Sorting          *SortingConfig          `json:"sorting,omitempty"`
	Matching         *MatchingConfig         `json:"matching,omitempty"`
	CompactMatching  []CompactMatchingConfig `json:"compact_matching,omitempty"`
	SentenceOrdering *SentenceOrderingConfig `json:"sentence_ordering,omitempty"`
	Dropdowns        []DropdownConfig        `json:"dropdowns,omitempty"`
	RightWrong       []RightWrongConfig      `json:"right_wrong,omitempty"`
	FlipCards        *FlipCardsConfig        `json:"flip_cards,omitempty"`
	TopicReveal      *TopicRevealConfig      `json:"topic_reveal,omitempty"`
	RevealBoxes      *RevealBoxesConfig      `json:"reveal_boxes,omitempty"`
	Scenario         *ScenarioConfig         `json:"scenario,omitempty"`
}

// SortingConfig describes a categorize-into-zones activity. Items start
// in the bank; each item belongs to exactly one zone.
type SortingConfig struct {
	BankID string     `json:"bank_id"`
	Zones  []SortZone `json:"zones"`
	Items  []SortItem `json:"items"`
}

type SortZone struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type SortItem struct {
	Label    string `json:"label"`
	Category string `json:"category"` // zone ID the item belongs to
}

// MatchingConfig describes a drag-items-onto-slots activity. Each slot
// accepts one item; Answer names the item that belongs there.
type MatchingConfig struct {
	Slots []MatchSlot `json:"slots"`
	Items []string    `json:"items"`
}

type MatchSlot struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Answer string `json:"answer"`
}

// CompactMatchingConfig describes one instance of the marker-matching
// activity. Markers live in fixed home cells and are placed onto slots
// by drag or by tap-tap.
type CompactMatchingConfig struct {
	ActivityID string          `json:"activity_id"`
	Slots      []CompactSlot   `json:"slots"`
	Markers    []CompactMarker `json:"markers"`
}

type CompactSlot struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Answer string `json:"answer"` // marker ID that belongs here
}

type CompactMarker struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SentenceOrderingConfig describes a rearrange-the-words activity.
// Words holds the scrambled order shown initially; Correct is the full
// sentence the words must form, compared verbatim.
type SentenceOrderingConfig struct {
	Sentences []Sentence `json:"sentences"`
}

type Sentence struct {
	ID      string   `json:"id"`
	Words   []string `json:"words"`
	Correct string   `json:"correct"`
}

// DropdownConfig describes one gap-fill activity driven by dropdowns.
type DropdownConfig struct {
	ActivityID string        `json:"activity_id"`
	Gaps       []DropdownGap `json:"gaps"`
}

type DropdownGap struct {
	ID      string   `json:"id"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
}

// RightWrongConfig describes one judge-the-sentences activity. The user
// marks each statement right or wrong; wrong statements carry the
// corrected wording shown after checking.
type RightWrongConfig struct {
	ActivityID string        `json:"activity_id"`
	Statements []RWStatement `json:"statements"`
}

type RWStatement struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	IsRight    bool   `json:"is_right"`
	Correction string `json:"correction,omitempty"`
}

// FlipCardsConfig describes a set of two-sided vocabulary cards.
type FlipCardsConfig struct {
	Cards []FlipCard `json:"cards"`
}

type FlipCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// TopicRevealConfig describes click-to-reveal topic tiles. Reveals are
// remembered across visits.
type TopicRevealConfig struct {
	Topics []string `json:"topics"`
}

// RevealBoxesConfig describes click-to-reveal answer boxes. Unlike
// topic tiles these are not persisted; every visit starts covered.
type RevealBoxesConfig struct {
	Boxes []RevealBox `json:"boxes"`
}

type RevealBox struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// ScenarioConfig describes a pick-one-scenario prompt.
type ScenarioConfig struct {
	Options []string `json:"options"`
}
