package activity

// Shared test fixtures for the controller tests.

import (
	"github.com/kmorley/bizenglish/internal/lessons"
)

// fakeSaver records every scheduled save.
type fakeSaver struct {
	calls []savedCall
}

type savedCall struct {
	lesson int
	field  string
	value  any
}

func (f *fakeSaver) ScheduleFieldSave(lesson int, field string, value any) {
	f.calls = append(f.calls, savedCall{lesson: lesson, field: field, value: value})
}

func (f *fakeSaver) last() (savedCall, bool) {
	if len(f.calls) == 0 {
		return savedCall{}, false
	}
	return f.calls[len(f.calls)-1], true
}

func sortingFixture() *lessons.SortingConfig {
	return &lessons.SortingConfig{
		BankID: "bank",
		Zones: []lessons.SortZone{
			{ID: "zone-formal", Label: "Formal"},
			{ID: "zone-informal", Label: "Informal"},
		},
		Items: []lessons.SortItem{
			{Label: "How do you do?", Category: "zone-formal"},
			{Label: "Hiya!", Category: "zone-informal"},
			{Label: "Pleased to meet you.", Category: "zone-formal"},
		},
	}
}

func matchingFixture() *lessons.MatchingConfig {
	return &lessons.MatchingConfig{
		Items: []string{"CEO", "CFO", "HR Manager"},
		Slots: []lessons.MatchSlot{
			{ID: "slot-1", Answer: "CEO"},
			{ID: "slot-2", Answer: "CFO"},
			{ID: "slot-3", Answer: "HR Manager"},
		},
	}
}

func compactFixture() []lessons.CompactMatchingConfig {
	return []lessons.CompactMatchingConfig{
		{
			ActivityID: "cm1",
			Markers: []lessons.CompactMarker{
				{ID: "m1"}, {ID: "m2"}, {ID: "m3"},
			},
			Slots: []lessons.CompactSlot{
				{ID: "slot-a", Answer: "m1"},
				{ID: "slot-b", Answer: "m2"},
				{ID: "slot-c", Answer: "m3"},
			},
		},
	}
}

func sentenceFixture() *lessons.SentenceOrderingConfig {
	return &lessons.SentenceOrderingConfig{
		Sentences: []lessons.Sentence{
			{
				ID:      "0",
				Words:   []string{"calling", "I", "am"},
				Correct: "I am calling",
			},
			{
				ID:      "1",
				Words:   []string{"you", "Could", "repeat", "that"},
				Correct: "Could you repeat that",
			},
		},
	}
}

func dropdownFixture() []lessons.DropdownConfig {
	return []lessons.DropdownConfig{
		{
			ActivityID: "dd1",
			Gaps: []lessons.DropdownGap{
				{ID: "0", Options: []string{"hold", "wait"}, Answer: "hold"},
				{ID: "1", Options: []string{"put", "pass"}, Answer: "put"},
				{ID: "2", Options: []string{"back", "again"}, Answer: "back"},
			},
		},
	}
}

func rightWrongFixture() []lessons.RightWrongConfig {
	return []lessons.RightWrongConfig{
		{
			ActivityID: "rw1",
			Statements: []lessons.RWStatement{
				{ID: "0", Text: "I look forward to hearing from you.", IsRight: true},
				{ID: "1", Text: "Please find attached of the report.", IsRight: false,
					Correction: "Please find the report attached."},
			},
		},
	}
}
