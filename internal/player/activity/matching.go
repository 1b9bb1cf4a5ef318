package activity

import (
	"maps"

	"github.com/kmorley/bizenglish/internal/domain"
	"github.com/kmorley/bizenglish/internal/lessons"
)

// Matching drives the drag-items-onto-slots activity. Each slot holds
// at most one item; dropping onto an occupied slot evicts the occupant
// back to the bank.
type Matching struct {
	cfg    *lessons.MatchingConfig
	lesson int
	saver  Saver

	slots      map[string]string // slot ID -> item; absent means empty
	validSlots map[string]bool
	validItems map[string]bool
}

// NewMatching creates the controller with all slots empty.
func NewMatching(cfg *lessons.MatchingConfig, lesson int, saver Saver) *Matching {
	m := &Matching{
		cfg:        cfg,
		lesson:     lesson,
		saver:      saver,
		slots:      make(map[string]string, len(cfg.Slots)),
		validSlots: make(map[string]bool, len(cfg.Slots)),
		validItems: make(map[string]bool, len(cfg.Items)),
	}
	for _, slot := range cfg.Slots {
		m.validSlots[slot.ID] = true
	}
	for _, item := range cfg.Items {
		m.validItems[item] = true
	}
	return m
}

// Place puts an item into a slot. The item leaves any slot it occupied
// before; a previous occupant of the target slot returns to the bank.
func (m *Matching) Place(item, slotID string) bool {
	if !m.validItems[item] || !m.validSlots[slotID] {
		return false
	}
	for slot, occupant := range m.slots {
		if occupant == item {
			delete(m.slots, slot)
		}
	}
	m.slots[slotID] = item
	m.save()
	return true
}

// Remove empties a slot, returning its item to the bank.
func (m *Matching) Remove(slotID string) {
	if _, ok := m.slots[slotID]; !ok {
		return
	}
	delete(m.slots, slotID)
	m.save()
}

// DropAt places an item at a pointer position. Landing outside every
// slot returns the item to the bank.
func (m *Matching) DropAt(item string, p Point, hits *HitMap) {
	if slot, ok := hits.At(p); ok && m.validSlots[slot] {
		m.Place(item, slot)
		return
	}
	for slot, occupant := range m.slots {
		if occupant == item {
			delete(m.slots, slot)
			m.save()
			return
		}
	}
}

// Bank returns the unplaced items in configuration order.
func (m *Matching) Bank() []string {
	used := make(map[string]bool, len(m.slots))
	for _, item := range m.slots {
		used[item] = true
	}
	out := make([]string, 0, len(m.cfg.Items))
	for _, item := range m.cfg.Items {
		if !used[item] {
			out = append(out, item)
		}
	}
	return out
}

// ItemIn returns the item occupying a slot, empty when the slot is free.
func (m *Matching) ItemIn(slotID string) string { return m.slots[slotID] }

// Check scores the activity: filled slots count as answered, and a
// slot is correct when it holds the item its answer key names.
func (m *Matching) Check() Score {
	sc := Score{Total: len(m.cfg.Slots)}
	for _, slot := range m.cfg.Slots {
		item, ok := m.slots[slot.ID]
		if !ok {
			continue
		}
		sc.Answered++
		if item == slot.Answer {
			sc.Correct++
		}
	}
	return sc
}

// Field implements Controller.
func (m *Matching) Field() string { return domain.FieldMatching }

// Capture implements Controller.
func (m *Matching) Capture() any {
	return maps.Clone(m.slots)
}

// Apply implements Controller. Unknown slots and items are skipped;
// an item claimed by two slots stays in the first one seen in answer
// key order.
func (m *Matching) Apply(state domain.LessonState) {
	if state.Matching == nil {
		return
	}

	slots := make(map[string]string, len(state.Matching))
	used := make(map[string]bool, len(state.Matching))
	for _, slot := range m.cfg.Slots {
		item, ok := state.Matching[slot.ID]
		if !ok || !m.validItems[item] || used[item] {
			continue
		}
		slots[slot.ID] = item
		used[item] = true
	}
	m.slots = slots
}

// Reset implements Controller: all slots emptied.
func (m *Matching) Reset() {
	m.slots = make(map[string]string, len(m.cfg.Slots))
	m.save()
}

func (m *Matching) save() {
	m.saver.ScheduleFieldSave(m.lesson, m.Field(), m.Capture())
}
