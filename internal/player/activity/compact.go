package activity

import (
	"github.com/kmorley/bizenglish/internal/domain"
	"github.com/kmorley/bizenglish/internal/lessons"
)

// CompactMatching drives every marker-matching instance of one lesson.
// Markers live in fixed home cells; placing one fills a slot, and a
// displaced or removed marker returns to its home. Both tap-tap and
// drag interactions resolve to the same placement model.
type CompactMatching struct {
	lesson int
	saver  Saver

	configs  map[string]*lessons.CompactMatchingConfig
	order    []string
	placed   map[string]map[string]string // activity -> slot -> marker
	selected map[string]string            // activity -> tapped marker
}

// NewCompactMatching creates the controller with all markers at home.
func NewCompactMatching(cfgs []lessons.CompactMatchingConfig, lesson int, saver Saver) *CompactMatching {
	c := &CompactMatching{
		lesson:   lesson,
		saver:    saver,
		configs:  make(map[string]*lessons.CompactMatchingConfig, len(cfgs)),
		placed:   make(map[string]map[string]string, len(cfgs)),
		selected: make(map[string]string, len(cfgs)),
	}
	for i := range cfgs {
		cfg := &cfgs[i]
		c.configs[cfg.ActivityID] = cfg
		c.order = append(c.order, cfg.ActivityID)
		c.placed[cfg.ActivityID] = make(map[string]string)
	}
	return c
}

func (c *CompactMatching) validSlot(cfg *lessons.CompactMatchingConfig, slot string) bool {
	for _, s := range cfg.Slots {
		if s.ID == slot {
			return true
		}
	}
	return false
}

func (c *CompactMatching) validMarker(cfg *lessons.CompactMatchingConfig, marker string) bool {
	for _, m := range cfg.Markers {
		if m.ID == marker {
			return true
		}
	}
	return false
}

// Place puts a marker into a slot of one activity instance. The marker
// leaves any slot it occupied; a previous occupant goes home.
func (c *CompactMatching) Place(activityID, marker, slot string) bool {
	cfg, ok := c.configs[activityID]
	if !ok || !c.validMarker(cfg, marker) || !c.validSlot(cfg, slot) {
		return false
	}
	slots := c.placed[activityID]
	for s, occupant := range slots {
		if occupant == marker {
			delete(slots, s)
		}
	}
	slots[slot] = marker
	c.save()
	return true
}

// ReturnHome removes a marker from whatever slot holds it.
func (c *CompactMatching) ReturnHome(activityID, marker string) {
	slots, ok := c.placed[activityID]
	if !ok {
		return
	}
	for s, occupant := range slots {
		if occupant == marker {
			delete(slots, s)
			c.save()
			return
		}
	}
}

// TapMarker toggles marker selection for the tap-tap interaction.
func (c *CompactMatching) TapMarker(activityID, marker string) {
	cfg, ok := c.configs[activityID]
	if !ok || !c.validMarker(cfg, marker) {
		return
	}
	if c.selected[activityID] == marker {
		delete(c.selected, activityID)
		return
	}
	c.selected[activityID] = marker
}

// TapSlot completes a tap-tap placement: with a marker selected it is
// placed here; with none selected a tapped occupant goes home.
func (c *CompactMatching) TapSlot(activityID, slot string) {
	if marker, ok := c.selected[activityID]; ok {
		if c.Place(activityID, marker, slot) {
			delete(c.selected, activityID)
		}
		return
	}
	if occupant, ok := c.placed[activityID][slot]; ok {
		c.ReturnHome(activityID, occupant)
	}
}

// SelectedMarker returns the marker tapped for placement, if any.
func (c *CompactMatching) SelectedMarker(activityID string) (string, bool) {
	m, ok := c.selected[activityID]
	return m, ok
}

// DropAt places a dragged marker at a pointer position. Landing
// outside every slot sends the marker home.
func (c *CompactMatching) DropAt(activityID, marker string, p Point, hits *HitMap) {
	cfg, ok := c.configs[activityID]
	if !ok || !c.validMarker(cfg, marker) {
		return
	}
	if slot, ok := hits.At(p); ok && c.validSlot(cfg, slot) {
		c.Place(activityID, marker, slot)
		return
	}
	c.ReturnHome(activityID, marker)
}

// MarkerIn returns the marker occupying a slot, empty when free.
func (c *CompactMatching) MarkerIn(activityID, slot string) string {
	return c.placed[activityID][slot]
}

// Check scores one activity instance.
func (c *CompactMatching) Check(activityID string) Score {
	cfg, ok := c.configs[activityID]
	if !ok {
		return Score{}
	}
	sc := Score{Total: len(cfg.Slots)}
	slots := c.placed[activityID]
	for _, slot := range cfg.Slots {
		marker, ok := slots[slot.ID]
		if !ok {
			continue
		}
		sc.Answered++
		if marker == slot.Answer {
			sc.Correct++
		}
	}
	return sc
}

// Field implements Controller.
func (c *CompactMatching) Field() string { return domain.FieldCompactMatching }

// Capture implements Controller. Activities with no placements are
// omitted, keeping the stored document sparse.
func (c *CompactMatching) Capture() any {
	out := make(map[string]map[string]string)
	for id, slots := range c.placed {
		if len(slots) == 0 {
			continue
		}
		clone := make(map[string]string, len(slots))
		for s, m := range slots {
			clone[s] = m
		}
		out[id] = clone
	}
	return out
}

// Apply implements Controller. Unknown activities, slots, and markers
// are skipped; a marker stored in two slots keeps its first placement
// in slot order.
func (c *CompactMatching) Apply(state domain.LessonState) {
	if state.CompactMatching == nil {
		return
	}

	for _, id := range c.order {
		cfg := c.configs[id]
		slots := make(map[string]string)
		stored, ok := state.CompactMatching[id]
		if ok {
			used := make(map[string]bool, len(stored))
			for _, slot := range cfg.Slots {
				marker, has := stored[slot.ID]
				if !has || !c.validMarker(cfg, marker) || used[marker] {
					continue
				}
				slots[slot.ID] = marker
				used[marker] = true
			}
		}
		c.placed[id] = slots
	}
	clear(c.selected)
}

// ResetActivity sends every marker of one instance home.
func (c *CompactMatching) ResetActivity(activityID string) {
	if _, ok := c.configs[activityID]; !ok {
		return
	}
	c.placed[activityID] = make(map[string]string)
	delete(c.selected, activityID)
	c.save()
}

// Reset implements Controller: all instances cleared.
func (c *CompactMatching) Reset() {
	for _, id := range c.order {
		c.placed[id] = make(map[string]string)
	}
	clear(c.selected)
	c.save()
}

func (c *CompactMatching) save() {
	c.saver.ScheduleFieldSave(c.lesson, c.Field(), c.Capture())
}
