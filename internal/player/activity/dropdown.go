package activity

import (
	"slices"

	"github.com/kmorley/bizenglish/internal/domain"
	"github.com/kmorley/bizenglish/internal/lessons"
)

// Dropdown drives every gap-fill activity of one lesson. Gaps are
// answered by picking an option; checking marks each answered gap and
// the marks persist with the values.
type Dropdown struct {
	lesson int
	saver  Saver

	configs map[string]*lessons.DropdownConfig
	order   []string
	states  map[string]map[string]domain.GapState // activity -> gap -> state
}

// NewDropdown creates the controller with every gap unanswered.
func NewDropdown(cfgs []lessons.DropdownConfig, lesson int, saver Saver) *Dropdown {
	d := &Dropdown{
		lesson:  lesson,
		saver:   saver,
		configs: make(map[string]*lessons.DropdownConfig, len(cfgs)),
		states:  make(map[string]map[string]domain.GapState, len(cfgs)),
	}
	for i := range cfgs {
		cfg := &cfgs[i]
		d.configs[cfg.ActivityID] = cfg
		d.order = append(d.order, cfg.ActivityID)
		d.states[cfg.ActivityID] = make(map[string]domain.GapState)
	}
	return d
}

func (d *Dropdown) gap(cfg *lessons.DropdownConfig, gapID string) *lessons.DropdownGap {
	for i := range cfg.Gaps {
		if cfg.Gaps[i].ID == gapID {
			return &cfg.Gaps[i]
		}
	}
	return nil
}

// Select records the chosen value for a gap and clears its check
// marks. An empty value clears the gap. Values outside the gap's
// options are rejected.
func (d *Dropdown) Select(activityID, gapID, value string) bool {
	cfg, ok := d.configs[activityID]
	if !ok {
		return false
	}
	gap := d.gap(cfg, gapID)
	if gap == nil {
		return false
	}
	if value == "" {
		delete(d.states[activityID], gapID)
		d.save()
		return true
	}
	if !slices.Contains(gap.Options, value) {
		return false
	}
	d.states[activityID][gapID] = domain.GapState{Value: value}
	d.save()
	return true
}

// Value returns the current choice for a gap, empty when unanswered.
func (d *Dropdown) Value(activityID, gapID string) string {
	return d.states[activityID][gapID].Value
}

// Check scores one activity and stamps correct/incorrect marks on its
// answered gaps. Unanswered gaps count toward the total only.
func (d *Dropdown) Check(activityID string) Score {
	cfg, ok := d.configs[activityID]
	if !ok {
		return Score{}
	}

	sc := Score{Total: len(cfg.Gaps)}
	states := d.states[activityID]
	for _, gap := range cfg.Gaps {
		st, answered := states[gap.ID]
		if !answered || st.Value == "" {
			continue
		}
		sc.Answered++
		st.IsCorrect = st.Value == gap.Answer
		st.IsIncorrect = !st.IsCorrect
		states[gap.ID] = st
		if st.IsCorrect {
			sc.Correct++
		}
	}
	d.save()
	return sc
}

// Field implements Controller.
func (d *Dropdown) Field() string { return domain.FieldDropdownStates }

// Capture implements Controller. Activities with no answered gaps are
// omitted.
func (d *Dropdown) Capture() any {
	out := make(map[string]map[string]domain.GapState)
	for id, states := range d.states {
		if len(states) == 0 {
			continue
		}
		clone := make(map[string]domain.GapState, len(states))
		for g, st := range states {
			clone[g] = st
		}
		out[id] = clone
	}
	return out
}

// Apply implements Controller. Stored values outside a gap's options
// are dropped along with unknown activity and gap IDs; check marks are
// restored as saved.
func (d *Dropdown) Apply(state domain.LessonState) {
	if state.DropdownStates == nil {
		return
	}

	for _, id := range d.order {
		cfg := d.configs[id]
		states := make(map[string]domain.GapState)
		stored, ok := state.DropdownStates[id]
		if ok {
			for _, gap := range cfg.Gaps {
				st, has := stored[gap.ID]
				if !has || st.Value == "" || !slices.Contains(gap.Options, st.Value) {
					continue
				}
				states[gap.ID] = st
			}
		}
		d.states[id] = states
	}
}

// ResetActivity clears one activity's gaps.
func (d *Dropdown) ResetActivity(activityID string) {
	if _, ok := d.configs[activityID]; !ok {
		return
	}
	d.states[activityID] = make(map[string]domain.GapState)
	d.save()
}

// Reset implements Controller: every gap cleared.
func (d *Dropdown) Reset() {
	for _, id := range d.order {
		d.states[id] = make(map[string]domain.GapState)
	}
	d.save()
}

func (d *Dropdown) save() {
	d.saver.ScheduleFieldSave(d.lesson, d.Field(), d.Capture())
}
