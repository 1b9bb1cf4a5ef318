package activity

import (
	"slices"

	"github.com/kmorley/bizenglish/internal/domain"
	"github.com/kmorley/bizenglish/internal/lessons"
)

// Sorting drives the categorize-into-zones activity. Items start in
// the bank; the user selects an item and clicks a zone to place it, or
// drops it via the hit map. Clicking a placed item sends it back to
// the bank.
type Sorting struct {
	cfg    *lessons.SortingConfig
	lesson int
	saver  Saver

	zones    map[string][]string // zone ID (and bank) -> ordered labels
	category map[string]string   // item label -> correct zone
	selected string
}

// NewSorting creates the controller with every item in the bank.
func NewSorting(cfg *lessons.SortingConfig, lesson int, saver Saver) *Sorting {
	s := &Sorting{
		cfg:      cfg,
		lesson:   lesson,
		saver:    saver,
		category: make(map[string]string, len(cfg.Items)),
	}
	for _, item := range cfg.Items {
		s.category[item.Label] = item.Category
	}
	s.zones = s.emptyLayout()
	return s
}

func (s *Sorting) emptyLayout() map[string][]string {
	zones := make(map[string][]string, len(s.cfg.Zones)+1)
	bank := make([]string, 0, len(s.cfg.Items))
	for _, item := range s.cfg.Items {
		bank = append(bank, item.Label)
	}
	zones[s.cfg.BankID] = bank
	for _, z := range s.cfg.Zones {
		zones[z.ID] = []string{}
	}
	return zones
}

func (s *Sorting) validZone(id string) bool {
	_, ok := s.zones[id]
	return ok
}

func (s *Sorting) locate(label string) (string, int) {
	for zone, items := range s.zones {
		if i := slices.Index(items, label); i >= 0 {
			return zone, i
		}
	}
	return "", -1
}

func (s *Sorting) move(label, toZone string) {
	fromZone, i := s.locate(label)
	if fromZone == "" {
		return
	}
	s.zones[fromZone] = slices.Delete(s.zones[fromZone], i, i+1)
	s.zones[toZone] = append(s.zones[toZone], label)
}

// Select toggles selection of an item. Selecting a different item
// moves the selection; selecting the current one clears it.
func (s *Sorting) Select(label string) {
	if _, ok := s.category[label]; !ok {
		return
	}
	if s.selected == label {
		s.selected = ""
		return
	}
	s.selected = label
}

// Selected returns the currently selected item, empty when none.
func (s *Sorting) Selected() string { return s.selected }

// PlaceSelected moves the selected item into the given zone and clears
// the selection. Returns false when nothing is selected or the zone is
// unknown.
func (s *Sorting) PlaceSelected(zoneID string) bool {
	if s.selected == "" || !s.validZone(zoneID) {
		return false
	}
	s.move(s.selected, zoneID)
	s.selected = ""
	s.save()
	return true
}

// ReturnToBank sends a placed item back to the bank. Items already in
// the bank stay put.
func (s *Sorting) ReturnToBank(label string) {
	zone, _ := s.locate(label)
	if zone == "" || zone == s.cfg.BankID {
		return
	}
	s.move(label, s.cfg.BankID)
	s.save()
}

// DropAt places an item at a pointer position. Landing outside every
// zone returns the item to the bank.
func (s *Sorting) DropAt(label string, p Point, hits *HitMap) {
	if _, ok := s.category[label]; !ok {
		return
	}
	zone, ok := hits.At(p)
	if !ok || !s.validZone(zone) {
		zone = s.cfg.BankID
	}
	s.move(label, zone)
	s.save()
}

// Check scores the activity. Only items placed outside the bank count
// as answered; a placement is correct when its zone matches the item's
// category.
func (s *Sorting) Check() Score {
	sc := Score{Total: len(s.cfg.Items)}
	for zone, items := range s.zones {
		if zone == s.cfg.BankID {
			continue
		}
		for _, label := range items {
			sc.Answered++
			if s.category[label] == zone {
				sc.Correct++
			}
		}
	}
	return sc
}

// Field implements Controller.
func (s *Sorting) Field() string { return domain.FieldSorting }

// Capture implements Controller.
func (s *Sorting) Capture() any {
	out := make(map[string][]string, len(s.zones))
	for zone, items := range s.zones {
		out[zone] = slices.Clone(items)
	}
	return out
}

// Apply implements Controller. The stored layout is rebuilt from
// scratch: unknown zones and labels are skipped, duplicates collapse,
// and items the document never mentions settle in the bank.
func (s *Sorting) Apply(state domain.LessonState) {
	if state.Sorting == nil {
		return
	}

	zones := make(map[string][]string, len(s.zones))
	for zone := range s.zones {
		zones[zone] = []string{}
	}
	placed := make(map[string]bool, len(s.category))

	for zone, labels := range state.Sorting {
		if _, ok := zones[zone]; !ok {
			continue
		}
		for _, label := range labels {
			if _, known := s.category[label]; !known || placed[label] {
				continue
			}
			zones[zone] = append(zones[zone], label)
			placed[label] = true
		}
	}
	for _, item := range s.cfg.Items {
		if !placed[item.Label] {
			zones[s.cfg.BankID] = append(zones[s.cfg.BankID], item.Label)
		}
	}

	s.zones = zones
	s.selected = ""
}

// Reset implements Controller: everything back to the bank.
func (s *Sorting) Reset() {
	s.zones = s.emptyLayout()
	s.selected = ""
	s.save()
}

func (s *Sorting) save() {
	s.saver.ScheduleFieldSave(s.lesson, s.Field(), s.Capture())
}
