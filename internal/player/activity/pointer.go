package activity

// Point is a position in page coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box in page coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Side is the half of a target a pointer landed on.
type Side int

const (
	Before Side = iota
	After
)

// HitMap resolves pointer positions to registered drop targets. The
// drag-based activities share one of these instead of each reading
// element geometry on its own.
type HitMap struct {
	order   []string
	targets map[string]Rect
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{targets: make(map[string]Rect)}
}

// Set registers or moves a target.
func (m *HitMap) Set(id string, r Rect) {
	if _, ok := m.targets[id]; !ok {
		m.order = append(m.order, id)
	}
	m.targets[id] = r
}

// Remove unregisters a target.
func (m *HitMap) Remove(id string) {
	if _, ok := m.targets[id]; !ok {
		return
	}
	delete(m.targets, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// At returns the first registered target containing p. Registration
// order breaks ties, matching document order in the original layout.
func (m *HitMap) At(p Point) (string, bool) {
	for _, id := range m.order {
		if m.targets[id].Contains(p) {
			return id, true
		}
	}
	return "", false
}

// SideOf reports which half of the target the pointer is on, split at
// the horizontal midpoint. Used for insert-before/insert-after during
// word reordering.
func (m *HitMap) SideOf(id string, p Point) Side {
	r, ok := m.targets[id]
	if !ok || p.X < r.X+r.W/2 {
		return Before
	}
	return After
}
