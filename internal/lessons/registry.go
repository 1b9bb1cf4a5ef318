package lessons

import (
	"sort"
	"sync"
)

var (
	mu       sync.RWMutex
	byNumber = make(map[int]*Lesson)
	ordered  []*Lesson
)

// Register adds lessons to the global registry, replacing any earlier
// registration of the same lesson number. Called from init via the
// embedded content loader.
func Register(lessons []*Lesson) {
	mu.Lock()
	defer mu.Unlock()

	for _, l := range lessons {
		byNumber[l.Number] = l
	}

	ordered = ordered[:0]
	for _, l := range byNumber {
		ordered = append(ordered, l)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Number < ordered[j].Number
	})
}

// All returns every registered lesson, sorted by number.
func All() []*Lesson {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]*Lesson, len(ordered))
	copy(out, ordered)
	return out
}

// Get returns the lesson with the given number, or nil.
func Get(number int) *Lesson {
	mu.RLock()
	defer mu.RUnlock()
	return byNumber[number]
}

// Count returns the number of registered lessons.
func Count() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(ordered)
}
