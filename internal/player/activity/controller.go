// Package activity implements the interactive widget controllers of
// the course player. Each controller owns the authoritative in-memory
// state of one widget family within a lesson, persists it through a
// Saver, and can rebuild itself from a stored lesson document.
package activity

import "github.com/kmorley/bizenglish/internal/domain"

// Saver receives state changes to persist. Implemented by the
// debounced writer; controllers never talk to the store directly.
type Saver interface {
	ScheduleFieldSave(lesson int, field string, value any)
}

// Controller is the common surface of all activity controllers.
//
// Apply must be idempotent and tolerant: applying the same document
// twice leaves the same state, and entries referencing unknown
// elements are skipped rather than failing the whole document.
type Controller interface {
	// Field names the lesson document field this controller owns.
	// Empty for controllers whose state is not persisted.
	Field() string
	// Capture returns the current state in document form.
	Capture() any
	// Apply rehydrates state from a stored document.
	Apply(state domain.LessonState)
	// Reset clears the state and schedules a save of the cleared state.
	Reset()
}
