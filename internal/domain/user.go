package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// UserRecord is the stored account of a course user. Accounts are keyed
// by the normalized (lowercased) username; DisplayName preserves the
// form the user typed at sign-up.
type UserRecord struct {
	ID               uuid.UUID
	Username         string
	DisplayName      string
	CompletedLessons []int
	LessonData       map[string]LessonState
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AddCompletedLesson returns the completion set with lesson added.
// The result is unique and sorted ascending; adding a lesson that is
// already present returns an equal set.
func AddCompletedLesson(completed []int, lesson int) []int {
	if slices.Contains(completed, lesson) {
		return slices.Clone(completed)
	}
	out := append(slices.Clone(completed), lesson)
	slices.Sort(out)
	return out
}

// RemoveCompletedLesson returns the completion set with lesson removed.
// Removing an absent lesson returns an equal set.
func RemoveCompletedLesson(completed []int, lesson int) []int {
	out := make([]int, 0, len(completed))
	for _, l := range completed {
		if l != lesson {
			out = append(out, l)
		}
	}
	return out
}
