package activity

import "fmt"

// Score is the result of checking an activity.
type Score struct {
	Correct  int
	Answered int
	Total    int
}

// Feedback is the message shown after checking.
type Feedback struct {
	Message string
	Success bool
}

// ScoreFeedback turns a score into user-facing feedback. The rules are
// shared by every checkable activity, evaluated in order:
// nothing answered, everything correct, everything answered so far
// correct, otherwise a partial score.
func ScoreFeedback(sc Score) Feedback {
	switch {
	case sc.Answered == 0:
		return Feedback{Message: "Have a go first, then check your answers!"}
	case sc.Correct == sc.Total && sc.Answered == sc.Total:
		return Feedback{Message: "Excellent! All answers are correct.", Success: true}
	case sc.Correct == sc.Answered:
		return Feedback{
			Message: fmt.Sprintf("Good so far: %d of %d correct. Keep going!", sc.Correct, sc.Total),
			Success: true,
		}
	default:
		return Feedback{Message: fmt.Sprintf("%d/%d correct. Have another look!", sc.Correct, sc.Answered)}
	}
}
