// Package player assembles a lesson session: the identity it runs as,
// the stored progress document, and the activity controllers built
// from the lesson's static content. The in-memory state owned by the
// controllers is authoritative; the store only ever receives copies.
package player

import (
	"context"
	"log/slog"
	"time"

	"github.com/kmorley/bizenglish/internal/domain"
	"github.com/kmorley/bizenglish/internal/lessons"
	"github.com/kmorley/bizenglish/internal/player/activity"
	"github.com/kmorley/bizenglish/internal/player/session"
	"github.com/kmorley/bizenglish/internal/player/writer"
)

// Store is the progress persistence the player consumes. Implemented
// by the progress service directly and by the HTTP client.
type Store interface {
	GetLessonState(ctx context.Context, name string, lesson int) (domain.LessonState, error)
	SaveLessonField(ctx context.Context, name string, lesson int, field string, value any) error
	SaveNote(ctx context.Context, name string, lesson int, slot, text string) error
	MarkLessonComplete(ctx context.Context, name string, lesson int) error
	MarkLessonIncomplete(ctx context.Context, name string, lesson int) error
}

// Player is one open lesson for one (possibly anonymous) user.
type Player struct {
	log     *slog.Logger
	store   Store
	session *session.Store
	writer  *writer.Debounced
	lesson  *lessons.Lesson

	controllers []activity.Controller
	notes       map[string]string

	Sorting          *activity.Sorting
	Matching         *activity.Matching
	CompactMatching  *activity.CompactMatching
	SentenceOrdering *activity.SentenceOrdering
	Dropdown         *activity.Dropdown
	RightWrong       *activity.RightWrong
	FlipCards        *activity.FlipCards
	TopicReveal      *activity.TopicReveal
	Scenario         *activity.Scenario
	RevealBoxes      *activity.RevealBoxes
}

// New creates a player for one lesson. Controllers exist for exactly
// the activities the lesson defines; the rest stay nil.
func New(log *slog.Logger, store Store, sess *session.Store, lesson *lessons.Lesson, debounce time.Duration) *Player {
	p := &Player{
		log:     log.With("component", "player", "lesson", lesson.Number),
		store:   store,
		session: sess,
		writer:  writer.New(log, store, sess, debounce),
		lesson:  lesson,
		notes:   make(map[string]string),
	}

	n := lesson.Number
	if cfg := lesson.Sorting; cfg != nil {
		p.Sorting = activity.NewSorting(cfg, n, p.writer)
		p.controllers = append(p.controllers, p.Sorting)
	}
	if cfg := lesson.Matching; cfg != nil {
		p.Matching = activity.NewMatching(cfg, n, p.writer)
		p.controllers = append(p.controllers, p.Matching)
	}
	if len(lesson.CompactMatching) > 0 {
		p.CompactMatching = activity.NewCompactMatching(lesson.CompactMatching, n, p.writer)
		p.controllers = append(p.controllers, p.CompactMatching)
	}
	if cfg := lesson.SentenceOrdering; cfg != nil {
		p.SentenceOrdering = activity.NewSentenceOrdering(cfg, n, p.writer)
		p.controllers = append(p.controllers, p.SentenceOrdering)
	}
	if len(lesson.Dropdowns) > 0 {
		p.Dropdown = activity.NewDropdown(lesson.Dropdowns, n, p.writer)
		p.controllers = append(p.controllers, p.Dropdown)
	}
	if len(lesson.RightWrong) > 0 {
		p.RightWrong = activity.NewRightWrong(lesson.RightWrong, n, p.writer)
		p.controllers = append(p.controllers, p.RightWrong)
	}
	if cfg := lesson.FlipCards; cfg != nil {
		p.FlipCards = activity.NewFlipCards(cfg, n, p.writer)
		p.controllers = append(p.controllers, p.FlipCards)
	}
	if cfg := lesson.TopicReveal; cfg != nil {
		p.TopicReveal = activity.NewTopicReveal(cfg, n, p.writer)
		p.controllers = append(p.controllers, p.TopicReveal)
	}
	if cfg := lesson.Scenario; cfg != nil {
		p.Scenario = activity.NewScenario(cfg, n, p.writer)
		p.controllers = append(p.controllers, p.Scenario)
	}
	if cfg := lesson.RevealBoxes; cfg != nil {
		p.RevealBoxes = activity.NewRevealBoxes(cfg)
		p.controllers = append(p.controllers, p.RevealBoxes)
	}

	return p
}

// Open loads the stored document and rehydrates every controller.
// Anonymous sessions and load failures both start from the default
// document; opening never fails the lesson.
func (p *Player) Open(ctx context.Context) {
	state := p.loadState(ctx)
	for _, c := range p.controllers {
		c.Apply(state)
	}
	p.notes = make(map[string]string, len(state.Notes))
	for slot, text := range state.Notes {
		p.notes[slot] = text
	}
}

// loadState fetches the lesson document. Anonymous users skip the
// store entirely.
func (p *Player) loadState(ctx context.Context) domain.LessonState {
	id, ok := p.session.Current()
	if !ok {
		return domain.DefaultLessonState()
	}

	state, err := p.store.GetLessonState(ctx, id.Key, p.lesson.Number)
	if err != nil {
		p.log.Warn("loading saved progress failed, starting fresh",
			slog.String("username", id.Key), slog.Any("error", err))
		return domain.DefaultLessonState()
	}
	return state
}

// Controllers returns every active controller.
func (p *Player) Controllers() []activity.Controller {
	return p.controllers
}

// Note returns the text of a note slot.
func (p *Player) Note(slot string) string { return p.notes[slot] }

// SetNote updates a note slot and schedules its save.
func (p *Player) SetNote(slot, text string) {
	p.notes[slot] = text
	p.writer.ScheduleNoteSave(p.lesson.Number, slot, text)
}

// CaptureAll assembles the full lesson document from the live
// controllers and notes.
func (p *Player) CaptureAll() domain.LessonState {
	state := domain.LessonState{}
	if len(p.notes) > 0 {
		state.Notes = make(map[string]string, len(p.notes))
		for slot, text := range p.notes {
			state.Notes[slot] = text
		}
	}
	for _, c := range p.controllers {
		switch c.Field() {
		case domain.FieldSorting:
			state.Sorting = c.Capture().(map[string][]string)
		case domain.FieldMatching:
			state.Matching = c.Capture().(map[string]string)
		case domain.FieldCompactMatching:
			state.CompactMatching = c.Capture().(map[string]map[string]string)
		case domain.FieldSentenceOrdering:
			state.SentenceOrdering = c.Capture().(map[string][]string)
		case domain.FieldDropdownStates:
			state.DropdownStates = c.Capture().(map[string]map[string]domain.GapState)
		case domain.FieldRightWrong:
			state.RightWrong = c.Capture().(map[string]map[string]string)
		case domain.FieldFlippedCards:
			state.FlippedCards = c.Capture().([]int)
		case domain.FieldRevealedTopics:
			state.RevealedTopics = c.Capture().([]string)
		case domain.FieldSelectedScenario:
			if v, ok := c.Capture().(*int); ok && v != nil {
				state.SelectedScenario = v
			}
		}
	}
	return state
}

// MarkComplete records the lesson as finished. Completion writes are
// immediate, not debounced. Anonymous sessions are a no-op.
func (p *Player) MarkComplete(ctx context.Context) error {
	id, ok := p.session.Current()
	if !ok {
		return nil
	}
	return p.store.MarkLessonComplete(ctx, id.Key, p.lesson.Number)
}

// MarkIncomplete removes the lesson from the completion set.
func (p *Player) MarkIncomplete(ctx context.Context) error {
	id, ok := p.session.Current()
	if !ok {
		return nil
	}
	return p.store.MarkLessonIncomplete(ctx, id.Key, p.lesson.Number)
}

// Flush forces every queued save out now.
func (p *Player) Flush() { p.writer.Flush() }

// Close flushes pending saves and shuts the writer down.
func (p *Player) Close() { p.writer.Close() }
