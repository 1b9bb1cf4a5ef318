// Package writer debounces lesson state saves. Rapid edits to the same
// field collapse into one store write carrying the latest value; saves
// while anonymous are silently dropped.
package writer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kmorley/bizenglish/internal/player/session"
)

// FieldStore is the persistence surface the writer flushes to.
type FieldStore interface {
	SaveLessonField(ctx context.Context, username string, lesson int, field string, value any) error
	SaveNote(ctx context.Context, username string, lesson int, slot, text string) error
}

// identitySource resolves the user writes belong to at fire time.
type identitySource interface {
	Current() (session.Identity, bool)
}

const writeTimeout = 10 * time.Second

// key identifies one debounce bucket. Notes get a bucket per slot so
// editing one note never delays another.
type key struct {
	lesson int
	field  string
	slot   string
}

type pending struct {
	timer *time.Timer
	save  func(ctx context.Context, username string) error
}

// Debounced coalesces saves per (lesson, field) with a trailing delay.
type Debounced struct {
	log   *slog.Logger
	store FieldStore
	ident identitySource
	delay time.Duration

	mu      sync.Mutex
	pending map[key]*pending
	closed  bool

	// saveMu serializes flushed writes so a slow store call can never
	// be overtaken by a later write to the same key.
	saveMu sync.Mutex
	// wg counts timer fires that have claimed their entry and are
	// writing to the store.
	wg sync.WaitGroup
}

// New creates a debounced writer with the given trailing delay.
func New(log *slog.Logger, store FieldStore, ident identitySource, delay time.Duration) *Debounced {
	return &Debounced{
		log:     log.With("component", "writer"),
		store:   store,
		ident:   ident,
		delay:   delay,
		pending: make(map[key]*pending),
	}
}

// ScheduleFieldSave queues a save of one lesson field. A save already
// queued for the same field is replaced; only the latest value reaches
// the store. No-op while anonymous.
func (d *Debounced) ScheduleFieldSave(lesson int, field string, value any) {
	d.schedule(key{lesson: lesson, field: field}, func(ctx context.Context, username string) error {
		return d.store.SaveLessonField(ctx, username, lesson, field, value)
	})
}

// ScheduleNoteSave queues a save of one note slot.
func (d *Debounced) ScheduleNoteSave(lesson int, slot, text string) {
	d.schedule(key{lesson: lesson, field: "notes", slot: slot}, func(ctx context.Context, username string) error {
		return d.store.SaveNote(ctx, username, lesson, slot, text)
	})
}

// SaveFieldImmediate writes a field now, bypassing the debounce. Any
// queued save for the same field is dropped so a stale value cannot
// land after the immediate one.
func (d *Debounced) SaveFieldImmediate(ctx context.Context, lesson int, field string, value any) error {
	id, ok := d.ident.Current()
	if !ok {
		return nil
	}

	k := key{lesson: lesson, field: field}
	d.mu.Lock()
	if p, exists := d.pending[k]; exists {
		p.timer.Stop()
		delete(d.pending, k)
	}
	d.mu.Unlock()

	d.saveMu.Lock()
	defer d.saveMu.Unlock()
	return d.store.SaveLessonField(ctx, id.Key, lesson, field, value)
}

func (d *Debounced) schedule(k key, save func(ctx context.Context, username string) error) {
	if _, ok := d.ident.Current(); !ok {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	if p, exists := d.pending[k]; exists {
		p.timer.Stop()
	}

	p := &pending{save: save}
	p.timer = time.AfterFunc(d.delay, func() { d.fire(k, p) })
	d.pending[k] = p
}

// fire runs when a debounce timer elapses. The entry may already have
// been replaced or flushed; in that case this fire is stale and skipped.
func (d *Debounced) fire(k key, p *pending) {
	d.mu.Lock()
	if d.pending[k] != p {
		d.mu.Unlock()
		return
	}
	delete(d.pending, k)
	d.wg.Add(1)
	d.mu.Unlock()
	defer d.wg.Done()

	d.run(k, p)
}

func (d *Debounced) run(k key, p *pending) {
	id, ok := d.ident.Current()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	d.saveMu.Lock()
	err := p.save(ctx, id.Key)
	d.saveMu.Unlock()

	if err != nil {
		// Saves are best effort: the in-memory state stays authoritative
		// and a later edit will retry the field.
		d.log.Warn("save failed",
			slog.Int("lesson", k.lesson),
			slog.String("field", k.field),
			slog.Any("error", err))
	}
}

// Flush fires every queued save immediately and waits for completion.
func (d *Debounced) Flush() {
	d.mu.Lock()
	drained := make(map[key]*pending, len(d.pending))
	for k, p := range d.pending {
		p.timer.Stop()
		drained[k] = p
	}
	clear(d.pending)
	d.mu.Unlock()

	for k, p := range drained {
		d.run(k, p)
	}
	d.wg.Wait()
}

// Close flushes pending saves and rejects any further scheduling.
func (d *Debounced) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.Flush()
}
