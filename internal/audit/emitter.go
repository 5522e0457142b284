// Package audit provides best-effort, fire-and-forget emission of audit
// events to the backend audit trail. Callers enqueue events and move on;
// delivery happens on a background worker, and a delivery failure of any
// kind is reported to the diagnostic log only. A primary operation must
// never fail or stall because its audit event did.
package audit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/miradorhq/mirador/pkg/api"
	"github.com/miradorhq/mirador/pkg/types"
)

// defaultQueueSize bounds the in-flight event queue. When the queue is
// full new events are dropped, not blocked on.
const defaultQueueSize = 64

// deliveryTimeout bounds a single delivery attempt. There are no retries;
// the trail is best-effort by contract.
const deliveryTimeout = 10 * time.Second

// Sink is the delivery target for audit events. It is satisfied by
// surveyapi.AuditAPI; tests substitute a fake.
type Sink interface {
	LogByName(ctx context.Context, entry api.AuditLogByName) (*api.AuditRecord, error)
}

// Emitter queues audit events onto a bounded channel consumed by a single
// background worker.
type Emitter struct {
	sink   Sink
	events chan api.AuditLogByName
	done   chan struct{}
	logger zerolog.Logger

	mu      sync.Mutex
	closed  bool
	dropped atomic.Uint64
}

// Options configures an Emitter.
type Options struct {
	QueueSize int             // event queue capacity, defaultQueueSize when zero
	Logger    *zerolog.Logger // diagnostic logger, global logger when nil
}

// NewEmitter starts an emitter delivering to the given sink. The returned
// emitter must be closed to flush queued events before process exit.
func NewEmitter(sink Sink, opts ...Options) *Emitter {
	o := Options{}
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.QueueSize <= 0 {
		o.QueueSize = defaultQueueSize
	}
	logger := log.Logger
	if o.Logger != nil {
		logger = *o.Logger
	}

	e := &Emitter{
		sink:   sink,
		events: make(chan api.AuditLogByName, o.QueueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
	go e.run()
	return e
}

// Log enqueues an audit event. It never blocks and never returns an error:
// when the queue is full, or the emitter has been closed, the event is
// dropped and counted. schoolID may be nil when the action has no school
// context.
func (e *Emitter) Log(actionType, description string, schoolID *int) {
	entry := api.AuditLogByName{
		ActionTypeName: actionType,
		Description:    description,
		SchoolID:       types.NullInt64(),
	}
	if schoolID != nil {
		entry.SchoolID = types.NullableInt64From(int64(*schoolID))
	}

	// the mutex orders Log against Close: the channel is only closed
	// while holding it, so the send below can never hit a closed channel
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		e.dropped.Add(1)
		e.logger.Warn().
			Str("action_type", actionType).
			Msg("audit emitter closed, event dropped")
		return
	}

	select {
	case e.events <- entry:
	default:
		e.dropped.Add(1)
		e.logger.Warn().
			Str("action_type", actionType).
			Msg("audit queue full, event dropped")
	}
}

// Dropped returns the number of events discarded because the queue was
// full.
func (e *Emitter) Dropped() uint64 {
	return e.dropped.Load()
}

// Close stops accepting events and waits for the worker to drain the
// queue, bounded by ctx. Safe to call more than once.
func (e *Emitter) Close(ctx context.Context) error {
	e.mu.Lock()
	if !e.closed {
		e.closed = true
		close(e.events)
	}
	e.mu.Unlock()
	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Emitter) run() {
	defer close(e.done)
	for entry := range e.events {
		e.deliver(entry)
	}
}

func (e *Emitter) deliver(entry api.AuditLogByName) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	if _, err := e.sink.LogByName(ctx, entry); err != nil {
		// failure is diagnostic only, the event is gone
		data, merr := jsoniter.Marshal(entry)
		if merr != nil {
			data = []byte("{}")
		}
		e.logger.Error().
			Err(err).
			RawJSON("event", data).
			Msg("failed to deliver audit event")
	}
}
