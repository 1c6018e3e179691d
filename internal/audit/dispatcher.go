package audit

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type sink interface {
	Log(ctx context.Context, ev Event) error
}

// Dispatcher writes audit events off the request path.
// A nil *Dispatcher is valid and drops everything.
type Dispatcher struct {
	sink  sink
	log   logrus.FieldLogger
	queue chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(s sink, log logrus.FieldLogger) *Dispatcher {
	d := &Dispatcher{
		sink:  s,
		log:   log,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			d.log.WithError(err).WithField("action", ev.Action).Warn("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		// queue full: drop rather than slow the request down
		d.log.WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}

// Record dispatches an event attributed to the actor carried by ctx.
func (d *Dispatcher) Record(ctx context.Context, action, entity string, entityID uint, meta any) {
	if d == nil {
		return
	}

	id := entityID
	d.Dispatch(Event{
		UserID:   ActorFrom(ctx),
		Action:   action,
		Entity:   entity,
		EntityID: &id,
		Metadata: meta,
	})
}

// Close drains pending events and stops the worker.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		close(d.queue)
		<-d.done
	})
}
