package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	domain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	"github.com/BruksfildServices01/rdv-service/internal/models"
	"github.com/BruksfildServices01/rdv-service/internal/timezone"
)

type appointmentLister interface {
	ListAppointments(ctx context.Context, f domain.ListFilter) ([]models.Appointment, error)
}

// Reminder creates one "upcoming" notification per planned appointment
// starting within the lead window. Each instance owns its own ticker.
type Reminder struct {
	appointments  appointmentLister
	notifications Repository

	interval time.Duration
	lead     time.Duration
	loc      *time.Location
	now      func() time.Time
	log      logrus.FieldLogger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewReminder(
	appointments appointmentLister,
	notifications Repository,
	interval time.Duration,
	lead time.Duration,
	loc *time.Location,
	log logrus.FieldLogger,
) *Reminder {
	return &Reminder{
		appointments:  appointments,
		notifications: notifications,
		interval:      interval,
		lead:          lead,
		loc:           loc,
		now:           time.Now,
		log:           log,
	}
}

// Scan runs one pass and returns how many notifications were created.
func (r *Reminder) Scan(ctx context.Context) (int, error) {
	now := r.now().In(r.loc)
	until := now.Add(r.lead)

	from := domain.DateOnly(now)
	to := domain.DateOnly(until)

	aps, err := r.appointments.ListAppointments(ctx, domain.ListFilter{
		Status: string(domain.StatusPlanned),
		From:   &from,
		To:     &to,
	})
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range aps {
		ap := &aps[i]

		start, err := timezone.At(ap.Date, ap.Time, r.loc)
		if err != nil || start.Before(now) || start.After(until) {
			continue
		}

		seen, err := r.notifications.HasNotification(ctx, ap.ID, KindUpcoming)
		if err != nil {
			return created, err
		}
		if seen {
			continue
		}

		id := ap.ID
		n := &models.Notification{
			Kind:          KindUpcoming,
			Title:         fmt.Sprintf("RDV %s à %s", ap.Type, ap.Time),
			Body:          fmt.Sprintf("%s - %s", ap.Cabinet, ap.City),
			AppointmentID: &id,
		}
		if err := r.notifications.CreateNotification(ctx, n); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

func (r *Reminder) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(ctx, r.done)
}

func (r *Reminder) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	t := time.NewTicker(r.interval)
	defer t.Stop()

	for {
		if n, err := r.Scan(ctx); err != nil {
			r.log.WithError(err).Warn("reminder scan failed")
		} else if n > 0 {
			r.log.WithField("created", n).Info("upcoming appointment reminders created")
		}

		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (r *Reminder) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
