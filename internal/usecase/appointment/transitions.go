package appointment

import (
	"context"

	"github.com/BruksfildServices01/rdv-service/internal/audit"
	domain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	"github.com/BruksfildServices01/rdv-service/internal/metrics"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

type ReplanifyAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReplanifyAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ReplanifyAppointment {
	return &ReplanifyAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ReplanifyAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	if err := domain.Replanify(ap); err != nil {
		return nil, rejected(err)
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	metrics.RecordTransition(from, ap.Status)
	uc.audit.Record(ctx, "appointment_replanified", entity, ap.ID, nil)

	return ap, nil
}

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   Clock
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		now:   defaultClock,
	}
}

func (uc *CancelAppointment) WithClock(now Clock) *CancelAppointment {
	uc.now = now
	return uc
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	if err := domain.Cancel(ap, uc.now()); err != nil {
		return nil, rejected(err)
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	metrics.RecordTransition(from, ap.Status)
	uc.audit.Record(ctx, "appointment_cancelled", entity, ap.ID, nil)

	return ap, nil
}

// SetAppointmentStatus is the administrative overwrite. It bypasses the
// state machine and the validation rules; callers gate it by role.
type SetAppointmentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   Clock
}

func NewSetAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetAppointmentStatus {
	return &SetAppointmentStatus{
		repo:  repo,
		audit: audit,
		now:   defaultClock,
	}
}

func (uc *SetAppointmentStatus) WithClock(now Clock) *SetAppointmentStatus {
	uc.now = now
	return uc
}

func (uc *SetAppointmentStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	status string,
) (*models.Appointment, error) {

	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	domain.SetStatus(ap, next, uc.now())

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	metrics.RecordTransition(from, ap.Status)
	uc.audit.Record(ctx, "appointment_status_set", entity, ap.ID, map[string]string{
		"from": from,
		"to":   ap.Status,
	})

	return ap, nil
}
