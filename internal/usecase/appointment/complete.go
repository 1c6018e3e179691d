package appointment

import (
	"context"

	"github.com/BruksfildServices01/rdv-service/internal/audit"
	domain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	"github.com/BruksfildServices01/rdv-service/internal/metrics"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   Clock
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
		now:   defaultClock,
	}
}

// Execute marks the appointment Effectué and returns the GRC summary.
// A rejected attempt leaves the stored row untouched.
func (uc *CompleteAppointment) WithClock(now Clock) *CompleteAppointment {
	uc.now = now
	return uc
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, string, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, "", err
	}

	from := ap.Status
	if err := domain.Complete(ap, uc.now()); err != nil {
		return nil, "", rejected(err)
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, "", err
	}

	metrics.RecordTransition(from, ap.Status)
	uc.audit.Record(ctx, "appointment_completed", entity, ap.ID, nil)

	return ap, domain.Summary(ap), nil
}
