package appointment

import (
	"context"

	"github.com/BruksfildServices01/rdv-service/internal/audit"
	domain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in AppointmentInput,
) (*models.Appointment, error) {

	ap := &models.Appointment{
		Status: string(domain.InitialStatus()),
	}
	if err := in.applyTo(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, "appointment_created", entity, ap.ID, map[string]any{
		"type":    ap.Type,
		"cabinet": ap.Cabinet,
	})

	return ap, nil
}
