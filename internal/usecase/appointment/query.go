package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, id uint) (*models.Appointment, error) {
	return uc.repo.GetAppointment(ctx, id)
}

// Summary recomputes the GRC text of an appointment.
func (uc *GetAppointment) Summary(ctx context.Context, id uint) (string, error) {
	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return "", err
	}
	return domain.Summary(ap), nil
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	aps, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}
	if aps == nil {
		aps = []models.Appointment{}
	}
	return aps, nil
}
