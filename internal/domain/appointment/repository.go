package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/rdv-service/internal/models"
)

// ListFilter drives list views. The zero value lists the active partition.
type ListFilter struct {
	Archived bool       `json:"archived"`
	Status   string     `json:"status,omitempty"`
	Type     string     `json:"type,omitempty"`
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
	Query    string     `json:"query,omitempty"`
}

type Repository interface {
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	// -------- Archive policy --------
	ListArchiveCandidates(
		ctx context.Context,
		before time.Time,
	) ([]models.Appointment, error)

	ArchiveAppointments(
		ctx context.Context,
		ids []uint,
	) (int64, error)
}
