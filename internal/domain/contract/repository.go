package contract

import (
	"context"

	"github.com/BruksfildServices01/rdv-service/internal/models"
)

type Repository interface {
	// CreateForAppointment inserts c and links it to the appointment.
	// It fails with a conflict when the appointment is already linked.
	CreateForAppointment(
		ctx context.Context,
		c *models.Contract,
		appointmentID uint,
	) error

	GetContract(
		ctx context.Context,
		id uint,
	) (*models.Contract, error)

	UpdateContract(
		ctx context.Context,
		c *models.Contract,
	) error

	ListContracts(
		ctx context.Context,
	) ([]models.Contract, error)
}
