package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/rdv-service/internal/domain/contract"
	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

const (
	contractNotFound    = "contract_not_found"
	contractNotFoundMsg = "Contrat introuvable."
)

type ContractGormRepository struct {
	db *gorm.DB
}

func NewContractGormRepository(db *gorm.DB) *ContractGormRepository {
	return &ContractGormRepository{db: db}
}

// CreateForAppointment links with a conditional update so two concurrent
// requests can never both attach a contract to the same appointment.
func (r *ContractGormRepository) CreateForAppointment(
	ctx context.Context,
	c *models.Contract,
	appointmentID uint,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var ap models.Appointment
		if err := tx.Select("id").First(&ap, appointmentID).Error; err != nil {
			return translate(err, appointmentNotFound, appointmentNotFoundMsg)
		}

		if err := tx.Create(c).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND contract_id IS NULL", appointmentID).
			Update("contract_id", c.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrConflict("contract_already_linked", "Un contrat est déjà lié à ce RDV.")
		}

		return nil
	})

	if err != nil {
		c.ID = 0
		return translate(err, contractNotFound, contractNotFoundMsg)
	}
	return nil
}

func (r *ContractGormRepository) GetContract(
	ctx context.Context,
	id uint,
) (*models.Contract, error) {

	var c models.Contract
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, contractNotFound, contractNotFoundMsg)
	}
	return &c, nil
}

func (r *ContractGormRepository) UpdateContract(
	ctx context.Context,
	c *models.Contract,
) error {
	res := r.db.WithContext(ctx).Model(c).Select("*").Omit("created_at").Updates(c)
	if res.Error != nil {
		return translate(res.Error, contractNotFound, contractNotFoundMsg)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, contractNotFound, contractNotFoundMsg)
	}
	return nil
}

func (r *ContractGormRepository) ListContracts(
	ctx context.Context,
) ([]models.Contract, error) {

	var out []models.Contract
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, translate(err, contractNotFound, contractNotFoundMsg)
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*ContractGormRepository)(nil)
