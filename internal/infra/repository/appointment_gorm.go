package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

const (
	appointmentNotFound    = "appointment_not_found"
	appointmentNotFoundMsg = "RDV introuvable."
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// CRUD
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return translate(r.db.WithContext(ctx).Create(ap).Error, appointmentNotFound, appointmentNotFoundMsg)
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, translate(err, appointmentNotFound, appointmentNotFoundMsg)
	}
	return &ap, nil
}

// UpdateAppointment writes every column, last write wins. The contract link
// is owned by the contract repository and never written here.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	res := r.db.WithContext(ctx).Model(ap).Select("*").Omit("created_at", "contract_id").Updates(ap)
	if res.Error != nil {
		return translate(res.Error, appointmentNotFound, appointmentNotFoundMsg)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, appointmentNotFound, appointmentNotFoundMsg)
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return translate(res.Error, appointmentNotFound, appointmentNotFoundMsg)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, appointmentNotFound, appointmentNotFoundMsg)
	}
	return nil
}

// --------------------------------------------------
// Lists
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("archived = ?", f.Archived)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.From != nil {
		q = q.Where("scheduled_date >= ?", domain.DateOnly(*f.From))
	}
	if f.To != nil {
		q = q.Where("scheduled_date <= ?", domain.DateOnly(*f.To))
	}
	if query := strings.ToLower(strings.TrimSpace(f.Query)); query != "" {
		q = q.Where("LOWER(cabinet) LIKE ?", "%"+query+"%")
	}

	var aps []models.Appointment
	if err := q.
		Order("scheduled_date ASC").
		Order("scheduled_time ASC").
		Order("id ASC").
		Find(&aps).Error; err != nil {
		return nil, translate(err, appointmentNotFound, appointmentNotFoundMsg)
	}

	return aps, nil
}

// --------------------------------------------------
// Archive policy
// --------------------------------------------------

// ListArchiveCandidates narrows by status, date and flag; the type/contract
// exclusion is decided by the domain policy.
func (r *AppointmentGormRepository) ListArchiveCandidates(
	ctx context.Context,
	before time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"archived = ? AND status IN ? AND scheduled_date < ?",
			false,
			domain.ArchivableStatuses(),
			domain.DateOnly(before),
		).
		Order("scheduled_date ASC").
		Find(&aps).Error; err != nil {
		return nil, translate(err, appointmentNotFound, appointmentNotFoundMsg)
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ArchiveAppointments(
	ctx context.Context,
	ids []uint,
) (int64, error) {

	if len(ids) == 0 {
		return 0, nil
	}

	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Appointment{}).
			Where("id IN ? AND archived = ?", ids, false).
			Update("archived", true)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, translate(err, appointmentNotFound, appointmentNotFoundMsg)
	}

	return affected, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
