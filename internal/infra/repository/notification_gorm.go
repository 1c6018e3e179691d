package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/rdv-service/internal/models"
	"github.com/BruksfildServices01/rdv-service/internal/notify"
)

const (
	notificationNotFound    = "notification_not_found"
	notificationNotFoundMsg = "Notification introuvable."
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) CreateNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	return translate(r.db.WithContext(ctx).Create(n).Error, notificationNotFound, notificationNotFoundMsg)
}

func (r *NotificationGormRepository) HasNotification(
	ctx context.Context,
	appointmentID uint,
	kind string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("appointment_id = ? AND kind = ?", appointmentID, kind).
		Count(&count).Error; err != nil {
		return false, translate(err, notificationNotFound, notificationNotFoundMsg)
	}
	return count > 0, nil
}

func (r *NotificationGormRepository) ListNotifications(
	ctx context.Context,
	unreadOnly bool,
	limit int,
) ([]models.Notification, error) {

	q := r.db.WithContext(ctx).Model(&models.Notification{})
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var out []models.Notification
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, translate(err, notificationNotFound, notificationNotFoundMsg)
	}
	return out, nil
}

func (r *NotificationGormRepository) MarkRead(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return translate(res.Error, notificationNotFound, notificationNotFoundMsg)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, notificationNotFound, notificationNotFoundMsg)
	}
	return nil
}

func (r *NotificationGormRepository) MarkAllRead(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("is_read = ?", false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, translate(res.Error, notificationNotFound, notificationNotFoundMsg)
	}
	return res.RowsAffected, nil
}

var _ notify.Repository = (*NotificationGormRepository)(nil)
