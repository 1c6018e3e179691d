package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/rdv-service/internal/cache"
	domain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

const listCachePrefix = "rdv:list:"

// CachedAppointmentRepository serves list views from a TTL cache and drops
// the cached lists on every successful write. Cache failures degrade to the
// inner repository.
type CachedAppointmentRepository struct {
	domain.Repository

	store cache.Store
	ttl   time.Duration
	log   logrus.FieldLogger
}

func NewCachedAppointmentRepository(
	inner domain.Repository,
	store cache.Store,
	ttl time.Duration,
	log logrus.FieldLogger,
) *CachedAppointmentRepository {
	return &CachedAppointmentRepository{
		Repository: inner,
		store:      store,
		ttl:        ttl,
		log:        log,
	}
}

func listKey(f domain.ListFilter) string {
	b, _ := json.Marshal(f)
	return listCachePrefix + string(b)
}

func (r *CachedAppointmentRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	key := listKey(f)

	if raw, ok, err := r.store.Get(ctx, key); err != nil {
		r.log.WithError(err).Warn("list cache read failed")
	} else if ok {
		var aps []models.Appointment
		if err := json.Unmarshal(raw, &aps); err == nil {
			return aps, nil
		}
	}

	aps, err := r.Repository.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(aps); err == nil {
		if err := r.store.Set(ctx, key, raw, r.ttl); err != nil {
			r.log.WithError(err).Warn("list cache write failed")
		}
	}

	return aps, nil
}

// Invalidate drops every cached list.
func (r *CachedAppointmentRepository) Invalidate(ctx context.Context) error {
	if err := r.store.Invalidate(ctx, listCachePrefix); err != nil {
		r.log.WithError(err).Warn("list cache invalidation failed")
		return err
	}
	return nil
}

func (r *CachedAppointmentRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if err := r.Repository.CreateAppointment(ctx, ap); err != nil {
		return err
	}
	_ = r.Invalidate(ctx)
	return nil
}

func (r *CachedAppointmentRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if err := r.Repository.UpdateAppointment(ctx, ap); err != nil {
		return err
	}
	_ = r.Invalidate(ctx)
	return nil
}

func (r *CachedAppointmentRepository) DeleteAppointment(ctx context.Context, id uint) error {
	if err := r.Repository.DeleteAppointment(ctx, id); err != nil {
		return err
	}
	_ = r.Invalidate(ctx)
	return nil
}

func (r *CachedAppointmentRepository) ArchiveAppointments(ctx context.Context, ids []uint) (int64, error) {
	n, err := r.Repository.ArchiveAppointments(ctx, ids)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		_ = r.Invalidate(ctx)
	}
	return n, nil
}

var _ domain.Repository = (*CachedAppointmentRepository)(nil)
