package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/rdv-service/internal/audit"
	domain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	"github.com/BruksfildServices01/rdv-service/internal/metrics"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

type ArchiveAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewArchiveAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ArchiveAppointment {
	return &ArchiveAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Archive and Unarchive are unconditional and never touch the status.
func (uc *ArchiveAppointment) Archive(ctx context.Context, id uint) (*models.Appointment, error) {
	return uc.set(ctx, id, true)
}

func (uc *ArchiveAppointment) Unarchive(ctx context.Context, id uint) (*models.Appointment, error) {
	return uc.set(ctx, id, false)
}

func (uc *ArchiveAppointment) set(ctx context.Context, id uint, archived bool) (*models.Appointment, error) {
	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	action := "appointment_archived"
	if archived {
		domain.Archive(ap)
	} else {
		domain.Unarchive(ap)
		action = "appointment_unarchived"
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, action, entity, ap.ID, nil)
	return ap, nil
}

type archiveNotifier interface {
	ArchiveDone(ctx context.Context, trigger string, count int64)
}

type ArchiveResult struct {
	Boundary time.Time `json:"boundary"`
	IDs      []uint    `json:"ids"`
	Count    int64     `json:"count"`
	DryRun   bool      `json:"dry_run"`
}

// ArchivePreviousMonth is the bulk policy shared by the manual action, the
// nightly sweep and the CLI.
type ArchivePreviousMonth struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify archiveNotifier
	now    Clock
}

func NewArchivePreviousMonth(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notify archiveNotifier,
) *ArchivePreviousMonth {
	return &ArchivePreviousMonth{
		repo:   repo,
		audit:  audit,
		notify: notify,
		now:    defaultClock,
	}
}

// WithClock replaces the time source.
func (uc *ArchivePreviousMonth) WithClock(now Clock) *ArchivePreviousMonth {
	uc.now = now
	return uc
}

func (uc *ArchivePreviousMonth) Execute(
	ctx context.Context,
	trigger string,
	dryRun bool,
) (*ArchiveResult, error) {

	boundary := domain.ArchiveBoundary(uc.now())

	candidates, err := uc.repo.ListArchiveCandidates(ctx, boundary)
	if err != nil {
		return nil, err
	}

	res := &ArchiveResult{
		Boundary: boundary,
		IDs:      domain.SelectArchivable(candidates, boundary),
		DryRun:   dryRun,
	}

	if dryRun {
		res.Count = int64(len(res.IDs))
		return res, nil
	}

	var n int64
	if len(res.IDs) > 0 {
		if n, err = uc.repo.ArchiveAppointments(ctx, res.IDs); err != nil {
			return nil, err
		}
	}
	res.Count = n

	metrics.RecordArchiveRun(trigger, n)
	if n == 0 {
		return res, nil
	}

	if uc.notify != nil {
		uc.notify.ArchiveDone(ctx, trigger, n)
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   "appointments_bulk_archived",
		Entity:   entity,
		Metadata: map[string]any{
			"trigger":  trigger,
			"count":    n,
			"boundary": boundary.Format("2006-01-02"),
		},
	})

	return res, nil
}
