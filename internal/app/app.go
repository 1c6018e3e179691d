// Package app assembles the long-lived components shared by the HTTP server
// and the operator CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/rdv-service/internal/audit"
	"github.com/BruksfildServices01/rdv-service/internal/cache"
	"github.com/BruksfildServices01/rdv-service/internal/config"
	dbpkg "github.com/BruksfildServices01/rdv-service/internal/db"
	domain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	"github.com/BruksfildServices01/rdv-service/internal/document"
	infraRepo "github.com/BruksfildServices01/rdv-service/internal/infra/repository"
	"github.com/BruksfildServices01/rdv-service/internal/jobs"
	"github.com/BruksfildServices01/rdv-service/internal/notify"
	"github.com/BruksfildServices01/rdv-service/internal/routes"
	"github.com/BruksfildServices01/rdv-service/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/rdv-service/internal/usecase/appointment"
)

type App struct {
	Config *config.Config
	Log    logrus.FieldLogger
	DB     *gorm.DB
	Loc    *time.Location

	Cache         cache.Store
	Appointments  domain.Repository
	Documents     document.Store
	AuditLogger   *audit.Logger
	Audit         *audit.Dispatcher
	Notifications *notify.Service
	Archiver      *ucAppointment.ArchivePreviousMonth

	closers []func()
}

// New connects to the database and builds every shared component. Background
// workers are built but not started.
func New(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*App, error) {
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config: cfg,
		Log:    log,
		DB:     db,
		Loc:    timezone.Location(cfg.Timezone),
	}

	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, func() { _ = sqlDB.Close() })
	}

	a.Cache = a.buildCache(ctx)
	a.Documents = a.buildDocuments()

	a.Appointments = infraRepo.NewCachedAppointmentRepository(
		infraRepo.NewAppointmentGormRepository(db),
		a.Cache,
		cfg.ListCacheTTL,
		log,
	)

	a.AuditLogger = audit.New(db)
	a.Audit = audit.NewDispatcher(a.AuditLogger, log)
	a.Notifications = notify.NewService(infraRepo.NewNotificationGormRepository(db), log)
	a.Archiver = ucAppointment.NewArchivePreviousMonth(a.Appointments, a.Audit, a.Notifications).
		WithClock(timezone.Clock(a.Loc))

	return a, nil
}

func (a *App) buildCache(ctx context.Context) cache.Store {
	if a.Config.RedisURL != "" {
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		r, err := cache.DialRedis(dialCtx, a.Config.RedisURL)
		if err == nil {
			a.closers = append(a.closers, func() { _ = r.Close() })
			a.Log.Info("list cache: redis")
			return r
		}
		a.Log.WithError(err).Warn("redis unavailable, using in-memory list cache")
	}

	m := cache.NewMemory()
	m.Start(time.Minute)
	a.closers = append(a.closers, m.Stop)
	return m
}

func (a *App) buildDocuments() document.Store {
	if a.Config.S3Bucket == "" {
		a.Log.Warn("S3_BUCKET not set, contract documents are kept in memory")
		return document.NewMemoryStore()
	}
	return document.NewS3Store(document.S3Config{
		Bucket:    a.Config.S3Bucket,
		Region:    a.Config.S3Region,
		Endpoint:  a.Config.S3Endpoint,
		AccessKey: a.Config.S3AccessKey,
		SecretKey: a.Config.S3SecretKey,
	})
}

func (a *App) Migrate() error {
	return dbpkg.Migrate(a.DB)
}

func (a *App) Routes() routes.Deps {
	return routes.Deps{
		DB:            a.DB,
		Config:        a.Config,
		Log:           a.Log,
		Loc:           a.Loc,
		Appointments:  a.Appointments,
		Documents:     a.Documents,
		AuditLogger:   a.AuditLogger,
		Audit:         a.Audit,
		Notifications: a.Notifications,
		Archiver:      a.Archiver,
	}
}

func (a *App) Reminder() *notify.Reminder {
	return notify.NewReminder(
		a.Appointments,
		infraRepo.NewNotificationGormRepository(a.DB),
		a.Config.ReminderInterval,
		a.Config.ReminderLead,
		a.Loc,
		a.Log,
	)
}

func (a *App) ArchiveSweep() (*jobs.ArchiveSweep, error) {
	s, err := jobs.NewArchiveSweep(a.Config.ArchiveCron, a.Loc, a.Archiver, a.Log)
	if err != nil {
		return nil, fmt.Errorf("archive sweep: %w", err)
	}
	return s, nil
}

// Close flushes pending audit events then releases connections.
func (a *App) Close() {
	a.Audit.Close()
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
