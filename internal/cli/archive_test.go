package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/rdv-service/internal/app"
	infraRepo "github.com/BruksfildServices01/rdv-service/internal/infra/repository"
	"github.com/BruksfildServices01/rdv-service/internal/logger"
	"github.com/BruksfildServices01/rdv-service/internal/models"
	"github.com/BruksfildServices01/rdv-service/internal/testutil"
	ucAppointment "github.com/BruksfildServices01/rdv-service/internal/usecase/appointment"
)

func TestArchivePreviousMonthCmd(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	ap := testutil.Appointment(t, db, models.Appointment{Status: "Effectué", Date: testutil.Day(now, -30)})

	repo := infraRepo.NewAppointmentGormRepository(db)
	open := func(context.Context) (*app.App, error) {
		return &app.App{
			DB:       db,
			Log:      logger.Discard(),
			Archiver: ucAppointment.NewArchivePreviousMonth(repo, nil, nil).WithClock(func() time.Time { return now }),
		}, nil
	}

	run := func(args ...string) string {
		var out bytes.Buffer
		cmd := ArchivePreviousMonthCmd(open)
		cmd.SetOut(&out)
		cmd.SetArgs(args)
		require.NoError(t, cmd.ExecuteContext(context.Background()))
		return out.String()
	}

	out := run("--dry-run")
	assert.Contains(t, out, "[DRY RUN] 1 appointment(s)")
	assert.Contains(t, out, "Boundary: 2026-10-01")

	var got models.Appointment
	require.NoError(t, db.First(&got, ap.ID).Error)
	assert.False(t, got.Archived)

	out = run()
	assert.Contains(t, out, "1 appointment(s) archived")

	require.NoError(t, db.First(&got, ap.ID).Error)
	assert.True(t, got.Archived)
	assert.Equal(t, "Effectué", got.Status)
}

func TestMigrateCmd(t *testing.T) {
	db := testutil.NewDB(t)
	open := func(context.Context) (*app.App, error) {
		return &app.App{DB: db, Log: logger.Discard()}, nil
	}

	var out bytes.Buffer
	cmd := MigrateCmd(open)
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Schema up to date")
}
