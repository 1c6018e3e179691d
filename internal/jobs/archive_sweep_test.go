package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/rdv-service/internal/logger"
	usecase "github.com/BruksfildServices01/rdv-service/internal/usecase/appointment"
)

type fakeArchiver struct {
	calls   atomic.Int32
	trigger string
	count   int64
	err     error
}

func (f *fakeArchiver) Execute(_ context.Context, trigger string, dryRun bool) (*usecase.ArchiveResult, error) {
	f.calls.Add(1)
	f.trigger = trigger
	if f.err != nil {
		return nil, f.err
	}
	return &usecase.ArchiveResult{Count: f.count, DryRun: dryRun}, nil
}

func TestNewArchiveSweep_RejectsBadSchedule(t *testing.T) {
	_, err := NewArchiveSweep("every night", time.UTC, &fakeArchiver{}, logger.Discard())
	assert.Error(t, err)
}

func TestArchiveSweep_RunOnce(t *testing.T) {
	a := &fakeArchiver{count: 4}
	s, err := NewArchiveSweep("0 0 * * *", time.UTC, a, logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, int64(4), s.RunOnce(context.Background()))
	assert.Equal(t, TriggerCron, a.trigger)

	a.err = errors.New("db down")
	assert.Zero(t, s.RunOnce(context.Background()))
	assert.Equal(t, int32(2), a.calls.Load())
}

func TestArchiveSweep_ScheduleInLocation(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	s, err := NewArchiveSweep("0 0 * * *", paris, &fakeArchiver{}, logger.Discard())
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	next := s.Next().In(paris)
	assert.Equal(t, 0, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.After(time.Now()))
}
