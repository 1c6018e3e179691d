// Package jobs runs the scheduled background work of the service.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	usecase "github.com/BruksfildServices01/rdv-service/internal/usecase/appointment"
)

const TriggerCron = "cron"

type archiver interface {
	Execute(ctx context.Context, trigger string, dryRun bool) (*usecase.ArchiveResult, error)
}

// ArchiveSweep runs the previous-month archive policy on a cron schedule,
// midnight in the service timezone by default.
type ArchiveSweep struct {
	archiver archiver
	log      logrus.FieldLogger
	timeout  time.Duration

	mu   sync.Mutex
	cron *cron.Cron
}

func NewArchiveSweep(
	spec string,
	loc *time.Location,
	archiver archiver,
	log logrus.FieldLogger,
) (*ArchiveSweep, error) {

	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("archive schedule %q: %w", spec, err)
	}

	s := &ArchiveSweep{
		archiver: archiver,
		log:      log,
		timeout:  5 * time.Minute,
		cron:     cron.New(cron.WithLocation(loc)),
	}

	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, err
	}
	return s, nil
}

// RunOnce applies the policy immediately. Errors are logged; the next
// scheduled run retries naturally.
func (s *ArchiveSweep) RunOnce(ctx context.Context) int64 {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.archiver.Execute(ctx, TriggerCron, false)
	if err != nil {
		s.log.WithError(err).Error("nightly archive failed")
		return 0
	}

	s.log.WithFields(logrus.Fields{
		"archived": res.Count,
		"boundary": res.Boundary.Format("2006-01-02"),
	}).Info("nightly archive done")
	return res.Count
}

func (s *ArchiveSweep) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cron.Start()
}

// Stop prevents new runs and waits for a running one to finish.
func (s *ArchiveSweep) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	<-s.cron.Stop().Done()
}

// Next reports the next scheduled run, zero before Start.
func (s *ArchiveSweep) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
