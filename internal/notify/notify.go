package notify

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/rdv-service/internal/models"
)

const (
	KindUpcoming = "upcoming"
	KindArchive  = "archive"
)

type Repository interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	HasNotification(ctx context.Context, appointmentID uint, kind string) (bool, error)
	ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context) (int64, error)
}

type Service struct {
	repo Repository
	log  logrus.FieldLogger
}

func NewService(repo Repository, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) List(ctx context.Context, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListNotifications(ctx, unreadOnly, limit)
}

func (s *Service) MarkRead(ctx context.Context, id uint) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *Service) MarkAllRead(ctx context.Context) (int64, error) {
	return s.repo.MarkAllRead(ctx)
}

// ArchiveDone reports a bulk archive run. Failures are logged only: the
// archive itself already succeeded.
func (s *Service) ArchiveDone(ctx context.Context, trigger string, count int64) {
	if s == nil || count == 0 {
		return
	}

	n := &models.Notification{
		Kind:  KindArchive,
		Title: "Archivage des RDV",
		Body:  fmt.Sprintf("%d RDV du mois précédent archivé(s) (%s).", count, trigger),
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		s.log.WithError(err).Warn("archive notification not stored")
	}
}
