package contract

import (
	"context"
	"time"

	"github.com/BruksfildServices01/rdv-service/internal/audit"
	domain "github.com/BruksfildServices01/rdv-service/internal/domain/contract"
	"github.com/BruksfildServices01/rdv-service/internal/models"
	"github.com/BruksfildServices01/rdv-service/internal/timezone"
)

type UpdateContractStatus struct {
	contracts domain.Repository
	audit     *audit.Dispatcher
	now       func() time.Time
}

func NewUpdateContractStatus(
	contracts domain.Repository,
	audit *audit.Dispatcher,
) *UpdateContractStatus {
	return &UpdateContractStatus{
		contracts: contracts,
		audit:     audit,
		now:       timezone.Now,
	}
}

func (uc *UpdateContractStatus) WithClock(now func() time.Time) *UpdateContractStatus {
	uc.now = now
	return uc
}

func (uc *UpdateContractStatus) Execute(
	ctx context.Context,
	contractID uint,
	status string,
) (*models.Contract, error) {

	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	c, err := uc.contracts.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	from := c.Status
	if err := domain.CanMoveTo(domain.Status(c.Status), next); err != nil {
		return nil, err
	}

	now := uc.now()
	c.Status = string(next)
	switch next {
	case domain.StatusSent:
		c.SentAt = &now
	case domain.StatusReceived:
		c.ReceivedAt = &now
	}

	if err := uc.contracts.UpdateContract(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, "contract_status_updated", entity, c.ID, map[string]string{
		"from": from,
		"to":   c.Status,
	})

	return c, nil
}
