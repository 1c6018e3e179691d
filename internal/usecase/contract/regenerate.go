package contract

import (
	"context"
	"time"

	"github.com/BruksfildServices01/rdv-service/internal/audit"
	apdomain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	domain "github.com/BruksfildServices01/rdv-service/internal/domain/contract"
	"github.com/BruksfildServices01/rdv-service/internal/document"
	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/metrics"
	"github.com/BruksfildServices01/rdv-service/internal/models"
	"github.com/BruksfildServices01/rdv-service/internal/timezone"
)

// RegenerateContract refreshes the snapshot of the linked contract from its
// appointment and renders a new document. The contract id and price stay.
type RegenerateContract struct {
	appointments apdomain.Repository
	contracts    domain.Repository
	docs         document.Store
	audit        *audit.Dispatcher
	now          func() time.Time
}

func NewRegenerateContract(
	appointments apdomain.Repository,
	contracts domain.Repository,
	docs document.Store,
	audit *audit.Dispatcher,
) *RegenerateContract {
	return &RegenerateContract{
		appointments: appointments,
		contracts:    contracts,
		docs:         docs,
		audit:        audit,
		now:          timezone.Now,
	}
}

func (uc *RegenerateContract) WithClock(now func() time.Time) *RegenerateContract {
	uc.now = now
	return uc
}

func (uc *RegenerateContract) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Contract, error) {

	ap, err := uc.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if !ap.HasContract() {
		return nil, httperr.ErrNotFound("contract_not_linked", "Aucun contrat n'est lié à ce RDV.")
	}

	if missing := domain.MissingAddressFields(ap); len(missing) > 0 {
		return nil, httperr.ErrValidation(
			"missing_address_fields",
			"Adresse, code postal et ville sont nécessaires pour générer le contrat.",
			missing...,
		)
	}

	c, err := uc.contracts.GetContract(ctx, *ap.ContractID)
	if err != nil {
		return nil, err
	}

	domain.Refresh(c, ap)
	if err := render(ctx, uc.docs, c, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.contracts.UpdateContract(ctx, c); err != nil {
		return nil, err
	}

	metrics.RecordContractGenerated("regenerate")
	uc.audit.Record(ctx, "contract_regenerated", entity, c.ID, map[string]any{
		"appointment_id": ap.ID,
		"document_key":   c.DocumentKey,
	})

	return c, nil
}
