package appointment

import (
	"context"

	"github.com/BruksfildServices01/rdv-service/internal/audit"
	domain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/metrics"
	"github.com/BruksfildServices01/rdv-service/internal/models"
	contractuc "github.com/BruksfildServices01/rdv-service/internal/usecase/contract"
)

const (
	DecisionNone   = ""
	DecisionCreate = "create"
	DecisionSkip   = "skip"
)

type contractCreator interface {
	Execute(ctx context.Context, appointmentID uint, in contractuc.CreateInput) (*models.Contract, error)
}

type InvoiceInput struct {
	ContractDecision string `json:"contract_decision"`
	contractuc.CreateInput
}

type InvoiceResult struct {
	Appointment           *models.Appointment `json:"appointment"`
	Contract              *models.Contract    `json:"contract,omitempty"`
	NeedsContractDecision bool                `json:"needs_contract_decision"`
}

type InvoiceAppointment struct {
	repo      domain.Repository
	contracts contractCreator
	audit     *audit.Dispatcher
	now       Clock
}

func NewInvoiceAppointment(
	repo domain.Repository,
	contracts contractCreator,
	audit *audit.Dispatcher,
) *InvoiceAppointment {
	return &InvoiceAppointment{
		repo:      repo,
		contracts: contracts,
		audit:     audit,
		now:       defaultClock,
	}
}

// Execute invoices the appointment. A server installation without contract
// first returns NeedsContractDecision, untouched, until the caller decides to
// create the contract or to go on without one.
func (uc *InvoiceAppointment) WithClock(now Clock) *InvoiceAppointment {
	uc.now = now
	return uc
}

func (uc *InvoiceAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	in InvoiceInput,
) (*InvoiceResult, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanInvoice(domain.Status(ap.Status)); err != nil {
		return nil, rejected(err)
	}
	if err := domain.ValidateInvoicing(ap); err != nil {
		return nil, rejected(err)
	}

	res := &InvoiceResult{}

	if domain.NeedsContractDecision(ap) {
		switch in.ContractDecision {
		case DecisionNone:
			res.Appointment = ap
			res.NeedsContractDecision = true
			return res, nil

		case DecisionCreate:
			c, err := uc.contracts.Execute(ctx, ap.ID, in.CreateInput)
			if err != nil {
				return nil, err
			}
			res.Contract = c

			// the link and any completed address were written by the contract flow
			if ap, err = uc.repo.GetAppointment(ctx, appointmentID); err != nil {
				return nil, err
			}

		case DecisionSkip:

		default:
			return nil, httperr.ErrValidation(
				"invalid_contract_decision",
				"Décision de contrat inconnue.",
				"contract_decision",
			)
		}
	}

	from := ap.Status
	if err := domain.Invoice(ap, uc.now()); err != nil {
		return nil, rejected(err)
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	metrics.RecordTransition(from, ap.Status)
	uc.audit.Record(ctx, "appointment_invoiced", entity, ap.ID, map[string]any{
		"contract_decision": in.ContractDecision,
	})

	res.Appointment = ap
	return res, nil
}
