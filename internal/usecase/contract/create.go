package contract

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/rdv-service/internal/audit"
	apdomain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	domain "github.com/BruksfildServices01/rdv-service/internal/domain/contract"
	"github.com/BruksfildServices01/rdv-service/internal/document"
	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/metrics"
	"github.com/BruksfildServices01/rdv-service/internal/models"
	"github.com/BruksfildServices01/rdv-service/internal/timezone"
	"github.com/BruksfildServices01/rdv-service/internal/validators"
)

const entity = "contract"

// CreateInput is the price of the new contract plus, optionally, the address
// fields the appointment was missing when creation was first attempted.
type CreateInput struct {
	Price      float64 `json:"price"`
	Address    *string `json:"address,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	City       *string `json:"city,omitempty"`
}

func (in CreateInput) hasAddress() bool {
	return in.Address != nil || in.PostalCode != nil || in.City != nil
}

// listInvalidator is implemented by caching appointment repositories. Linking
// a contract writes the appointment row outside the appointment repository.
type listInvalidator interface {
	Invalidate(ctx context.Context) error
}

type CreateContract struct {
	appointments apdomain.Repository
	contracts    domain.Repository
	docs         document.Store
	audit        *audit.Dispatcher
	now          func() time.Time
}

func NewCreateContract(
	appointments apdomain.Repository,
	contracts domain.Repository,
	docs document.Store,
	audit *audit.Dispatcher,
) *CreateContract {
	return &CreateContract{
		appointments: appointments,
		contracts:    contracts,
		docs:         docs,
		audit:        audit,
		now:          timezone.Now,
	}
}

func (uc *CreateContract) WithClock(now func() time.Time) *CreateContract {
	uc.now = now
	return uc
}

func (uc *CreateContract) Execute(
	ctx context.Context,
	appointmentID uint,
	in CreateInput,
) (*models.Contract, error) {

	ap, err := uc.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if ap.HasContract() {
		return nil, domain.CanCreate(ap, in.Price)
	}

	if in.hasAddress() {
		if err := completeAddress(ap, in); err != nil {
			return nil, err
		}
		if err := uc.appointments.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}
	}

	if err := domain.CanCreate(ap, in.Price); err != nil {
		return nil, err
	}

	c := domain.FromAppointment(ap, in.Price)
	if err := uc.contracts.CreateForAppointment(ctx, c, ap.ID); err != nil {
		return nil, err
	}
	invalidateLists(ctx, uc.appointments)

	uc.audit.Record(ctx, "contract_created", entity, c.ID, map[string]any{
		"appointment_id": ap.ID,
		"price":          c.Price,
	})

	// the link is committed: a failure from here on leaves a contract without document
	if err := render(ctx, uc.docs, c, uc.now()); err != nil {
		return c, documentPending(err)
	}
	if err := uc.contracts.UpdateContract(ctx, c); err != nil {
		return c, documentPending(err)
	}

	metrics.RecordContractGenerated("create")

	return c, nil
}

func completeAddress(ap *models.Appointment, in CreateInput) error {
	if in.PostalCode != nil {
		cp := strings.TrimSpace(*in.PostalCode)
		if cp != "" && !validators.IsPostalCode(cp) {
			return httperr.ErrValidation("invalid_postal_code", "Code postal invalide.", "postal_code")
		}
		ap.PostalCode = cp
	}
	if in.Address != nil {
		ap.Address = strings.TrimSpace(*in.Address)
	}
	if in.City != nil {
		ap.City = strings.TrimSpace(*in.City)
	}
	return nil
}

// documentPending reports a contract that exists and is linked but whose
// document still has to be produced through regenerate.
func documentPending(err error) error {
	return &httperr.Error{
		Kind:    httperr.KindTransport,
		Code:    "contract_document_pending",
		Message: "Contrat créé, document non généré. Relancez la régénération du contrat.",
		Err:     err,
	}
}

// render writes a fresh document for c and records its key on c.
func render(ctx context.Context, docs document.Store, c *models.Contract, now time.Time) error {
	data, err := document.RenderContract(c, now)
	if err != nil {
		return httperr.ErrTransport("document_render_failed", err)
	}

	key := document.ContractKey(c.ID)
	if err := docs.Put(ctx, key, data); err != nil {
		return err
	}

	c.DocumentKey = key
	c.GeneratedAt = &now
	return nil
}

func invalidateLists(ctx context.Context, repo apdomain.Repository) {
	if inv, ok := repo.(listInvalidator); ok {
		_ = inv.Invalidate(ctx)
	}
}
