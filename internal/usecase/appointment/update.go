package appointment

import (
	"context"
	"strings"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/rdv-service/internal/audit"
	domain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute edits the descriptive fields. Status, archive flag, contract link
// and treatment data are left untouched.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id uint,
	in AppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := in.applyTo(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, "appointment_updated", entity, ap.ID, nil)

	return ap, nil
}

// TreatmentInput is the "fiche de traitement": who was met, what was
// installed and how far the checklist got.
type TreatmentInput struct {
	Praticiens      []models.Practitioner  `json:"praticiens"`
	TechnicalFields map[string]string      `json:"technical_fields"`
	Checklist       []models.ChecklistItem `json:"checklist"`
	GeneralNotes    string                 `json:"general_notes"`
}

type UpdateTreatment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateTreatment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateTreatment {
	return &UpdateTreatment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateTreatment) Execute(
	ctx context.Context,
	id uint,
	in TreatmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	praticiens := datatypes.JSONSlice[models.Practitioner]{}
	for _, p := range in.Praticiens {
		p.Prenom = strings.TrimSpace(p.Prenom)
		p.Nom = strings.TrimSpace(p.Nom)
		if p.Prenom == "" && p.Nom == "" {
			continue
		}
		praticiens = append(praticiens, p)
	}
	ap.Praticiens = praticiens

	checklist := in.Checklist
	if checklist == nil {
		checklist = domain.NewChecklist(domain.Type(ap.Type))
	}

	ap.Notes = datatypes.NewJSONType(models.Notes{
		TechnicalFields:  in.TechnicalFields,
		GeneralNotes:     strings.TrimSpace(in.GeneralNotes),
		Checklist:        checklist,
		ChecklistEngaged: true,
	})

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, "appointment_treatment_updated", entity, ap.ID, map[string]any{
		"praticiens": len(praticiens),
	})

	return ap, nil
}

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, id uint) error {
	if err := uc.repo.DeleteAppointment(ctx, id); err != nil {
		return err
	}

	uc.audit.Record(ctx, "appointment_deleted", entity, id, nil)
	return nil
}
