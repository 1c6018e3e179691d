package appointment

import (
	"strings"

	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

// ===============================
// Validation Rules
// ===============================

// CheckPractitioners is rule A.
func CheckPractitioners(ap *models.Appointment) error {
	if !RequiresPractitioners(Type(ap.Type)) {
		return nil
	}
	for _, p := range ap.Praticiens {
		if strings.TrimSpace(p.Prenom) != "" || strings.TrimSpace(p.Nom) != "" {
			return nil
		}
	}
	return httperr.ErrValidation(
		"practitioners_required",
		"Au moins un praticien doit être renseigné pour ce type de RDV.",
		"praticiens",
	)
}

// CheckEmail is rule B.
func CheckEmail(ap *models.Appointment) error {
	if !RequiresEmail(Type(ap.Type)) {
		return nil
	}
	if strings.TrimSpace(ap.Email) == "" {
		return httperr.ErrValidation(
			"email_required",
			"L'email du cabinet est obligatoire pour envoyer le contrat.",
			"email",
		)
	}
	return nil
}

// CheckChecklist is rule C: when a template exists the treatment form
// must have been used before completion, otherwise checklist state is lost.
func CheckChecklist(ap *models.Appointment) error {
	if !HasChecklist(Type(ap.Type)) {
		return nil
	}
	if !ap.Notes.Data().ChecklistEngaged {
		return httperr.ErrValidation(
			"treatment_required",
			"Veuillez compléter la fiche de traitement (checklist) avant de terminer ce RDV.",
			"checklist",
		)
	}
	return nil
}

func ValidateCompletion(ap *models.Appointment) error {
	for _, rule := range []func(*models.Appointment) error{
		CheckPractitioners,
		CheckEmail,
		CheckChecklist,
	} {
		if err := rule(ap); err != nil {
			return err
		}
	}
	return nil
}

func ValidateInvoicing(ap *models.Appointment) error {
	if err := CheckPractitioners(ap); err != nil {
		return err
	}
	return CheckEmail(ap)
}
