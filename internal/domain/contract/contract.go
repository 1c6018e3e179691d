package contract

import (
	"strings"

	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

// MissingAddressFields lists the appointment fields a contract cannot do without.
func MissingAddressFields(ap *models.Appointment) []string {
	var missing []string
	if strings.TrimSpace(ap.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(ap.PostalCode) == "" {
		missing = append(missing, "postal_code")
	}
	if strings.TrimSpace(ap.City) == "" {
		missing = append(missing, "city")
	}
	return missing
}

// CanCreate checks the linkage preconditions of a new contract.
func CanCreate(ap *models.Appointment, price float64) error {
	if ap.HasContract() {
		return httperr.ErrConflict("contract_already_linked", "Un contrat est déjà lié à ce RDV.")
	}
	if price < 0 {
		return httperr.ErrValidation("invalid_price", "Le prix doit être positif.", "price")
	}
	if missing := MissingAddressFields(ap); len(missing) > 0 {
		return httperr.ErrValidation(
			"missing_address_fields",
			"Adresse, code postal et ville sont nécessaires pour générer le contrat.",
			missing...,
		)
	}
	return nil
}

func FromAppointment(ap *models.Appointment, price float64) *models.Contract {
	c := &models.Contract{
		Price:  price,
		Status: string(StatusDraft),
	}
	if ap.ID != 0 {
		id := ap.ID
		c.AppointmentID = &id
	}
	Refresh(c, ap)
	return c
}

// Refresh copies the appointment's current values into the contract snapshot.
// Price, status and identity are left alone.
func Refresh(c *models.Contract, ap *models.Appointment) {
	c.Cabinet = ap.Cabinet
	c.Address = ap.Address
	c.PostalCode = ap.PostalCode
	c.City = ap.City
	c.Praticiens = append(c.Praticiens[:0:0], ap.Praticiens...)
}
