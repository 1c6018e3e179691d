package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

func installation() *models.Appointment {
	return &models.Appointment{
		ID:         4,
		Cabinet:    "Cabinet Martin",
		Type:       "Installation serveur",
		Address:    "3 rue des Lilas",
		PostalCode: "69003",
		City:       "Lyon",
		Praticiens: datatypes.JSONSlice[models.Practitioner]{{Prenom: "Jean", Nom: "Dupont"}},
	}
}

func TestCanCreate_AlreadyLinked(t *testing.T) {
	ap := installation()
	id := uint(1)
	ap.ContractID = &id

	err := CanCreate(ap, 1200)

	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
}

func TestCanCreate_MissingAddress(t *testing.T) {
	ap := installation()
	ap.Address = ""
	ap.City = " "

	err := CanCreate(ap, 1200)

	e, ok := httperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "missing_address_fields", e.Code)
	assert.Equal(t, []string{"address", "city"}, e.Fields)
}

func TestFromAppointment(t *testing.T) {
	ap := installation()

	c := FromAppointment(ap, 1500)

	require.NotNil(t, c.AppointmentID)
	assert.Equal(t, uint(4), *c.AppointmentID)
	assert.Equal(t, "Cabinet Martin", c.Cabinet)
	assert.Equal(t, string(StatusDraft), c.Status)
	assert.Equal(t, 1500.0, c.Price)
	assert.Len(t, c.Praticiens, 1)

	// the snapshot must not share storage with the appointment
	ap.Praticiens[0].Nom = "Durand"
	assert.Equal(t, "Dupont", c.Praticiens[0].Nom)
}

func TestCanMoveTo(t *testing.T) {
	assert.NoError(t, CanMoveTo(StatusDraft, StatusSent))
	assert.NoError(t, CanMoveTo(StatusSent, StatusReceived))
	assert.Error(t, CanMoveTo(StatusSigned, StatusSent))
	assert.Error(t, CanMoveTo(StatusSent, StatusSent))

	_, err := ParseStatus("Annulé")
	assert.Error(t, err)
}
