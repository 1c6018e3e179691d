package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

func engaged(ap *models.Appointment) *models.Appointment {
	ap.Notes = datatypes.NewJSONType(models.Notes{
		Checklist:        NewChecklist(Type(ap.Type)),
		ChecklistEngaged: true,
	})
	return ap
}

func TestCheckPractitioners_RequiredTypes(t *testing.T) {
	for _, typ := range []Type{TypeServerInstall, TypeTraining, TypeDemo, TypeOther} {
		ap := &models.Appointment{Type: string(typ)}

		err := CheckPractitioners(ap)

		require.Error(t, err, typ)
		assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
		assert.True(t, httperr.Is(err, "practitioners_required"))
	}
}

func TestCheckPractitioners_BlankEntriesDoNotCount(t *testing.T) {
	ap := &models.Appointment{
		Type:       string(TypeDemo),
		Praticiens: datatypes.JSONSlice[models.Practitioner]{{Prenom: " ", Nom: ""}},
	}
	assert.Error(t, CheckPractitioners(ap))
}

func TestCheckPractitioners_OtherTypes(t *testing.T) {
	for _, typ := range []Type{TypeSecondaryInstall, TypeServerSwap, TypeDatabaseExport, TypeUpdate} {
		ap := &models.Appointment{Type: string(typ)}
		assert.NoError(t, CheckPractitioners(ap), typ)
	}
}

func TestCheckEmail(t *testing.T) {
	ap := &models.Appointment{Type: string(TypeServerInstall), Email: "  "}
	assert.True(t, httperr.Is(CheckEmail(ap), "email_required"))

	ap.Email = "a@b.fr"
	assert.NoError(t, CheckEmail(ap))

	assert.NoError(t, CheckEmail(&models.Appointment{Type: string(TypeTraining)}))
}

func TestCheckChecklist(t *testing.T) {
	ap := &models.Appointment{Type: string(TypeUpdate)}
	assert.True(t, httperr.Is(CheckChecklist(ap), "treatment_required"))

	assert.NoError(t, CheckChecklist(engaged(ap)))

	assert.NoError(t, CheckChecklist(&models.Appointment{Type: string(TypeDemo)}))
}

func TestValidateInvoicing_IgnoresChecklist(t *testing.T) {
	ap := &models.Appointment{
		Type:       string(TypeServerInstall),
		Email:      "a@b.fr",
		Praticiens: datatypes.JSONSlice[models.Practitioner]{{Prenom: "Jean", Nom: "Dupont"}},
	}
	assert.NoError(t, ValidateInvoicing(ap))
	assert.Error(t, ValidateCompletion(ap))
}

func TestComplete_RejectedLeavesStatus(t *testing.T) {
	ap := &models.Appointment{Type: string(TypeServerInstall), Status: string(StatusPlanned)}

	err := Complete(ap, time.Now())

	require.Error(t, err)
	assert.Equal(t, string(StatusPlanned), ap.Status)
	assert.Nil(t, ap.CompletedAt)
}

func TestComplete_Accepted(t *testing.T) {
	ap := engaged(&models.Appointment{
		Type:       string(TypeServerInstall),
		Status:     string(StatusPlanned),
		Email:      "a@b.fr",
		Praticiens: datatypes.JSONSlice[models.Practitioner]{{Prenom: "Jean", Nom: "Dupont"}},
	})

	require.NoError(t, Complete(ap, time.Now()))
	assert.Equal(t, string(StatusDone), ap.Status)
	assert.NotNil(t, ap.CompletedAt)
}
