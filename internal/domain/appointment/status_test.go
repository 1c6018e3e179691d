package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("Facturé")
	require.NoError(t, err)
	assert.Equal(t, StatusInvoiced, st)

	_, err = ParseStatus("Terminé")
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}

func TestTransitionGuards(t *testing.T) {
	cases := []struct {
		name  string
		guard func(Status) error
		ok    []Status
	}{
		{"complete", CanComplete, []Status{StatusPlanned}},
		{"invoice", CanInvoice, []Status{StatusDone}},
		{"replanify", CanReplanify, []Status{StatusDone}},
		{"cancel", CanCancel, []Status{StatusPlanned, StatusDone}},
	}

	for _, tc := range cases {
		allowed := map[Status]bool{}
		for _, s := range tc.ok {
			allowed[s] = true
		}

		for _, s := range AllStatuses {
			err := tc.guard(s)
			if allowed[s] {
				assert.NoError(t, err, "%s from %s", tc.name, s)
			} else {
				assert.Equal(t, httperr.KindConflict, httperr.KindOf(err), "%s from %s", tc.name, s)
			}
		}
	}
}

func TestReplanify_ClearsCompletion(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Status: string(StatusDone), CompletedAt: &now}

	require.NoError(t, Replanify(ap))
	assert.Equal(t, string(StatusPlanned), ap.Status)
	assert.Nil(t, ap.CompletedAt)
}

func TestInvoice_RequiresDone(t *testing.T) {
	ap := &models.Appointment{Type: string(TypeDatabaseExport), Status: string(StatusPlanned)}

	err := Invoice(ap, time.Now())

	assert.True(t, httperr.Is(err, "invalid_transition"))
	assert.Equal(t, string(StatusPlanned), ap.Status)
}

func TestInvoice_PractitionerRule(t *testing.T) {
	ap := &models.Appointment{Type: string(TypeTraining), Status: string(StatusDone)}

	err := Invoice(ap, time.Now())

	assert.True(t, httperr.Is(err, "practitioners_required"))
	assert.Equal(t, string(StatusDone), ap.Status)
}

func TestSetStatus_Unguarded(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Type: string(TypeServerInstall), Status: string(StatusPlanned)}

	SetStatus(ap, StatusInvoiced, now)
	assert.Equal(t, string(StatusInvoiced), ap.Status)
	assert.NotNil(t, ap.InvoicedAt)

	SetStatus(ap, StatusPlanned, now)
	assert.Nil(t, ap.InvoicedAt)
}

func TestNeedsContractDecision(t *testing.T) {
	id := uint(3)
	assert.True(t, NeedsContractDecision(&models.Appointment{Type: string(TypeServerInstall)}))
	assert.False(t, NeedsContractDecision(&models.Appointment{Type: string(TypeServerInstall), ContractID: &id}))
	assert.False(t, NeedsContractDecision(&models.Appointment{Type: string(TypeTraining)}))
}
