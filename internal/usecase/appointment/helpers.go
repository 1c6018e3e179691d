package appointment

import (
	"strings"
	"time"

	domain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/metrics"
	"github.com/BruksfildServices01/rdv-service/internal/models"
	"github.com/BruksfildServices01/rdv-service/internal/timezone"
	"github.com/BruksfildServices01/rdv-service/internal/validators"
)

const entity = "appointment"

// Clock yields the current time in the service timezone.
type Clock func() time.Time

func defaultClock() time.Time {
	return timezone.Now()
}

// rejected counts a refused transition before handing the error back.
func rejected(err error) error {
	if e, ok := httperr.As(err); ok {
		metrics.RecordRejection(e.Code)
	}
	return err
}

// AppointmentInput carries the descriptive fields of "prise de RDV" and edits.
type AppointmentInput struct {
	Cabinet    string `json:"cabinet"`
	Type       string `json:"type"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// applyTo validates every field and writes them onto ap only when all pass.
func (in AppointmentInput) applyTo(ap *models.Appointment) error {
	var invalid []string

	cabinet := strings.TrimSpace(in.Cabinet)
	if cabinet == "" {
		invalid = append(invalid, "cabinet")
	}

	if !domain.IsValidType(in.Type) {
		invalid = append(invalid, "type")
	}

	day, err := timezone.ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		invalid = append(invalid, "date")
	}

	clock := strings.TrimSpace(in.Time)
	if _, err := timezone.ParseClock(clock); err != nil {
		invalid = append(invalid, "time")
	}

	email := strings.TrimSpace(in.Email)
	if email != "" && !validators.IsEmail(email) {
		invalid = append(invalid, "email")
	}

	postalCode := strings.TrimSpace(in.PostalCode)
	if postalCode != "" && !validators.IsPostalCode(postalCode) {
		invalid = append(invalid, "postal_code")
	}

	if len(invalid) > 0 {
		return httperr.ErrValidation("invalid_appointment", "Certains champs du RDV sont invalides.", invalid...)
	}

	ap.Cabinet = cabinet
	ap.Type = in.Type
	ap.Date = day
	ap.Time = clock
	ap.Address = strings.TrimSpace(in.Address)
	ap.PostalCode = postalCode
	ap.City = strings.TrimSpace(in.City)
	ap.Phone = strings.TrimSpace(in.Phone)
	ap.Email = email
	return nil
}
