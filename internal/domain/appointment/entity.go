package appointment

import (
	"time"

	"github.com/BruksfildServices01/rdv-service/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Actions mutate ap only when every guard passes.

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}
	if err := ValidateCompletion(ap); err != nil {
		return err
	}

	ap.Status = string(StatusDone)
	ap.CompletedAt = &now
	return nil
}

func Invoice(ap *models.Appointment, now time.Time) error {
	if err := CanInvoice(Status(ap.Status)); err != nil {
		return err
	}
	if err := ValidateInvoicing(ap); err != nil {
		return err
	}

	ap.Status = string(StatusInvoiced)
	ap.InvoicedAt = &now
	return nil
}

func Replanify(ap *models.Appointment) error {
	if err := CanReplanify(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusPlanned)
	ap.CompletedAt = nil
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// SetStatus is the unguarded override: no transition or field rules apply.
func SetStatus(ap *models.Appointment, next Status, now time.Time) {
	ap.Status = string(next)

	switch next {
	case StatusPlanned:
		ap.CompletedAt = nil
		ap.InvoicedAt = nil
		ap.CancelledAt = nil
	case StatusDone:
		if ap.CompletedAt == nil {
			ap.CompletedAt = &now
		}
	case StatusInvoiced:
		if ap.InvoicedAt == nil {
			ap.InvoicedAt = &now
		}
	case StatusCancelled:
		if ap.CancelledAt == nil {
			ap.CancelledAt = &now
		}
	}
}

// NeedsContractDecision reports whether invoicing should first offer contract creation.
func NeedsContractDecision(ap *models.Appointment) bool {
	return Type(ap.Type) == TypeServerInstall && !ap.HasContract()
}
