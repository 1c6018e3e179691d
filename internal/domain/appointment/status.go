package appointment

import "github.com/BruksfildServices01/rdv-service/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPlanned   Status = "Planifié"
	StatusDone      Status = "Effectué"
	StatusInvoiced  Status = "Facturé"
	StatusCancelled Status = "Annulé"
)

var AllStatuses = []Status{
	StatusPlanned,
	StatusDone,
	StatusInvoiced,
	StatusCancelled,
}

func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", httperr.ErrValidation("invalid_status", "Statut inconnu.", "status")
}

func (s Status) IsTerminal() bool {
	return s == StatusInvoiced || s == StatusCancelled
}

// ===============================
// Transitions
// ===============================

func invalidTransition(message string) error {
	return httperr.ErrConflict("invalid_transition", message)
}

// CanComplete: Planifié → Effectué
func CanComplete(current Status) error {
	if current != StatusPlanned {
		return invalidTransition("Seul un RDV planifié peut être marqué effectué.")
	}
	return nil
}

// CanInvoice: Effectué → Facturé
func CanInvoice(current Status) error {
	if current != StatusDone {
		return invalidTransition("Seul un RDV effectué peut être facturé.")
	}
	return nil
}

// CanReplanify: Effectué → Planifié
func CanReplanify(current Status) error {
	if current != StatusDone {
		return invalidTransition("Seul un RDV effectué peut être replanifié.")
	}
	return nil
}

// CanCancel: any non-terminal state → Annulé
func CanCancel(current Status) error {
	if current.IsTerminal() {
		return invalidTransition("Ce RDV ne peut plus être annulé.")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPlanned
}
