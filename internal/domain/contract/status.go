package contract

import "github.com/BruksfildServices01/rdv-service/internal/httperr"

type Status string

const (
	StatusDraft    Status = "Brouillon"
	StatusSent     Status = "Envoyé"
	StatusSigned   Status = "Signé"
	StatusReceived Status = "Reçu"
)

// Ordered from creation to reception.
var lifecycle = []Status{StatusDraft, StatusSent, StatusSigned, StatusReceived}

func rank(s Status) int {
	for i, st := range lifecycle {
		if st == s {
			return i
		}
	}
	return -1
}

func ParseStatus(s string) (Status, error) {
	if rank(Status(s)) < 0 {
		return "", httperr.ErrValidation("invalid_contract_status", "Statut de contrat inconnu.", "status")
	}
	return Status(s), nil
}

// CanMoveTo only allows forward moves; steps may be skipped.
func CanMoveTo(current, next Status) error {
	if rank(next) <= rank(current) {
		return httperr.ErrConflict("invalid_contract_transition", "Le contrat ne peut pas revenir à ce statut.")
	}
	return nil
}
