package appointment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BruksfildServices01/rdv-service/internal/models"
)

// Summary builds the GRC text pasted into the CRM. It is never persisted.
func Summary(ap *models.Appointment) string {
	var b strings.Builder

	line := func(format string, args ...any) {
		b.WriteString(fmt.Sprintf(format, args...))
		b.WriteByte('\n')
	}

	line("RDV %s - %s", ap.Type, ap.Cabinet)

	if !ap.Date.IsZero() {
		if ap.Time != "" {
			line("Date : %s à %s", ap.Date.Format("02/01/2006"), ap.Time)
		} else {
			line("Date : %s", ap.Date.Format("02/01/2006"))
		}
	}

	if addr := formatAddress(ap.Address, ap.PostalCode, ap.City); addr != "" {
		line("Adresse : %s", addr)
	}

	if contact := joinNonEmpty(" / ", ap.Phone, ap.Email); contact != "" {
		line("Contact : %s", contact)
	}

	if names := practitionerNames(ap.Praticiens); len(names) > 0 {
		line("Praticiens : %s", strings.Join(names, ", "))
	}

	notes := ap.Notes.Data()

	if len(notes.TechnicalFields) > 0 {
		keys := make([]string, 0, len(notes.TechnicalFields))
		for k := range notes.TechnicalFields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		line("Détails techniques :")
		for _, k := range keys {
			if v := strings.TrimSpace(notes.TechnicalFields[k]); v != "" {
				line("- %s : %s", k, v)
			}
		}
	}

	if len(notes.Checklist) > 0 {
		line("Checklist :")
		for _, item := range notes.Checklist {
			mark := " "
			if item.Checked {
				mark = "x"
			}
			line("[%s] %s", mark, item.Label)
		}
	}

	if n := strings.TrimSpace(notes.GeneralNotes); n != "" {
		line("Notes : %s", n)
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatAddress(address, postalCode, city string) string {
	return joinNonEmpty(", ", address, joinNonEmpty(" ", postalCode, city))
}

func practitionerNames(ps []models.Practitioner) []string {
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		if n := joinNonEmpty(" ", p.Prenom, p.Nom); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
