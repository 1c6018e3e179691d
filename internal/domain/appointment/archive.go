package appointment

import (
	"time"

	"github.com/BruksfildServices01/rdv-service/internal/models"
)

// ===============================
// Archive Policy
// ===============================

// DateOnly keeps the calendar day of t, at UTC midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ArchiveBoundary is the first day of now's calendar month.
// Appointments dated strictly before it belong to a previous month.
func ArchiveBoundary(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

var archivableStatuses = []Status{StatusDone, StatusInvoiced}

func ArchivableStatuses() []string {
	out := make([]string, 0, len(archivableStatuses))
	for _, s := range archivableStatuses {
		out = append(out, string(s))
	}
	return out
}

// IsArchivable applies the bulk policy to a single appointment.
// Server installations without contract stay visible whatever their age.
func IsArchivable(ap *models.Appointment, boundary time.Time) bool {
	if ap.Archived {
		return false
	}

	st := Status(ap.Status)
	if st != StatusDone && st != StatusInvoiced {
		return false
	}

	if !DateOnly(ap.Date).Before(boundary) {
		return false
	}

	if Type(ap.Type) == TypeServerInstall && !ap.HasContract() {
		return false
	}

	return true
}

func SelectArchivable(aps []models.Appointment, boundary time.Time) []uint {
	ids := make([]uint, 0, len(aps))
	for i := range aps {
		if IsArchivable(&aps[i], boundary) {
			ids = append(ids, aps[i].ID)
		}
	}
	return ids
}

// Archive and Unarchive never touch the status.

func Archive(ap *models.Appointment) {
	ap.Archived = true
}

func Unarchive(ap *models.Appointment) {
	ap.Archived = false
}
