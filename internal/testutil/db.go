// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/rdv-service/internal/db"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

// NewDB opens a migrated in-memory sqlite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// one connection keeps the shared in-memory database alive and serialised
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Day returns a calendar day relative to now, stored the way appointments are.
func Day(now time.Time, offsetDays int) time.Time {
	d := now.AddDate(0, 0, offsetDays)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// Appointment seeds a row; zero fields get sensible defaults.
func Appointment(t *testing.T, db *gorm.DB, ap models.Appointment) models.Appointment {
	t.Helper()

	if ap.Cabinet == "" {
		ap.Cabinet = "Cabinet Martin"
	}
	if ap.Type == "" {
		ap.Type = "Formation"
	}
	if ap.Status == "" {
		ap.Status = "Planifié"
	}
	if ap.Date.IsZero() {
		ap.Date = Day(time.Now(), 1)
	}
	if ap.Time == "" {
		ap.Time = "09:00"
	}

	if err := db.Create(&ap).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return ap
}

func Practitioners(names ...string) datatypes.JSONSlice[models.Practitioner] {
	out := datatypes.JSONSlice[models.Practitioner]{}
	for _, n := range names {
		parts := strings.SplitN(n, " ", 2)
		p := models.Practitioner{Prenom: parts[0]}
		if len(parts) == 2 {
			p.Nom = parts[1]
		}
		out = append(out, p)
	}
	return out
}
