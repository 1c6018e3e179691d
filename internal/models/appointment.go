package models

import (
	"time"

	"gorm.io/datatypes"
)

// Practitioner is embedded in appointments and contracts, it has no identity of its own.
type Practitioner struct {
	Prenom string `json:"prenom"`
	Nom    string `json:"nom"`
}

type ChecklistItem struct {
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// Notes is the structured bag filled during treatment.
type Notes struct {
	TechnicalFields  map[string]string `json:"technical_fields,omitempty"`
	GeneralNotes     string            `json:"general_notes,omitempty"`
	Checklist        []ChecklistItem   `json:"checklist,omitempty"`
	ChecklistEngaged bool              `json:"checklist_engaged"`
}

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Cabinet string `gorm:"size:150;not null" json:"cabinet"`
	Type    string `gorm:"size:60;not null;index" json:"type"`

	// Date is a calendar day stored at UTC midnight.
	Date time.Time `gorm:"column:scheduled_date;type:date;index" json:"date"`
	Time string    `gorm:"column:scheduled_time;size:5" json:"time"`

	Address    string `gorm:"size:255" json:"address"`
	PostalCode string `gorm:"size:10" json:"postal_code"`
	City       string `gorm:"size:100" json:"city"`
	Phone      string `gorm:"size:20" json:"phone"`
	Email      string `gorm:"size:150" json:"email"`

	Praticiens datatypes.JSONSlice[Practitioner] `json:"praticiens"`

	ContractID *uint `gorm:"index" json:"id_contrat"`

	Status   string `gorm:"size:20;default:'Planifié';index" json:"status"`
	Archived bool   `gorm:"index" json:"archived"`

	Notes datatypes.JSONType[Notes] `json:"notes"`

	CompletedAt *time.Time `json:"completed_at"`
	InvoicedAt  *time.Time `json:"invoiced_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) HasContract() bool {
	return a.ContractID != nil && *a.ContractID != 0
}
