package models

import (
	"time"

	"gorm.io/datatypes"
)

type Contract struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID *uint `gorm:"index" json:"id_rdv"`

	Cabinet    string `gorm:"size:150;not null" json:"cabinet"`
	Address    string `gorm:"size:255" json:"address"`
	PostalCode string `gorm:"size:10" json:"postal_code"`
	City       string `gorm:"size:100" json:"city"`

	Praticiens datatypes.JSONSlice[Practitioner] `json:"praticiens"`

	Price  float64 `json:"price"`
	Status string  `gorm:"size:20;default:'Brouillon'" json:"status"`

	SentAt     *time.Time `json:"date_envoi"`
	ReceivedAt *time.Time `json:"date_reception"`

	DocumentKey string     `gorm:"size:255" json:"document_key"`
	GeneratedAt *time.Time `json:"generated_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
