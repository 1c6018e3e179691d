package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Kind  string `gorm:"size:30;not null;index" json:"kind"`
	Title string `gorm:"size:150;not null" json:"title"`
	Body  string `gorm:"type:text" json:"body"`

	AppointmentID *uint `gorm:"index" json:"appointment_id"`
	Read          bool  `gorm:"column:is_read;index" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
