package dto

import (
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

type CompleteResponse struct {
	Appointment *models.Appointment `json:"appointment"`
	Summary     string              `json:"summary"`
}

type SummaryResponse struct {
	ID      uint   `json:"id"`
	Summary string `json:"summary"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ChecklistTemplate struct {
	Type  string   `json:"type"`
	Items []string `json:"items"`
}

type AuditLogPage struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

type UserDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func User(u *models.User) UserDTO {
	return UserDTO{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}
