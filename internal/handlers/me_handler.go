package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/rdv-service/internal/dto"
	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/httpresp"
	"github.com/BruksfildServices01/rdv-service/internal/middleware"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	if userID == 0 {
		httperr.Unauthorized(c, "user_not_in_context", "Authentification requise.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Utilisateur introuvable.")
		return
	}

	httpresp.OK(c, dto.User(&user))
}
