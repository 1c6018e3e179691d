package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/httpresp"
	"github.com/BruksfildServices01/rdv-service/internal/notify"
)

type NotificationHandler struct {
	svc *notify.Service
}

func NewNotificationHandler(svc *notify.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	unread := c.Query("unread") == "true"
	limit := queryInt(c, "limit", 50)

	out, err := h.svc.List(c.Request.Context(), unread, limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.MarkRead(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"id": id, "read": true})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	n, err := h.svc.MarkAllRead(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"updated": n})
}
