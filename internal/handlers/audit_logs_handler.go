package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/rdv-service/internal/audit"
	"github.com/BruksfildServices01/rdv-service/internal/dto"
	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/httpresp"
)

type AuditLogsHandler struct {
	logs *audit.Logger
}

func NewAuditLogsHandler(logs *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 50),
	}

	var err error
	if f.From, err = queryDate(c, "from"); err != nil {
		httperr.Respond(c, err)
		return
	}
	if f.To, err = queryDate(c, "to"); err != nil {
		httperr.Respond(c, err)
		return
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, httperr.ErrTransport("audit_list_failed", err))
		return
	}

	f.Normalize()
	httpresp.OK(c, dto.AuditLogPage{
		Page:  f.Page,
		Limit: f.Limit,
		Total: total,
		Logs:  logs,
	})
}
