package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	"github.com/BruksfildServices01/rdv-service/internal/dto"
	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/rdv-service/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentUseCases struct {
	Create               *ucAppointment.CreateAppointment
	Get                  *ucAppointment.GetAppointment
	List                 *ucAppointment.ListAppointments
	Update               *ucAppointment.UpdateAppointment
	Treatment            *ucAppointment.UpdateTreatment
	Delete               *ucAppointment.DeleteAppointment
	Complete             *ucAppointment.CompleteAppointment
	Invoice              *ucAppointment.InvoiceAppointment
	Replanify            *ucAppointment.ReplanifyAppointment
	Cancel               *ucAppointment.CancelAppointment
	SetStatus            *ucAppointment.SetAppointmentStatus
	Archive              *ucAppointment.ArchiveAppointment
	ArchivePreviousMonth *ucAppointment.ArchivePreviousMonth
}

type AppointmentHandler struct {
	uc AppointmentUseCases
}

func NewAppointmentHandler(uc AppointmentUseCases) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// ======================================================
// CRUD
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req ucAppointment.AppointmentInput
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	aps, err := h.uc.List.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, aps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.uc.Get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Summary(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	text, err := h.uc.Get.Summary(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.SummaryResponse{ID: id, Summary: text})
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ucAppointment.AppointmentInput
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.uc.Update.Execute(c.Request.Context(), id, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) UpdateTreatment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ucAppointment.TreatmentInput
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.uc.Treatment.Execute(c.Request.Context(), id, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AppointmentHandler) Checklists(c *gin.Context) {
	out := make([]dto.ChecklistTemplate, 0, len(domain.AllTypes))
	for _, t := range domain.AllTypes {
		if !domain.HasChecklist(t) {
			continue
		}
		out = append(out, dto.ChecklistTemplate{
			Type:  string(t),
			Items: domain.ChecklistTemplate(t),
		})
	}
	httpresp.List(c, out)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, summary, err := h.uc.Complete.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.CompleteResponse{Appointment: ap, Summary: summary})
}

func (h *AppointmentHandler) Invoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ucAppointment.InvoiceInput
	// an empty body means "no decision yet"
	if !bindOptionalJSON(c, &req) {
		return
	}

	res, err := h.uc.Invoice.Execute(c.Request.Context(), id, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *AppointmentHandler) Replanify(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.uc.Replanify.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.uc.Cancel.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.SetStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.uc.SetStatus.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// ARCHIVE
// ======================================================

func (h *AppointmentHandler) Archive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.uc.Archive.Archive(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Unarchive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.uc.Archive.Unarchive(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ArchivePreviousMonth(c *gin.Context) {
	dryRun := c.Query("dry_run") == "true"

	res, err := h.uc.ArchivePreviousMonth.Execute(c.Request.Context(), "manual", dryRun)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, res)
}
