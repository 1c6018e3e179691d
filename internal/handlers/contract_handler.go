package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/rdv-service/internal/document"
	"github.com/BruksfildServices01/rdv-service/internal/dto"
	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/httpresp"
	ucContract "github.com/BruksfildServices01/rdv-service/internal/usecase/contract"
)

type ContractHandler struct {
	create     *ucContract.CreateContract
	regenerate *ucContract.RegenerateContract
	status     *ucContract.UpdateContractStatus
	query      *ucContract.QueryContracts
}

func NewContractHandler(
	create *ucContract.CreateContract,
	regenerate *ucContract.RegenerateContract,
	status *ucContract.UpdateContractStatus,
	query *ucContract.QueryContracts,
) *ContractHandler {
	return &ContractHandler{
		create:     create,
		regenerate: regenerate,
		status:     status,
		query:      query,
	}
}

// CreateForAppointment handles POST /appointments/:id/contract.
func (h *ContractHandler) CreateForAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ucContract.CreateInput
	if !bindJSON(c, &req) {
		return
	}

	ct, err := h.create.Execute(c.Request.Context(), id, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, ct)
}

// Regenerate handles POST /appointments/:id/contract/regenerate.
func (h *ContractHandler) Regenerate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ct, err := h.regenerate.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ct)
}

func (h *ContractHandler) List(c *gin.Context) {
	out, err := h.query.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *ContractHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ct, err := h.query.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ct)
}

func (h *ContractHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.SetStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ct, err := h.status.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ct)
}

func (h *ContractHandler) Document(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	data, name, err := h.query.Document(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Attachment(c, name, document.ContentType, data)
}
