package machinery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medidesk-api/internal/handler"
	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/service/machinery"
)

type Handler struct {
	svc machinery.MachineryServicer
}

func NewHandler(svc machinery.MachineryServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, allow handler.RoleGuard) {
	write := allow(model.RoleAdmin)

	machines := r.Group("/machinery")
	{
		machines.GET("", h.ListMachines)
		machines.POST("", write, h.CreateMachine)
		machines.PUT("/:id", write, h.UpdateMachine)
		machines.DELETE("/:id", write, h.DeleteMachine)
	}
}

func (h *Handler) CreateMachine(c *gin.Context) {
	var req model.MachineryRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	machine := req.ToModel()
	if err := h.svc.CreateMachine(c.Request.Context(), machine); err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCreated(c, machine.ID, "Machine added successfully")
}

func (h *Handler) ListMachines(c *gin.Context) {
	machines, err := h.svc.ListMachines(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, machines)
}

func (h *Handler) UpdateMachine(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	var req model.MachineryRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	machine := req.ToModel()
	machine.ID = id
	if err := h.svc.UpdateMachine(c.Request.Context(), machine); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondMessage(c, "Machine updated successfully")
}

func (h *Handler) DeleteMachine(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteMachine(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondMessage(c, "Machine deleted successfully")
}
