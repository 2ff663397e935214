package emergency

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medidesk-api/internal/handler"
	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/service/emergency"
)

type Handler struct {
	svc emergency.EmergencyServicer
}

func NewHandler(svc emergency.EmergencyServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, allow handler.RoleGuard) {
	adminOnly := allow(model.RoleAdmin)

	ambulances := r.Group("/ambulances")
	{
		ambulances.GET("", h.ListAmbulances)
		ambulances.POST("", adminOnly, h.CreateAmbulance)
		ambulances.DELETE("/:id", adminOnly, h.DeleteAmbulance)
	}

	contacts := r.Group("/emergency-contacts")
	{
		contacts.GET("", h.ListContacts)
		contacts.POST("", adminOnly, h.CreateContact)
		contacts.DELETE("/:id", adminOnly, h.DeleteContact)
	}
}

func (h *Handler) CreateAmbulance(c *gin.Context) {
	var req model.CreateAmbulanceRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	a := req.ToModel()
	if err := h.svc.CreateAmbulance(c.Request.Context(), a); err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCreated(c, a.ID, "Ambulance added successfully")
}

func (h *Handler) ListAmbulances(c *gin.Context) {
	ambulances, err := h.svc.ListAmbulances(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ambulances)
}

func (h *Handler) DeleteAmbulance(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteAmbulance(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondMessage(c, "Ambulance deleted successfully")
}

func (h *Handler) CreateContact(c *gin.Context) {
	var req model.CreateEmergencyContactRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	ec := req.ToModel()
	if err := h.svc.CreateContact(c.Request.Context(), ec); err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCreated(c, ec.ID, "Emergency contact added successfully")
}

func (h *Handler) ListContacts(c *gin.Context) {
	contacts, err := h.svc.ListContacts(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *Handler) DeleteContact(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteContact(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondMessage(c, "Emergency contact deleted successfully")
}
