package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medidesk-api/internal/handler"
	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/service/appointment"
)

type Handler struct {
	svc appointment.AppointmentServicer
}

func NewHandler(svc appointment.AppointmentServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, _ handler.RoleGuard) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.POST("", h.CreateAppointment)
		appointments.PUT("/:id/status", h.UpdateStatus)
	}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	a := req.ToModel()
	if err := h.svc.CreateAppointment(c.Request.Context(), a); err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCreated(c, a.ID, "Appointment booked successfully")
}

func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.svc.ListAppointments(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	var req model.UpdateStatusRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondMessage(c, "Appointment status updated successfully")
}
