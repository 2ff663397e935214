package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medidesk-api/internal/handler"
	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/service/doctor"
)

type Handler struct {
	svc doctor.DoctorServicer
}

func NewHandler(svc doctor.DoctorServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, allow handler.RoleGuard) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("", h.ListDoctors)
		doctors.POST("", allow(model.RoleAdmin), h.CreateDoctor)
		doctors.GET("/:id", h.GetDoctor)
		doctors.DELETE("/:id", allow(model.RoleAdmin), h.DeleteDoctor)
	}
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	d := req.ToModel()
	if err := h.svc.CreateDoctor(c.Request.Context(), d); err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCreated(c, d.ID, "Doctor added successfully")
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.svc.ListDoctors(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	d, err := h.svc.GetDoctor(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteDoctor(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondMessage(c, "Doctor deleted successfully")
}
